package rag

import "strings"

// FormatContext joins retrieved summaries with blank lines for the answer
// prompt.
func FormatContext(summaries []string) string {
	return strings.Join(summaries, "\n\n")
}
