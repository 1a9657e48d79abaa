// internal/util/util.go
// Package util holds text helpers shared by the terminal front ends.
package util

import (
	"strings"
	"unicode/utf8"
)

// TruncateRunes truncates a string to a maximum number of runes,
// appending an ellipsis if truncated.
func TruncateRunes(text string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + "…"
}

// OneLine collapses all runs of whitespace, newlines included, into single
// spaces.
func OneLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Excerpt renders text on one line, cut to maxRunes.
func Excerpt(text string, maxRunes int) string {
	return TruncateRunes(OneLine(text), maxRunes)
}

// WrapToWidth wraps text to width runes per line. Words longer than width are
// split. Blank lines are kept.
func WrapToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		out = append(out, wrapWords(words, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapWords(words []string, width int) []string {
	var lines []string
	var cur strings.Builder
	n := 0
	flush := func() {
		if n > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
	}
	for _, w := range words {
		wLen := utf8.RuneCountInString(w)
		if n > 0 && n+1+wLen <= width {
			cur.WriteByte(' ')
			cur.WriteString(w)
			n += 1 + wLen
			continue
		}
		flush()
		if wLen <= width {
			cur.WriteString(w)
			n = wLen
			continue
		}
		r := []rune(w)
		for start := 0; start < len(r); start += width {
			end := start + width
			if end > len(r) {
				end = len(r)
			}
			lines = append(lines, string(r[start:end]))
		}
	}
	flush()
	return lines
}
