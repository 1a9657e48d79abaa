// Package tokenizer turns text into token ids and back into token strings for
// the chunker.
package tokenizer

import (
	"fmt"
	"strings"
)

// Tokenizer converts text to token ids and renders ids as individual token
// strings. Rendering is lossy: joining the strings need not reproduce the
// original text.
type Tokenizer interface {
	Encode(text string) ([]int, error)
	Tokens(ids []int) []string
	Name() string
}

// New returns the tokenizer named by kind. Supported kinds are "tiktoken"
// (the default) and "words".
func New(kind, encoding string) (Tokenizer, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "tiktoken":
		return NewTiktoken(encoding)
	case "words", "word":
		return NewWords(), nil
	default:
		return nil, fmt.Errorf("unsupported tokenizer %q", kind)
	}
}
