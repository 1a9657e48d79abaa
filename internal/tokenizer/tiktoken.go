package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

const defaultEncoding = "cl100k_base"

// Tiktoken wraps a BPE encoding from tiktoken-go.
type Tiktoken struct {
	encoding string
	enc      *tiktoken.Tiktoken
}

// NewTiktoken loads a BPE encoding by encoding name (cl100k_base, p50k_base,
// ...) or by a model name tiktoken-go knows (gpt-4, text-embedding-ada-002,
// ...). The encoding file is fetched and cached by tiktoken-go on first use.
func NewTiktoken(name string) (*Tiktoken, error) {
	encoding, err := resolveEncoding(name)
	if err != nil {
		return nil, err
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding %q: %w", encoding, err)
	}
	return &Tiktoken{encoding: encoding, enc: enc}, nil
}

func resolveEncoding(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch name {
	case "":
		return defaultEncoding, nil
	case tiktoken.MODEL_CL100K_BASE, tiktoken.MODEL_P50K_BASE, tiktoken.MODEL_P50K_EDIT, tiktoken.MODEL_R50K_BASE:
		return name, nil
	}
	if encoding, ok := tiktoken.MODEL_TO_ENCODING[name]; ok {
		return encoding, nil
	}
	for prefix, encoding := range tiktoken.MODEL_PREFIX_TO_ENCODING {
		if strings.HasPrefix(name, prefix) {
			return encoding, nil
		}
	}
	return "", fmt.Errorf("unknown tiktoken encoding or model %q", name)
}

func (t *Tiktoken) Encode(text string) ([]int, error) {
	return t.enc.Encode(text, nil, nil), nil
}

// Tokens decodes every id on its own, so multi-byte characters split across
// ids come back as partial strings.
func (t *Tiktoken) Tokens(ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = t.enc.Decode([]int{id})
	}
	return out
}

func (t *Tiktoken) Name() string {
	return "tiktoken/" + t.encoding
}
