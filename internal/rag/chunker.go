package rag

import (
	"fmt"
	"strings"

	"github.com/mwiater/legalrag/internal/tokenizer"
)

// ChunkText splits text into consecutive, non-overlapping windows of
// chunkSize tokens. The last window may be shorter. Each window is rendered
// as its token strings joined by single spaces, which does not reproduce the
// source text exactly.
func ChunkText(tok tokenizer.Tokenizer, text string, chunkSize int) ([]string, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be greater than zero, got %d", chunkSize)
	}
	ids, err := tok.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("tokenize document: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	chunks := make([]string, 0, (len(ids)+chunkSize-1)/chunkSize)
	for i := 0; i < len(ids); i += chunkSize {
		end := i + chunkSize
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, strings.Join(tok.Tokens(ids[i:end]), " "))
	}
	return chunks, nil
}
