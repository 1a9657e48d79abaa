package rag

import (
	"strings"
	"testing"

	"github.com/mwiater/legalrag/internal/tokenizer"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "mot" + strings.Repeat("x", i%5)
	}
	return strings.Join(parts, " ")
}

func TestChunkTextCountsAndSizes(t *testing.T) {
	cases := []struct {
		tokens, size, want int
	}{
		{1024, 512, 2},
		{1025, 512, 3},
		{10, 3, 4},
		{3, 3, 1},
		{1, 512, 1},
	}
	for _, tc := range cases {
		chunks, err := ChunkText(tokenizer.NewWords(), words(tc.tokens), tc.size)
		if err != nil {
			t.Fatalf("ChunkText(%d, %d): %v", tc.tokens, tc.size, err)
		}
		if len(chunks) != tc.want {
			t.Fatalf("ChunkText(%d, %d): expected %d chunks, got %d", tc.tokens, tc.size, tc.want, len(chunks))
		}
		total := 0
		for i, c := range chunks {
			n := len(strings.Fields(c))
			if n > tc.size {
				t.Fatalf("chunk %d has %d tokens, limit %d", i, n, tc.size)
			}
			if i < len(chunks)-1 && n != tc.size {
				t.Fatalf("non-final chunk %d has %d tokens, expected %d", i, n, tc.size)
			}
			total += n
		}
		if total != tc.tokens {
			t.Fatalf("expected chunks to cover %d tokens, got %d", tc.tokens, total)
		}
	}
}

func TestChunkTextPreservesOrder(t *testing.T) {
	chunks, err := ChunkText(tokenizer.NewWords(), "a b c d e", 2)
	if err != nil {
		t.Fatalf("ChunkText: %v", err)
	}
	want := []string{"a b", "c d", "e"}
	if strings.Join(chunks, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, chunks)
	}
}

func TestChunkTextEmptyAndInvalid(t *testing.T) {
	chunks, err := ChunkText(tokenizer.NewWords(), "   \n ", 512)
	if err != nil || len(chunks) != 0 {
		t.Fatalf("expected no chunks for blank text, got %v (%v)", chunks, err)
	}
	if _, err := ChunkText(tokenizer.NewWords(), "a", 0); err == nil {
		t.Fatal("expected error for zero chunk size")
	}
}
