package rag

import (
	"context"
	"fmt"
	"math"
)

// VectorIndex holds index entries and the embeddings of their summaries,
// aligned by position.
type VectorIndex struct {
	entries []IndexedEntry
	vectors [][]float32
	norms   []float64
}

// InitializeEmbeddings embeds every summary in one batch and returns the
// resulting index. An empty entry list yields an empty index without calling
// the embedder.
func InitializeEmbeddings(ctx context.Context, embedder Embedder, entries []IndexedEntry) (*VectorIndex, error) {
	if len(entries) == 0 {
		return &VectorIndex{}, nil
	}
	summaries := make([]string, len(entries))
	for i, e := range entries {
		summaries[i] = e.Summary
	}
	vectors, err := embedder.EmbedBatch(ctx, summaries)
	if err != nil {
		return nil, fmt.Errorf("embed summaries: %w", err)
	}
	if len(vectors) != len(entries) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d summaries", len(vectors), len(entries))
	}

	norms := make([]float64, len(vectors))
	for i, v := range vectors {
		norms[i] = vectorNorm(v)
	}
	return &VectorIndex{entries: entries, vectors: vectors, norms: norms}, nil
}

func (v *VectorIndex) Len() int {
	if v == nil {
		return 0
	}
	return len(v.entries)
}

func (v *VectorIndex) Entry(i int) IndexedEntry { return v.entries[i] }

// Scores returns the cosine similarity of query against every stored vector.
func (v *VectorIndex) Scores(query []float32) ([]float64, error) {
	scores := make([]float64, v.Len())
	queryNorm := vectorNorm(query)
	for i, vec := range v.vectors {
		if len(vec) != len(query) {
			return nil, fmt.Errorf("dimension mismatch: query has %d dimensions, entry %d has %d", len(query), i, len(vec))
		}
		scores[i] = cosineSimilarity(query, vec, queryNorm, v.norms[i])
	}
	return scores, nil
}

func cosineSimilarity(a, b []float32, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	dot := 0.0
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (normA * normB)
}

func vectorNorm(v []float32) float64 {
	sum := 0.0
	for _, val := range v {
		sum += float64(val) * float64(val)
	}
	return math.Sqrt(sum)
}
