package rag

import (
	"context"
	"fmt"
	"sort"
)

// DefaultTopK is used when a non-positive k is requested.
const DefaultTopK = 7

// Retriever ranks indexed summaries against a query.
type Retriever struct {
	index    *VectorIndex
	embedder Embedder
}

func NewRetriever(index *VectorIndex, embedder Embedder) *Retriever {
	return &Retriever{index: index, embedder: embedder}
}

// Retrieve returns up to topK summaries ordered by descending cosine
// similarity to query. An empty index returns no results and does not embed
// the query.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]RetrievedSummary, error) {
	if r.index.Len() == 0 {
		return nil, nil
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	vectors, err := r.embedder.EmbedBatch(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for the query", len(vectors))
	}

	scores, err := r.index.Scores(vectors[0])
	if err != nil {
		return nil, err
	}

	ranked := topIndices(scores, topK)
	results := make([]RetrievedSummary, len(ranked))
	for i, idx := range ranked {
		entry := r.index.Entry(idx)
		results[i] = RetrievedSummary{ID: entry.ID, Summary: entry.Summary, Score: scores[idx]}
	}
	return results, nil
}

// topIndices stable-sorts positions by ascending score, keeps the last k and
// returns them highest first. Among equal scores the later position ranks
// first.
func topIndices(scores []float64, k int) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] < scores[order[j]]
	})

	if k > len(order) {
		k = len(order)
	}
	tail := order[len(order)-k:]
	out := make([]int, k)
	for i := range tail {
		out[i] = tail[len(tail)-1-i]
	}
	return out
}
