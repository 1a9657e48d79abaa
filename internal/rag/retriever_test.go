package rag

import (
	"context"
	"errors"
	"math"
	"testing"
)

func buildIndex(t *testing.T, emb Embedder, summaries ...string) *VectorIndex {
	t.Helper()
	entries := make([]IndexedEntry, len(summaries))
	for i, s := range summaries {
		entries[i] = IndexedEntry{ID: i, Chunk: "chunk " + s, Summary: s}
	}
	index, err := InitializeEmbeddings(context.Background(), emb, entries)
	if err != nil {
		t.Fatalf("InitializeEmbeddings: %v", err)
	}
	return index
}

func TestInitializeEmbeddingsAligned(t *testing.T) {
	emb := &keywordEmbedder{keywords: []string{"bail", "vente", "donation"}}
	index := buildIndex(t, emb, "le bail", "la vente", "la donation", "")
	if index.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", index.Len())
	}
	if len(emb.batches) != 1 || len(emb.batches[0]) != 4 {
		t.Fatalf("expected a single batch of 4 summaries, got %v", emb.batches)
	}
	for i, want := range []string{"le bail", "la vente", "la donation", ""} {
		if index.Entry(i).Summary != want || emb.batches[0][i] != want {
			t.Fatalf("summary %d misaligned", i)
		}
	}
	if index.vectors[1][1] != 1 || index.vectors[1][0] != 0 {
		t.Fatalf("vector 1 does not belong to summary 1: %v", index.vectors[1])
	}
}

func TestInitializeEmbeddingsEmptyAndErrors(t *testing.T) {
	emb := &keywordEmbedder{}
	index, err := InitializeEmbeddings(context.Background(), emb, nil)
	if err != nil || index.Len() != 0 {
		t.Fatalf("expected empty index, got %d (%v)", index.Len(), err)
	}
	if len(emb.batches) != 0 {
		t.Fatal("expected embedder not to be called for an empty index")
	}

	failing := &keywordEmbedder{err: errors.New("unreachable")}
	if _, err := InitializeEmbeddings(context.Background(), failing, []IndexedEntry{{Summary: "x"}}); err == nil {
		t.Fatal("expected embedder error to propagate")
	}
}

func TestRetrieveOrdersBySimilarity(t *testing.T) {
	emb := &tableEmbedder{vectors: map[string][]float32{
		"a": {1, 0},
		"b": {0, 1},
		"c": {1, 1},
		"q": {1, 0},
	}}
	r := NewRetriever(buildIndex(t, emb, "a", "b", "c"), emb)

	results, err := r.Retrieve(context.Background(), "q", 7)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected min(k, M) = 3 results, got %d", len(results))
	}
	if results[0].Summary != "a" || results[1].Summary != "c" || results[2].Summary != "b" {
		t.Fatalf("unexpected order: %+v", results)
	}
	if math.Abs(results[0].Score-1) > 1e-9 || math.Abs(results[1].Score-1/math.Sqrt2) > 1e-6 || results[2].Score != 0 {
		t.Fatalf("unexpected scores: %+v", results)
	}
	seen := map[int]bool{}
	for i, res := range results {
		if seen[res.ID] {
			t.Fatalf("duplicate id %d", res.ID)
		}
		seen[res.ID] = true
		if i > 0 && results[i-1].Score < res.Score {
			t.Fatalf("scores not non-increasing at %d", i)
		}
	}

	top1, err := r.Retrieve(context.Background(), "q", 1)
	if err != nil || len(top1) != 1 || top1[0].ID != 0 {
		t.Fatalf("expected only id 0 for k=1, got %+v (%v)", top1, err)
	}
}

func TestRetrieveDefaultTopK(t *testing.T) {
	summaries := []string{"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9"}
	vectors := map[string][]float32{"q": {1, 0}}
	for i, s := range summaries {
		vectors[s] = []float32{1, float32(i)}
	}
	emb := &tableEmbedder{vectors: vectors}
	r := NewRetriever(buildIndex(t, emb, summaries...), emb)

	results, err := r.Retrieve(context.Background(), "q", 0)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(results) != DefaultTopK {
		t.Fatalf("expected %d results, got %d", DefaultTopK, len(results))
	}
	if results[0].ID != 0 || results[6].ID != 6 {
		t.Fatalf("unexpected ranking: %+v", results)
	}
}

func TestRetrieveEmptyIndexSkipsEmbedding(t *testing.T) {
	emb := &tableEmbedder{}
	r := NewRetriever(&VectorIndex{}, emb)
	results, err := r.Retrieve(context.Background(), "q", 3)
	if err != nil || len(results) != 0 {
		t.Fatalf("expected empty result, got %+v (%v)", results, err)
	}
	if emb.calls != 0 {
		t.Fatalf("expected no embedding calls, got %d", emb.calls)
	}
}

func TestRetrieveDimensionMismatch(t *testing.T) {
	emb := &tableEmbedder{vectors: map[string][]float32{"a": {1, 0}, "q": {1, 0, 0}}}
	r := NewRetriever(buildIndex(t, emb, "a"), emb)
	if _, err := r.Retrieve(context.Background(), "q", 1); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestRetrieveZeroVectorScoresZero(t *testing.T) {
	emb := &tableEmbedder{vectors: map[string][]float32{"a": {0, 0}, "b": {0, 1}, "q": {0, 1}}}
	r := NewRetriever(buildIndex(t, emb, "a", "b"), emb)
	results, err := r.Retrieve(context.Background(), "q", 2)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if results[0].Summary != "b" || results[1].Score != 0 {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestTopIndicesTies(t *testing.T) {
	got := topIndices([]float64{0.5, 0.9, 0.5, 0.1}, 3)
	want := []int{1, 2, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if len(topIndices([]float64{0.2}, 5)) != 1 {
		t.Fatal("expected k clamped to length")
	}
}
