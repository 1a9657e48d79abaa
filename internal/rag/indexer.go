package rag

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mwiater/legalrag/internal/logging"
)

// BuildIndex chunks the document at opts.DataPath, summarizes every chunk in
// order and persists the entries to opts.IndexPath.
func BuildIndex(ctx context.Context, opts Options) ([]IndexedEntry, IndexStats, error) {
	if err := opts.validateIndexing(); err != nil {
		return nil, IndexStats{}, err
	}

	start := time.Now()
	status := func(format string, args ...any) {
		elapsed := time.Since(start).Truncate(time.Millisecond)
		logging.LogEvent("[%s] %s", elapsed, fmt.Sprintf(format, args...))
	}
	status("[RAG] Indexing document: %s", opts.DataPath)
	status("[RAG] Index output: %s", opts.IndexPath)
	status("[RAG] Tokenizer: %s, chunk size: %d tokens", opts.Tokenizer.Name(), opts.ChunkSize)

	raw, err := os.ReadFile(opts.DataPath)
	if err != nil {
		return nil, IndexStats{}, fmt.Errorf("read document %s: %w", opts.DataPath, err)
	}

	chunks, err := ChunkText(opts.Tokenizer, string(raw), opts.ChunkSize)
	if err != nil {
		return nil, IndexStats{}, err
	}
	status("[RAG] Total chunks: %d", len(chunks))

	summarizer := opts.summarizer()
	stats := IndexStats{Chunks: len(chunks)}
	entries := make([]IndexedEntry, 0, len(chunks))
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		status("[RAG] Processing chunk %d/%d...", i+1, len(chunks))
		summary := summarizer.Summarize(ctx, chunk)
		if strings.TrimSpace(summary) == "" {
			stats.EmptySummaries++
		}
		entries = append(entries, IndexedEntry{ID: i, Chunk: chunk, Summary: summary})
	}

	if err := SaveIndex(opts.IndexPath, entries); err != nil {
		return nil, stats, err
	}
	status("[RAG] Index complete in %s (%d empty summaries)", time.Since(start).Truncate(time.Millisecond), stats.EmptySummaries)
	return entries, stats, nil
}
