package rag

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// RunPreview prints the summaries retrieved for the query in args without
// generating an answer.
func RunPreview(ctx context.Context, out io.Writer, p *Pipeline, args []string, topK int) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	results, err := p.Retrieve(ctx, query, topK)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "[RAG] Preview query: %s\n", query)
	fmt.Fprintf(out, "[RAG] indexed summaries: %d\n", p.Len())
	fmt.Fprintf(out, "[RAG] results: %d\n", len(results))
	if len(results) == 0 {
		fmt.Fprintln(out, NoResultsMessage)
		return nil
	}
	for i, r := range results {
		fmt.Fprintf(out, "[RAG] %d. id=%d score=%.6f\n", i+1, r.ID, r.Score)
		fmt.Fprintf(out, "    %s\n", r.Summary)
	}
	fmt.Fprintf(out, "[RAG] context:\n%s\n", FormatContext(Texts(results)))
	return nil
}
