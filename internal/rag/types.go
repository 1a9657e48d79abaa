package rag

// IndexedEntry is one persisted record of the index file. ID equals the
// entry's position in the file.
type IndexedEntry struct {
	ID      int    `json:"id"`
	Chunk   string `json:"chunk"`
	Summary string `json:"summary"`
}

// RetrievedSummary is a summary selected for a query, with its cosine score.
type RetrievedSummary struct {
	ID      int     `json:"id"`
	Summary string  `json:"summary"`
	Score   float64 `json:"score"`
}

// Texts returns the summary texts in rank order.
func Texts(results []RetrievedSummary) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Summary
	}
	return out
}

// IndexStats describes a completed indexing run.
type IndexStats struct {
	Chunks         int
	EmptySummaries int
}
