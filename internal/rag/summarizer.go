package rag

import (
	"context"

	"github.com/mwiater/legalrag/internal/logging"
	"github.com/mwiater/legalrag/internal/providers"
)

const summarizePrefix = "Résume ce texte juridique en français:\n"

// SummarizePrompt returns the instruction sent for a single chunk.
func SummarizePrompt(chunk string) string {
	return summarizePrefix + chunk
}

// Summarizer condenses chunks through a chat model.
type Summarizer struct {
	Provider  providers.ChatProvider
	Model     string
	MaxTokens int
}

// Summarize returns the model's summary of chunk. Failed requests are logged
// and yield an empty summary so indexing can continue.
func (s Summarizer) Summarize(ctx context.Context, chunk string) string {
	res := s.Provider.Complete(ctx, providers.UserPrompt(s.Model, SummarizePrompt(chunk), s.MaxTokens))
	if !res.OK() {
		logging.Error(res.Err, "summarization failed: status=%d body=%s", res.StatusCode, res.Detail())
		return ""
	}
	return res.Text
}
