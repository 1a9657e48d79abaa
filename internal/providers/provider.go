// internal/providers/provider.go

// Package providers defines the abstraction for talking to a chat-completion
// model server. Failures are reported as values on Completion so callers can
// degrade without unwinding.
package providers

import (
	"context"
	"net/http"
	"strings"
)

// ChatMessage represents a single message in a chat conversation.
// It contains the role of the message sender (e.g., "user", "assistant") and the message content.
type ChatMessage struct {
	Role    string
	Content string
}

// CompletionRequest is a single-turn, non-streaming completion request.
type CompletionRequest struct {
	Model     string
	Messages  []ChatMessage
	MaxTokens int
}

// UserPrompt builds a request holding one user message.
func UserPrompt(model, prompt string, maxTokens int) CompletionRequest {
	return CompletionRequest{
		Model:     model,
		Messages:  []ChatMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	}
}

// Completion is the outcome of a CompletionRequest. A request that reached
// the model and produced a choice is OK even when Text is empty.
type Completion struct {
	Text       string
	StatusCode int
	Body       string
	Err        error
}

// OK reports whether the request succeeded.
func (c Completion) OK() bool {
	return c.Err == nil && c.StatusCode == http.StatusOK
}

// Detail returns a short description of a failure for logs.
func (c Completion) Detail() string {
	if c.Err != nil {
		return c.Err.Error()
	}
	return strings.TrimSpace(c.Body)
}

// ChatProvider is implemented by chat-completion backends.
type ChatProvider interface {
	// Complete sends the request and returns the first choice's content.
	Complete(ctx context.Context, req CompletionRequest) Completion
	// Close cleans up any resources used by the provider.
	Close() error
}
