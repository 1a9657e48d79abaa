// internal/providers/vllm/provider.go
// Package vllm provides a ChatProvider backed by an OpenAI-compatible
// /v1/chat/completions endpoint such as the one served by vLLM.
package vllm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mwiater/legalrag/internal/appconfig"
	"github.com/mwiater/legalrag/internal/logging"
	"github.com/mwiater/legalrag/internal/providers"
)

// Provider implements the providers.ChatProvider interface.
type Provider struct {
	client   *http.Client
	endpoint string
}

// New constructs a Provider configured with the application's request timeout.
func New(cfg *appconfig.Config) *Provider {
	return &Provider{
		client: &http.Client{
			Timeout:   cfg.RequestTimeout(),
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		endpoint: strings.TrimSpace(cfg.LLMURL),
	}
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string          `json:"model"`
	Messages  []openAIMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete posts the request and extracts choices[0].message.content. It never
// returns an error directly; transport failures, non-200 statuses and
// malformed bodies all come back as a non-OK Completion.
func (p *Provider) Complete(ctx context.Context, req providers.CompletionRequest) providers.Completion {
	payload := chatRequest{
		Model:     req.Model,
		Messages:  toOpenAIMessages(req.Messages),
		MaxTokens: req.MaxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return providers.Completion{Err: fmt.Errorf("encode chat request: %w", err)}
	}

	logging.LogRequest("RAG->LLM", p.endpoint, req.Model, body)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return providers.Completion{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return providers.Completion{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return providers.Completion{StatusCode: resp.StatusCode, Err: fmt.Errorf("read chat response: %w", err)}
	}
	logging.LogRequest("LLM->RAG", p.endpoint, req.Model, respBody)

	result := providers.Completion{StatusCode: resp.StatusCode, Body: string(respBody)}
	if resp.StatusCode != http.StatusOK {
		return result
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		result.Err = fmt.Errorf("decode chat response: %w", err)
		return result
	}
	if len(parsed.Choices) == 0 {
		result.Err = errors.New("chat response contained no choices")
		return result
	}
	result.Text = strings.TrimSpace(parsed.Choices[0].Message.Content)
	return result
}

// Close releases idle connections held by the HTTP client.
func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

func toOpenAIMessages(messages []providers.ChatMessage) []openAIMessage {
	out := make([]openAIMessage, 0, len(messages))
	for _, msg := range messages {
		role := strings.TrimSpace(msg.Role)
		if role == "" {
			role = "user"
		}
		out = append(out, openAIMessage{Role: role, Content: msg.Content})
	}
	return out
}
