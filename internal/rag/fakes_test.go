package rag

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/mwiater/legalrag/internal/providers"
)

type fakeChat struct {
	mu      sync.Mutex
	prompts []string
	respond func(call int, prompt string) providers.Completion
}

func (f *fakeChat) Complete(ctx context.Context, req providers.CompletionRequest) providers.Completion {
	f.mu.Lock()
	call := len(f.prompts)
	prompt := req.Messages[0].Content
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.respond == nil {
		return providers.Completion{StatusCode: http.StatusOK, Text: "résumé"}
	}
	return f.respond(call, prompt)
}

func (f *fakeChat) Close() error { return nil }

func (f *fakeChat) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func okText(text string) providers.Completion {
	return providers.Completion{StatusCode: http.StatusOK, Text: text}
}

// keywordEmbedder maps a text to a vector with one dimension per keyword,
// set to 1 when the keyword occurs in the text.
type keywordEmbedder struct {
	keywords []string
	batches  [][]string
	err      error
}

func (k *keywordEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	k.batches = append(k.batches, texts)
	if k.err != nil {
		return nil, k.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, len(k.keywords))
		for j, kw := range k.keywords {
			if strings.Contains(text, kw) {
				vec[j] = 1
			}
		}
		out[i] = vec
	}
	return out, nil
}

// tableEmbedder returns fixed vectors by text.
type tableEmbedder struct {
	vectors map[string][]float32
	calls   int
}

func (t *tableEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	t.calls++
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, ok := t.vectors[text]
		if !ok {
			return nil, errors.New("no vector for " + text)
		}
		out[i] = v
	}
	return out, nil
}
