package rag

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder maps texts to dense vectors, one per input and in input order.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbedderConfig configures an OpenAI-compatible embeddings endpoint.
type EmbedderConfig struct {
	BaseURL   string
	Model     string
	APIKey    string
	BatchSize int
	Client    *http.Client
}

// OpenAIEmbedder calls an OpenAI-compatible /embeddings endpoint through
// langchaingo.
type OpenAIEmbedder struct {
	model string
	impl  *embeddings.EmbedderImpl
}

// NewOpenAIEmbedder builds the embedder once; callers share the value.
func NewOpenAIEmbedder(cfg EmbedderConfig) (*OpenAIEmbedder, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("embedding model is empty")
	}
	token := strings.TrimPrefix(strings.TrimSpace(cfg.APIKey), "Bearer ")
	if token == "" {
		// Local inference servers ignore the key but the client requires one.
		token = "EMPTY"
	}
	opts := []openai.Option{
		openai.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")),
		openai.WithToken(token),
		openai.WithModel(cfg.Model),
		openai.WithEmbeddingModel(cfg.Model),
	}
	if cfg.Client != nil {
		opts = append(opts, openai.WithHTTPClient(cfg.Client))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create embedding client: %w", err)
	}

	embOpts := []embeddings.Option{embeddings.WithStripNewLines(false)}
	if cfg.BatchSize > 0 {
		embOpts = append(embOpts, embeddings.WithBatchSize(cfg.BatchSize))
	}
	impl, err := embeddings.NewEmbedder(llm, embOpts...)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}
	return &OpenAIEmbedder{model: cfg.Model, impl: impl}, nil
}

func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	vectors, err := e.impl.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed %d texts with %s: %w", len(texts), e.model, err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding response returned %d vectors for %d texts", len(vectors), len(texts))
	}
	return vectors, nil
}
