// internal/providerfactory/factory.go
package providerfactory

import (
	"fmt"
	"net/http"

	"github.com/mwiater/legalrag/internal/appconfig"
	"github.com/mwiater/legalrag/internal/logging"
	"github.com/mwiater/legalrag/internal/metrics"
	"github.com/mwiater/legalrag/internal/providers"
	"github.com/mwiater/legalrag/internal/providers/vllm"
	"github.com/mwiater/legalrag/internal/rag"
	"github.com/mwiater/legalrag/internal/tokenizer"
)

// NewChatProvider returns the chat-completion client for the configured
// endpoint, wrapped with metrics collection when an aggregator is given.
func NewChatProvider(cfg *appconfig.Config, aggregator *metrics.Aggregator) (providers.ChatProvider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config provided to provider factory")
	}
	var provider providers.ChatProvider = vllm.New(cfg)
	if aggregator != nil {
		provider = metrics.NewProvider(provider, aggregator)
	}
	return provider, nil
}

// NewTokenizer returns the tokenizer selected by the configuration.
func NewTokenizer(cfg *appconfig.Config) (tokenizer.Tokenizer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config provided to provider factory")
	}
	tok, err := tokenizer.New(cfg.Tokenizer, cfg.TokenizerEncoding)
	if err != nil {
		return nil, err
	}
	logging.LogEvent("Tokenizer ready: %s", tok.Name())
	return tok, nil
}

// NewEmbedder returns the embedding client for the configured endpoint.
func NewEmbedder(cfg *appconfig.Config) (rag.Embedder, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config provided to provider factory")
	}
	return rag.NewOpenAIEmbedder(rag.EmbedderConfig{
		BaseURL:   cfg.EmbeddingURL,
		Model:     cfg.EmbeddingModel,
		APIKey:    cfg.EmbeddingAPIKey,
		BatchSize: cfg.EmbeddingBatchSize,
		Client:    &http.Client{Timeout: cfg.RequestTimeout()},
	})
}

// NewPipeline wires the tokenizer, chat provider and embedder into a
// pipeline. Each collaborator is built once here. aggregator may be nil.
func NewPipeline(cfg *appconfig.Config, aggregator *metrics.Aggregator) (*rag.Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config provided to provider factory")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tok, err := NewTokenizer(cfg)
	if err != nil {
		return nil, err
	}
	chat, err := NewChatProvider(cfg, aggregator)
	if err != nil {
		return nil, err
	}
	embedder, err := NewEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	return rag.NewPipeline(Options(cfg, tok, chat, embedder))
}

// Options maps the configuration onto pipeline options.
func Options(cfg *appconfig.Config, tok tokenizer.Tokenizer, chat providers.ChatProvider, embedder rag.Embedder) rag.Options {
	return rag.Options{
		DataPath:      cfg.DataPath,
		IndexPath:     cfg.IndexPath,
		ChunkSize:     cfg.ChunkSizeTokens,
		TopK:          cfg.TopK,
		Model:         cfg.LLMModel,
		MaxTokens:     cfg.MaxTokens,
		LanguageCheck: cfg.LanguageCheck,
		Tokenizer:     tok,
		Chat:          chat,
		Embedder:      embedder,
	}
}
