package rag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mwiater/legalrag/internal/providers"
	"github.com/mwiater/legalrag/internal/tokenizer"
)

// Options carries the settings and collaborators of the pipeline. The
// tokenizer, chat provider and embedder are constructed once by the caller
// and injected here.
type Options struct {
	DataPath      string
	IndexPath     string
	ChunkSize     int
	TopK          int
	Model         string
	MaxTokens     int
	LanguageCheck bool

	Tokenizer tokenizer.Tokenizer
	Chat      providers.ChatProvider
	Embedder  Embedder
}

func (o Options) validateIndexing() error {
	if strings.TrimSpace(o.DataPath) == "" {
		return errors.New("data path is required")
	}
	if strings.TrimSpace(o.IndexPath) == "" {
		return errors.New("index path is required")
	}
	if o.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be greater than zero, got %d", o.ChunkSize)
	}
	if o.Tokenizer == nil {
		return errors.New("tokenizer is required")
	}
	if o.Chat == nil {
		return errors.New("chat provider is required")
	}
	return nil
}

func (o Options) summarizer() Summarizer {
	return Summarizer{Provider: o.Chat, Model: o.Model, MaxTokens: o.MaxTokens}
}

func (o Options) answerer() Answerer {
	return Answerer{Provider: o.Chat, Model: o.Model, MaxTokens: o.MaxTokens}
}
