package appconfig

import (
	"fmt"
	"io"
	"strings"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &fallback
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:                %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Data Path:            %s\n", cfg.DataPath)
	fmt.Fprintf(out, "  Index Path:           %s\n", cfg.IndexPath)
	fmt.Fprintf(out, "  Chunk Size Tokens:    %d\n", cfg.ChunkSizeTokens)
	fmt.Fprintf(out, "  Top K:                %d\n", cfg.TopK)
	fmt.Fprintf(out, "  Tokenizer:            %s (%s)\n", cfg.Tokenizer, cfg.TokenizerEncoding)
	fmt.Fprintf(out, "  LLM URL:              %s\n", cfg.LLMURL)
	fmt.Fprintf(out, "  LLM Model:            %s\n", cfg.LLMModel)
	fmt.Fprintf(out, "  Max Tokens:           %d\n", cfg.MaxTokens)
	fmt.Fprintf(out, "  Embedding URL:        %s\n", cfg.EmbeddingURL)
	fmt.Fprintf(out, "  Embedding Model:      %s\n", cfg.EmbeddingModel)
	fmt.Fprintf(out, "  Embedding Batch Size: %d\n", cfg.EmbeddingBatchSize)
	fmt.Fprintf(out, "  Request Timeout:      %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  Language Check:       %v\n", cfg.LanguageCheck)
	fmt.Fprintf(out, "  Serve Address:        %s\n", cfg.ServeAddr)
	if path := cfg.LogFilePath(); path != "" {
		fmt.Fprintf(out, "  Log File:             %s\n", path)
	}
}

// Overrides lists the config keys whose effective value differs from the
// value read from the config file alone.
func Overrides(file, effective Config) []string {
	pairs := []struct {
		key     string
		changed bool
	}{
		{"dataPath", file.DataPath != effective.DataPath},
		{"indexPath", file.IndexPath != effective.IndexPath},
		{"chunkSizeTokens", file.ChunkSizeTokens != effective.ChunkSizeTokens},
		{"topK", file.TopK != effective.TopK},
		{"llmURL", file.LLMURL != effective.LLMURL},
		{"llmModel", file.LLMModel != effective.LLMModel},
		{"maxTokens", file.MaxTokens != effective.MaxTokens},
		{"embeddingURL", file.EmbeddingURL != effective.EmbeddingURL},
		{"embeddingModel", file.EmbeddingModel != effective.EmbeddingModel},
		{"embeddingAPIKey", file.EmbeddingAPIKey != effective.EmbeddingAPIKey},
		{"embeddingBatchSize", file.EmbeddingBatchSize != effective.EmbeddingBatchSize},
		{"tokenizer", !strings.EqualFold(strings.TrimSpace(file.Tokenizer), effective.Tokenizer)},
		{"tokenizerEncoding", file.TokenizerEncoding != effective.TokenizerEncoding},
		{"timeout", file.RequestTimeout() != effective.RequestTimeout()},
		{"logFile", file.LogFilePath() != effective.LogFilePath()},
		{"debug", file.Debug != effective.Debug},
		{"languageCheck", file.LanguageCheck != effective.LanguageCheck},
		{"serveAddr", file.ServeAddr != effective.ServeAddr},
	}
	var keys []string
	for _, p := range pairs {
		if p.changed {
			keys = append(keys, p.key)
		}
	}
	return keys
}

// ShowOverrides reloads the config file on its own and prints the keys that
// environment variables or flags replaced.
func ShowOverrides(out io.Writer, file string, effective Config) error {
	if file == "" {
		return nil
	}
	fromFile, err := Load(file)
	if err != nil {
		return err
	}
	keys := Overrides(fromFile, effective)
	fmt.Fprintln(out)
	if len(keys) == 0 {
		fmt.Fprintln(out, "No overrides from environment or flags.")
		return nil
	}
	fmt.Fprintf(out, "Overridden by environment or flags: %s\n", strings.Join(keys, ", "))
	return nil
}
