// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultRequestTimeout is the default timeout for HTTP requests.
	defaultRequestTimeout = 600 * time.Second

	DefaultDataPath           = "data/data_1.txt"
	DefaultIndexPath          = "outputs/indexed_documents.json"
	DefaultChunkSizeTokens    = 512
	DefaultTopK               = 7
	DefaultLLMURL             = "http://localhost:8000/v1/chat/completions"
	DefaultLLMModel           = "mistralai/Mistral-Small-24B-Instruct-2501"
	DefaultMaxTokens          = 256
	DefaultEmbeddingURL       = "http://localhost:8001/v1"
	DefaultEmbeddingModel     = "dangvantuan/french-document-embedding"
	DefaultEmbeddingBatchSize = 32
	DefaultTokenizer          = "tiktoken"
	DefaultTokenizerEncoding  = "cl100k_base"
	DefaultServeAddr          = ":8080"
)

// Config represents the top-level application configuration.
type Config struct {
	DataPath           string `json:"dataPath" mapstructure:"dataPath"`
	IndexPath          string `json:"indexPath" mapstructure:"indexPath"`
	ChunkSizeTokens    int    `json:"chunkSizeTokens" mapstructure:"chunkSizeTokens"`
	TopK               int    `json:"topK" mapstructure:"topK"`
	LLMURL             string `json:"llmURL" mapstructure:"llmURL"`
	LLMModel           string `json:"llmModel" mapstructure:"llmModel"`
	MaxTokens          int    `json:"maxTokens" mapstructure:"maxTokens"`
	EmbeddingURL       string `json:"embeddingURL" mapstructure:"embeddingURL"`
	EmbeddingModel     string `json:"embeddingModel" mapstructure:"embeddingModel"`
	EmbeddingAPIKey    string `json:"embeddingAPIKey,omitempty" mapstructure:"embeddingAPIKey"`
	EmbeddingBatchSize int    `json:"embeddingBatchSize" mapstructure:"embeddingBatchSize"`
	Tokenizer          string `json:"tokenizer" mapstructure:"tokenizer"`
	TokenizerEncoding  string `json:"tokenizerEncoding" mapstructure:"tokenizerEncoding"`
	TimeoutSeconds     int    `json:"timeout,omitempty" mapstructure:"timeout"`
	LogFile            string `json:"logFile,omitempty" mapstructure:"logFile"`
	Debug              bool   `json:"debug" mapstructure:"debug"`
	LanguageCheck      bool   `json:"languageCheck" mapstructure:"languageCheck"`
	ServeAddr          string `json:"serveAddr,omitempty" mapstructure:"serveAddr"`
	ConfigPath         string `json:"-" mapstructure:"-"`
}

// Defaults returns a Config populated with the stock pipeline settings.
func Defaults() Config {
	return Config{
		DataPath:           DefaultDataPath,
		IndexPath:          DefaultIndexPath,
		ChunkSizeTokens:    DefaultChunkSizeTokens,
		TopK:               DefaultTopK,
		LLMURL:             DefaultLLMURL,
		LLMModel:           DefaultLLMModel,
		MaxTokens:          DefaultMaxTokens,
		EmbeddingURL:       DefaultEmbeddingURL,
		EmbeddingModel:     DefaultEmbeddingModel,
		EmbeddingBatchSize: DefaultEmbeddingBatchSize,
		Tokenizer:          DefaultTokenizer,
		TokenizerEncoding:  DefaultTokenizerEncoding,
		TimeoutSeconds:     int(defaultRequestTimeout.Seconds()),
		LanguageCheck:      true,
		ServeAddr:          DefaultServeAddr,
	}
}

// RequestTimeout returns the timeout duration for HTTP requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file. An empty result disables file logging.
func (c Config) LogFilePath() string {
	return strings.TrimSpace(c.LogFile)
}

// Validate reports the first setting that would make the pipeline unusable.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.DataPath) == "":
		return errors.New("dataPath is required")
	case strings.TrimSpace(c.IndexPath) == "":
		return errors.New("indexPath is required")
	case c.ChunkSizeTokens <= 0:
		return fmt.Errorf("chunkSizeTokens must be positive, got %d", c.ChunkSizeTokens)
	case c.MaxTokens <= 0:
		return fmt.Errorf("maxTokens must be positive, got %d", c.MaxTokens)
	case strings.TrimSpace(c.LLMURL) == "":
		return errors.New("llmURL is required")
	case strings.TrimSpace(c.LLMModel) == "":
		return errors.New("llmModel is required")
	case strings.TrimSpace(c.EmbeddingURL) == "":
		return errors.New("embeddingURL is required")
	case strings.TrimSpace(c.EmbeddingModel) == "":
		return errors.New("embeddingModel is required")
	}
	return nil
}

// Load reads the application configuration from the specified path. Missing
// keys keep their default values.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	config := Defaults()
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}

	return config, nil
}
