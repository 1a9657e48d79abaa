// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestLoad verifies that a partial config file is merged over the defaults,
// and that invalid JSON, invalid values and missing files are rejected.
func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
        "dataPath": "corpus/code_civil.txt",
        "topK": 3,
        "llmModel": "mistral-small"
    }`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if cfg.DataPath != "corpus/code_civil.txt" {
		t.Fatalf("expected dataPath override, got %q", cfg.DataPath)
	}
	if cfg.TopK != 3 {
		t.Fatalf("expected topK 3, got %d", cfg.TopK)
	}
	if cfg.IndexPath != DefaultIndexPath {
		t.Fatalf("expected default index path, got %q", cfg.IndexPath)
	}
	if cfg.ChunkSizeTokens != 512 || cfg.MaxTokens != 256 {
		t.Fatalf("expected default chunk size and max tokens, got %d/%d", cfg.ChunkSizeTokens, cfg.MaxTokens)
	}
	if cfg.TimeoutSeconds != 600 {
		t.Fatalf("expected default timeout of 600 seconds, got %d", cfg.TimeoutSeconds)
	}
	if cfg.RequestTimeout() != 600*time.Second {
		t.Fatalf("expected default request timeout of 600s, got %v", cfg.RequestTimeout())
	}
	if cfg.ConfigPath != path {
		t.Fatalf("expected config path %q, got %q", path, cfg.ConfigPath)
	}

	if _, err := Load(writeConfig(t, `{ "topK": `)); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}
	if _, err := Load(writeConfig(t, `{ "chunkSizeTokens": -1 }`)); err == nil {
		t.Fatal("Load() with a negative chunk size should have failed")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("Load() with a nonexistent file should have failed")
	}
}

func TestRequestTimeoutOverride(t *testing.T) {
	cfg := Config{TimeoutSeconds: 30}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Fatalf("expected 30s, got %v", cfg.RequestTimeout())
	}
	cfg.TimeoutSeconds = 0
	if cfg.RequestTimeout() != defaultRequestTimeout {
		t.Fatalf("expected default timeout, got %v", cfg.RequestTimeout())
	}
}

func TestValidateDefaults(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	cfg := Defaults()
	cfg.EmbeddingModel = " "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for blank embedding model")
	}
}

func TestShowConfigFallback(t *testing.T) {
	var buf bytes.Buffer
	ShowConfig(&buf, "", nil, Defaults())
	out := buf.String()
	if !strings.Contains(out, "No config file loaded") {
		t.Fatalf("expected fallback notice, got: %s", out)
	}
	if !strings.Contains(out, DefaultLLMModel) {
		t.Fatalf("expected default model in output, got: %s", out)
	}
	if strings.Contains(out, "Log File") {
		t.Fatalf("did not expect log file line without a log file: %s", out)
	}
}

func TestShowOverrides(t *testing.T) {
	path := writeConfig(t, `{"topK": 3, "tokenizer": "Words", "llmModel": "mistral"}`)

	effective, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	effective.Tokenizer = "words"
	if keys := Overrides(effective, effective); len(keys) != 0 {
		t.Fatalf("expected no overrides for identical configs, got %v", keys)
	}

	effective.TopK = 9
	effective.LLMModel = "from-env"
	var buf bytes.Buffer
	if err := ShowOverrides(&buf, path, effective); err != nil {
		t.Fatalf("ShowOverrides: %v", err)
	}
	if !strings.Contains(buf.String(), "Overridden by environment or flags: topK, llmModel") {
		t.Fatalf("unexpected overrides output: %s", buf.String())
	}

	buf.Reset()
	if err := ShowOverrides(&buf, "", effective); err != nil || buf.Len() != 0 {
		t.Fatalf("expected nothing without a config file, got %q, %v", buf.String(), err)
	}
	if err := ShowOverrides(&buf, filepath.Join(t.TempDir(), "absent.json"), effective); err == nil {
		t.Fatal("expected an error for an unreadable config file")
	}
}
