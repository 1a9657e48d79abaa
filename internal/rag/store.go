package rag

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const indexSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "chunk", "summary"],
    "properties": {
      "id": {"type": "integer", "minimum": 0},
      "chunk": {"type": "string"},
      "summary": {"type": "string"}
    }
  }
}`

var indexSchemaLoader = gojsonschema.NewStringLoader(indexSchema)

// IndexExists reports whether an index file is present at path.
func IndexExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// SaveIndex writes entries as a 4-space indented JSON array, creating parent
// directories and replacing any existing file. Non-ASCII text is written
// as-is.
func SaveIndex(path string, entries []IndexedEntry) error {
	if entries == nil {
		entries = []IndexedEntry{}
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create index directory: %w", err)
		}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write index file: %w", err)
	}
	return nil
}

// LoadIndex reads and validates an index file. Entries must match the index
// schema and carry ids equal to their position.
func LoadIndex(path string) ([]IndexedEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	result, err := gojsonschema.Validate(indexSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("parse index %s: %w", path, err)
	}
	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return nil, fmt.Errorf("index %s does not match schema: %s", path, strings.Join(errs, "; "))
	}

	var entries []IndexedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode index %s: %w", path, err)
	}
	if err := checkDenseIDs(entries); err != nil {
		return nil, fmt.Errorf("index %s: %w", path, err)
	}
	return entries, nil
}

func checkDenseIDs(entries []IndexedEntry) error {
	for i, e := range entries {
		if e.ID != i {
			return fmt.Errorf("entry at position %d has id %d", i, e.ID)
		}
	}
	return nil
}
