package tokenizer

import (
	"strings"
	"testing"

	"github.com/pkoukk/tiktoken-go"
)

func TestWordsRoundTrip(t *testing.T) {
	w := NewWords()
	ids, err := w.Encode("Article 1 : la loi  ne dispose que pour l'avenir ; la loi")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(ids) != 13 {
		t.Fatalf("expected 13 tokens, got %d", len(ids))
	}
	if ids[3] != ids[11] {
		t.Fatalf("expected repeated word to reuse id, got %d and %d", ids[3], ids[11])
	}
	got := strings.Join(w.Tokens(ids), " ")
	if got != "Article 1 : la loi ne dispose que pour l'avenir ; la loi" {
		t.Fatalf("unexpected rendering: %q", got)
	}
}

func TestWordsUnknownID(t *testing.T) {
	w := NewWords()
	if toks := w.Tokens([]int{5}); toks[0] != "" {
		t.Fatalf("expected empty token for unknown id, got %q", toks[0])
	}
}

func TestNewRejectsUnknownKind(t *testing.T) {
	if _, err := New("sentencepiece", ""); err == nil {
		t.Fatal("expected error for unsupported tokenizer")
	}
	tok, err := New("words", "")
	if err != nil {
		t.Fatalf("New(words): %v", err)
	}
	if tok.Name() != "words" {
		t.Fatalf("unexpected name %q", tok.Name())
	}
}

// fixtureLoader serves a tiny byte-level vocabulary so the tiktoken path runs
// without downloading an encoding file.
type fixtureLoader struct {
	files []string
}

func (f *fixtureLoader) LoadTiktokenBpe(file string) (map[string]int, error) {
	f.files = append(f.files, file)
	ranks := make(map[string]int, 260)
	for b := 0; b < 256; b++ {
		ranks[string([]byte{byte(b)})] = b
	}
	ranks["la"] = 256
	ranks[" l"] = 257
	ranks[" lo"] = 258
	ranks[" loi"] = 259
	return ranks, nil
}

func TestTiktokenOffline(t *testing.T) {
	loader := &fixtureLoader{}
	tiktoken.SetBpeLoader(loader)
	t.Cleanup(func() { tiktoken.SetBpeLoader(tiktoken.NewDefaultBpeLoader()) })

	tok, err := New("tiktoken", "gpt-4")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tok.Name() != "tiktoken/cl100k_base" {
		t.Fatalf("expected gpt-4 to resolve to cl100k_base, got %s", tok.Name())
	}
	if len(loader.files) != 1 || !strings.HasSuffix(loader.files[0], "cl100k_base.tiktoken") {
		t.Fatalf("expected one cl100k_base load, got %v", loader.files)
	}

	ids, err := tok.Encode("la loi")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(ids) != 2 || ids[0] != 256 || ids[1] != 259 {
		t.Fatalf("unexpected ids %v", ids)
	}
	if got := strings.Join(tok.Tokens(ids), "|"); got != "la| loi" {
		t.Fatalf("unexpected tokens %q", got)
	}

	// Unmerged multi-byte characters become one id per byte.
	ids, _ = tok.Encode("é")
	if len(ids) != 2 {
		t.Fatalf("expected two byte-level ids for é, got %v", ids)
	}
	if strings.Join(tok.Tokens(ids), "") != "é" {
		t.Fatalf("expected byte tokens to concatenate back to é")
	}
}

func TestResolveEncoding(t *testing.T) {
	cases := map[string]string{
		"":                       "cl100k_base",
		"p50k_base":              "p50k_base",
		"text-embedding-ada-002": "cl100k_base",
		"gpt-3.5-turbo-0301":     "cl100k_base",
	}
	for name, want := range cases {
		got, err := resolveEncoding(name)
		if err != nil || got != want {
			t.Fatalf("resolveEncoding(%q) = %q, %v; want %q", name, got, err, want)
		}
	}
	if _, err := resolveEncoding("mistralai/Mistral-7B-Instruct-v0.3"); err == nil {
		t.Fatal("expected an error for a model without a tiktoken encoding")
	}
}
