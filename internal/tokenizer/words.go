package tokenizer

import (
	"strings"
	"sync"
)

// Words treats each whitespace-separated field as one token. Ids are assigned
// on first sight, so they are stable for the lifetime of the value.
type Words struct {
	mu    sync.Mutex
	ids   map[string]int
	vocab []string
}

func NewWords() *Words {
	return &Words{ids: make(map[string]int)}
}

func (w *Words) Encode(text string) ([]int, error) {
	fields := strings.Fields(text)
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]int, len(fields))
	for i, f := range fields {
		id, ok := w.ids[f]
		if !ok {
			id = len(w.vocab)
			w.ids[f] = id
			w.vocab = append(w.vocab, f)
		}
		out[i] = id
	}
	return out, nil
}

func (w *Words) Tokens(ids []int) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(ids))
	for i, id := range ids {
		if id >= 0 && id < len(w.vocab) {
			out[i] = w.vocab[id]
		}
	}
	return out
}

func (w *Words) Name() string { return "words" }
