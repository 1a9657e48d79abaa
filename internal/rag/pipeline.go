package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mwiater/legalrag/internal/logging"
)

// NoResultsMessage is shown when retrieval selects nothing.
const NoResultsMessage = "⚠️ Aucun extrait pertinent n'a été trouvé."

// ErrNotReady is returned by queries issued before Prepare completes.
var ErrNotReady = errors.New("index is not ready")

// State is the lifecycle stage of a Pipeline.
type State int

const (
	StateNoIndex State = iota
	StateIndexing
	StateReady
)

func (s State) String() string {
	switch s {
	case StateNoIndex:
		return "no-index"
	case StateIndexing:
		return "indexing"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Response is the result of one question.
type Response struct {
	Query    string
	Found    bool
	Sources  []RetrievedSummary
	Answer   Answer
	Language LanguageGuess
}

// Pipeline drives indexing, embedding and question answering over one
// document. Operations are serialized so one Pipeline may be shared.
type Pipeline struct {
	opts Options

	run sync.Mutex

	mu        sync.RWMutex
	state     State
	index     *VectorIndex
	retriever *Retriever
	stats     IndexStats
}

func NewPipeline(opts Options) (*Pipeline, error) {
	if opts.Chat == nil {
		return nil, errors.New("chat provider is required")
	}
	if opts.Embedder == nil {
		return nil, errors.New("embedder is required")
	}
	return &Pipeline{opts: opts, state: StateNoIndex}, nil
}

func (p *Pipeline) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Len returns the number of indexed summaries.
func (p *Pipeline) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.index.Len()
}

// LastIndexStats returns the statistics of the most recent indexing run in
// this process, if any.
func (p *Pipeline) LastIndexStats() IndexStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stats
}

func (p *Pipeline) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// Prepare loads the index file, building it first when it does not exist,
// then embeds every summary.
func (p *Pipeline) Prepare(ctx context.Context) error {
	p.run.Lock()
	defer p.run.Unlock()

	if !IndexExists(p.opts.IndexPath) {
		logging.LogEvent("ℹ️ Index file not found. Building index...")
		if err := p.build(ctx); err != nil {
			return err
		}
	}
	return p.load(ctx)
}

// Rebuild reindexes the document even when an index file already exists.
func (p *Pipeline) Rebuild(ctx context.Context) error {
	p.run.Lock()
	defer p.run.Unlock()

	if err := p.build(ctx); err != nil {
		return err
	}
	return p.load(ctx)
}

// build runs the indexer. On failure a previously loaded index stays in
// service.
func (p *Pipeline) build(ctx context.Context) error {
	p.mu.Lock()
	previous := p.state
	p.state = StateIndexing
	p.mu.Unlock()

	_, stats, err := BuildIndex(ctx, p.opts)
	p.mu.Lock()
	p.stats = stats
	if err != nil {
		if previous == StateReady && p.retriever != nil {
			p.state = StateReady
		} else {
			p.state = StateNoIndex
		}
	}
	p.mu.Unlock()
	return err
}

func (p *Pipeline) load(ctx context.Context) error {
	entries, err := LoadIndex(p.opts.IndexPath)
	if err != nil {
		p.setState(StateNoIndex)
		return err
	}
	index, err := InitializeEmbeddings(ctx, p.opts.Embedder, entries)
	if err != nil {
		p.setState(StateNoIndex)
		return err
	}

	p.mu.Lock()
	p.index = index
	p.retriever = NewRetriever(index, p.opts.Embedder)
	p.state = StateReady
	p.mu.Unlock()
	logging.LogEvent("[RAG] Index ready: %d summaries embedded", index.Len())
	return nil
}

// Retrieve ranks summaries for query without asking the model. A
// non-positive topK falls back to the configured value.
func (p *Pipeline) Retrieve(ctx context.Context, query string, topK int) ([]RetrievedSummary, error) {
	p.run.Lock()
	defer p.run.Unlock()
	return p.retrieve(ctx, query, topK)
}

func (p *Pipeline) retrieve(ctx context.Context, query string, topK int) ([]RetrievedSummary, error) {
	p.mu.RLock()
	state, retriever := p.state, p.retriever
	p.mu.RUnlock()
	if state != StateReady {
		return nil, ErrNotReady
	}
	if topK <= 0 {
		topK = p.opts.TopK
	}
	return retriever.Retrieve(ctx, query, topK)
}

// AskObserver is called with the retrieved summaries once retrieval found
// something and before the answer is generated.
type AskObserver func(sources []RetrievedSummary)

// Ask answers query from the top-ranked summaries. When nothing is retrieved
// the response has Found unset and no model call is made.
func (p *Pipeline) Ask(ctx context.Context, query string, topK int) (Response, error) {
	return p.AskWithObserver(ctx, query, topK, nil)
}

// AskWithObserver is Ask with a callback between retrieval and generation.
func (p *Pipeline) AskWithObserver(ctx context.Context, query string, topK int, observe AskObserver) (Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Response{}, errors.New("question is empty")
	}

	p.run.Lock()
	defer p.run.Unlock()

	resp := Response{Query: query}
	if p.opts.LanguageCheck {
		resp.Language = DetectLanguage(query)
		if !resp.Language.French() {
			logging.Warn("question appears to be written in %s; answers are generated in French", resp.Language.Name)
		}
	}

	results, err := p.retrieve(ctx, query, topK)
	if err != nil {
		return resp, err
	}
	if len(results) == 0 {
		return resp, nil
	}

	resp.Found = true
	resp.Sources = results
	if observe != nil {
		observe(results)
	}
	resp.Answer = p.opts.answerer().Answer(ctx, query, Texts(results))
	return resp, nil
}
