// Package server exposes the question-answering pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mwiater/legalrag/internal/logging"
	"github.com/mwiater/legalrag/internal/metrics"
	"github.com/mwiater/legalrag/internal/rag"
)

// Asker answers questions against a prepared index.
type Asker interface {
	Ask(ctx context.Context, query string, topK int) (rag.Response, error)
	State() rag.State
}

type AskRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"topK,omitempty"`
}

type Source struct {
	ID      int     `json:"id"`
	Score   float64 `json:"score"`
	Summary string  `json:"summary"`
}

type AskResponse struct {
	Answer  string   `json:"answer"`
	Failed  bool     `json:"failed"`
	Found   bool     `json:"found"`
	Sources []Source `json:"sources"`
}

type Handler struct {
	pipeline Asker
	timeout  time.Duration
	metrics  *metrics.Aggregator
}

func NewHandler(pipeline Asker, timeout time.Duration) *Handler {
	return &Handler{pipeline: pipeline, timeout: timeout}
}

// WithMetrics enables GET /metrics backed by aggregator.
func (h *Handler) WithMetrics(aggregator *metrics.Aggregator) *Handler {
	h.metrics = aggregator
	return h
}

type modelMetrics struct {
	Model        string `json:"model"`
	Requests     int    `json:"requests"`
	Failures     int    `json:"failures"`
	AvgLatencyMs int64  `json:"avgLatencyMs"`
	MaxLatencyMs int64  `json:"maxLatencyMs"`
}

func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	out := []modelMetrics{}
	for _, m := range h.metrics.Snapshot() {
		out = append(out, modelMetrics{
			Model:        m.ModelName,
			Requests:     m.Requests,
			Failures:     m.Failures,
			AvgLatencyMs: m.AverageLatency().Milliseconds(),
			MaxLatencyMs: m.MaxLatency.Milliseconds(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.pipeline.State() != rag.StateReady {
		http.Error(w, h.pipeline.State().String(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	resp, err := h.pipeline.Ask(ctx, req.Question, req.TopK)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, rag.ErrNotReady) {
			status = http.StatusServiceUnavailable
		}
		logging.Error(err, "ask failed")
		http.Error(w, err.Error(), status)
		return
	}

	out := AskResponse{Found: resp.Found, Sources: []Source{}}
	if resp.Found {
		out.Answer = resp.Answer.Text
		out.Failed = resp.Answer.Failed
		for _, s := range resp.Sources {
			out.Sources = append(out.Sources, Source{ID: s.ID, Score: s.Score, Summary: s.Summary})
		}
	} else {
		out.Answer = rag.NoResultsMessage
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(out)
}
