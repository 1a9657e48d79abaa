// internal/metrics/aggregator.go
// Package metrics records request counts and latencies for chat-completion
// calls.
package metrics

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// ModelMetrics holds the counters for one model.
type ModelMetrics struct {
	ModelName    string
	Requests     int
	Failures     int
	TotalLatency time.Duration
	MaxLatency   time.Duration
}

// AverageLatency returns the mean latency over all requests.
func (m ModelMetrics) AverageLatency() time.Duration {
	if m.Requests == 0 {
		return 0
	}
	return m.TotalLatency / time.Duration(m.Requests)
}

// Aggregator collects metrics per model. It is safe for concurrent use.
type Aggregator struct {
	mutex   sync.Mutex
	metrics map[string]*ModelMetrics
}

func NewAggregator() *Aggregator {
	return &Aggregator{metrics: make(map[string]*ModelMetrics)}
}

// Record adds one request outcome.
func (a *Aggregator) Record(model string, latency time.Duration, ok bool) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	m, found := a.metrics[model]
	if !found {
		m = &ModelMetrics{ModelName: model}
		a.metrics[model] = m
	}
	m.Requests++
	if !ok {
		m.Failures++
	}
	m.TotalLatency += latency
	if latency > m.MaxLatency {
		m.MaxLatency = latency
	}
}

// Snapshot returns a copy of the metrics sorted by model name.
func (a *Aggregator) Snapshot() []ModelMetrics {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	out := make([]ModelMetrics, 0, len(a.metrics))
	for _, m := range a.metrics {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModelName < out[j].ModelName })
	return out
}

// Report writes one line per model.
func (a *Aggregator) Report(out io.Writer) {
	for _, m := range a.Snapshot() {
		fmt.Fprintf(out, "model=%s requests=%d failures=%d avg=%s max=%s\n",
			m.ModelName, m.Requests, m.Failures,
			m.AverageLatency().Truncate(time.Millisecond), m.MaxLatency.Truncate(time.Millisecond))
	}
}
