// internal/metrics/provider.go
package metrics

import (
	"context"
	"time"

	"github.com/mwiater/legalrag/internal/providers"
)

// Provider is a decorator that wraps a ChatProvider to record metrics.
type Provider struct {
	wrapped    providers.ChatProvider
	aggregator *Aggregator
}

// NewProvider creates a new metrics-enabled provider that wraps an existing ChatProvider.
func NewProvider(wrapped providers.ChatProvider, aggregator *Aggregator) *Provider {
	return &Provider{wrapped: wrapped, aggregator: aggregator}
}

// Complete times the wrapped call and records whether it succeeded.
func (p *Provider) Complete(ctx context.Context, req providers.CompletionRequest) providers.Completion {
	start := time.Now()
	res := p.wrapped.Complete(ctx, req)
	if p.aggregator != nil {
		p.aggregator.Record(req.Model, time.Since(start), res.OK())
	}
	return res
}

// Close passes the call through to the wrapped provider.
func (p *Provider) Close() error {
	return p.wrapped.Close()
}
