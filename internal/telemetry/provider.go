package telemetry

import (
	"context"
	"time"

	"github.com/zopdev/leadscout/internal/search"
)

// InstrumentedProvider wraps a search provider with request counting and
// latency metrics. Wrap the raw adapter, not the caching decorator, so the
// metrics reflect actual backend traffic.
type InstrumentedProvider struct {
	inner search.Provider
}

// Instrument decorates the given provider with metrics.
func Instrument(p search.Provider) *InstrumentedProvider {
	return &InstrumentedProvider{inner: p}
}

// Name returns the wrapped provider's name.
func (p *InstrumentedProvider) Name() string {
	return p.inner.Name()
}

// Search delegates to the wrapped provider and records the outcome.
func (p *InstrumentedProvider) Search(ctx context.Context, query string, opts search.Options) ([]search.Result, error) {
	start := time.Now()
	results, err := p.inner.Search(ctx, query, opts)
	ObserveProviderDuration(p.inner.Name(), time.Since(start).Seconds())

	if err != nil {
		RecordProviderRequest(p.inner.Name(), OutcomeError)
		return nil, err
	}

	RecordProviderRequest(p.inner.Name(), OutcomeSuccess)
	return results, nil
}
