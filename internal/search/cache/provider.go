package cache

import (
	"context"

	"github.com/zopdev/leadscout/internal/search"
)

// CachingProvider wraps a search provider with the query cache. Every call
// checks the cache before issuing a network request; successful results are
// stored for subsequent calls.
type CachingProvider struct {
	inner search.Provider
	cache *Cache
}

// Wrap decorates the given provider with the cache.
func Wrap(p search.Provider, c *Cache) *CachingProvider {
	return &CachingProvider{inner: p, cache: c}
}

// Name returns the wrapped provider's name.
func (p *CachingProvider) Name() string {
	return p.inner.Name()
}

// Search serves from cache when possible and delegates to the wrapped
// provider otherwise. Failed provider calls are never cached.
func (p *CachingProvider) Search(ctx context.Context, query string, opts search.Options) ([]search.Result, error) {
	key := Key(query, opts.Count(), opts.DateRange, opts.Page)

	if results, ok := p.cache.Get(key); ok {
		return results, nil
	}

	results, err := p.inner.Search(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	p.cache.Put(key, results)
	return results, nil
}
