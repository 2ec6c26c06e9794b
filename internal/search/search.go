// Package search defines the provider abstraction over interchangeable
// backend search engines and the shared query construction and result
// merging logic.
package search

import "context"

// Provider names recognized by configuration.
const (
	ProviderSerper    = "serper"
	ProviderGoogleCSE = "googlecse"
	ProviderTavily    = "tavily"
)

// DefaultResultCount is the number of results requested per query when the
// caller does not specify one.
const DefaultResultCount = 10

// Result is the unified shape all backend adapters produce. URL is the
// canonical identity key for deduplication and is always present.
type Result struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Snippet       string `json:"snippet"`
	PublishedDate string `json:"publishedDate,omitempty"`
}

// Options controls a single provider query.
type Options struct {
	// ResultCount is the number of results to request. Zero means
	// DefaultResultCount.
	ResultCount int

	// DateRange is one of the domain date range values, or empty for no
	// recency filter. Each adapter maps it onto its own vocabulary.
	DateRange string

	// Page is the 1-based result page. Zero means the first page. Only
	// adapters with native pagination honor it.
	Page int
}

// Count returns the effective result count.
func (o Options) Count() int {
	if o.ResultCount <= 0 {
		return DefaultResultCount
	}
	return o.ResultCount
}

// Provider is a single search backend. Exactly one provider is live per
// deployment, selected by configuration at startup.
type Provider interface {
	// Name returns the provider's configuration name.
	Name() string

	// Search executes the query and returns normalized results. Non-2xx
	// backend responses surface as *ProviderError.
	Search(ctx context.Context, query string, opts Options) ([]Result, error)
}
