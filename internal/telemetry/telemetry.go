// Package telemetry exposes Prometheus metrics for the lead discovery
// service.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for provider request metrics.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	classificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leadscout",
		Name:      "classifications_total",
		Help:      "Search input classifications by detected intent.",
	}, []string{"intent"})

	providerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leadscout",
		Name:      "provider_requests_total",
		Help:      "Search provider requests by provider and outcome.",
	}, []string{"provider", "outcome"})

	providerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "leadscout",
		Name:      "provider_request_duration_seconds",
		Help:      "Search provider request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider"})

	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "leadscout",
		Name:      "query_cache_hits_total",
		Help:      "Query cache hits.",
	})

	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "leadscout",
		Name:      "query_cache_misses_total",
		Help:      "Query cache misses, including expired entries.",
	})

	cacheEvictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "leadscout",
		Name:      "query_cache_evictions_total",
		Help:      "Query cache evictions due to the capacity cap.",
	})

	trendingCategoryFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leadscout",
		Name:      "trending_category_failures_total",
		Help:      "Trending feed category fetches that failed and were isolated.",
	}, []string{"category"})
)

// RecordClassification counts a classified search input by intent.
func RecordClassification(intent string) {
	classificationsTotal.WithLabelValues(intent).Inc()
}

// RecordProviderRequest counts a provider request by outcome.
func RecordProviderRequest(provider, outcome string) {
	providerRequestsTotal.WithLabelValues(provider, outcome).Inc()
}

// ObserveProviderDuration records provider request latency in seconds.
func ObserveProviderDuration(provider string, seconds float64) {
	providerRequestDuration.WithLabelValues(provider).Observe(seconds)
}

// RecordCacheHit counts a query cache hit.
func RecordCacheHit() {
	cacheHitsTotal.Inc()
}

// RecordCacheMiss counts a query cache miss.
func RecordCacheMiss() {
	cacheMissesTotal.Inc()
}

// RecordCacheEviction counts a capacity eviction.
func RecordCacheEviction() {
	cacheEvictionsTotal.Inc()
}

// RecordTrendingCategoryFailure counts an isolated category fetch failure.
func RecordTrendingCategoryFailure(category string) {
	trendingCategoryFailures.WithLabelValues(category).Inc()
}
