package serper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zopdev/leadscout/internal/domain"
	"github.com/zopdev/leadscout/internal/search"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)
	return client
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestSearchNormalizesOrganicResults(t *testing.T) {
	var gotBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"organic": []map[string]any{
				{
					"title":   "Post about cloud costs",
					"link":    "https://www.linkedin.com/posts/john-smith_cloud",
					"snippet": "Our AWS bill doubled",
					"date":    "2 days ago",
				},
				{
					"title":   "Another post",
					"link":    "https://www.linkedin.com/posts/jane-doe_finops",
					"snippet": "FinOps tips",
				},
			},
		})
	})

	results, err := client.Search(context.Background(), "test query", search.Options{
		DateRange: domain.DateRangeWeek,
	})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Post about cloud costs", results[0].Title)
	assert.Equal(t, "https://www.linkedin.com/posts/john-smith_cloud", results[0].URL)
	assert.Equal(t, "Our AWS bill doubled", results[0].Snippet)
	assert.Equal(t, "2 days ago", results[0].PublishedDate)
	assert.Empty(t, results[1].PublishedDate)

	assert.Equal(t, "test query", gotBody["q"])
	assert.Equal(t, float64(10), gotBody["num"])
	assert.Equal(t, "qdr:w", gotBody["tbs"])
}

func TestSearchOmitsTimeFilterWithoutDateRange(t *testing.T) {
	var gotBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{"organic": []any{}})
	})

	_, err := client.Search(context.Background(), "q", search.Options{})
	require.NoError(t, err)

	_, hasTBS := gotBody["tbs"]
	assert.False(t, hasTBS)
}

func TestSearchReturnsProviderErrorOnFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("invalid api key"))
	})

	_, err := client.Search(context.Background(), "q", search.Options{})
	require.Error(t, err)

	var pe *search.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusForbidden, pe.StatusCode)
	assert.Equal(t, "invalid api key", pe.Body)
}

func TestSearchRetriesOnceOnQuotaExhaustion(t *testing.T) {
	var calls atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte("quota exceeded"))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"organic": []map[string]any{
				{"title": "t", "link": "https://a", "snippet": "s"},
			},
		})
	})

	results, err := client.Search(context.Background(), "q", search.Options{})
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSearchGivesUpAfterRetryBudget(t *testing.T) {
	var calls atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("quota exceeded"))
	})

	_, err := client.Search(context.Background(), "q", search.Options{})
	require.Error(t, err)
	assert.True(t, search.IsQuotaExhausted(err))
	assert.Equal(t, int32(2), calls.Load())
}

func TestSearchDoesNotRetryOtherErrors(t *testing.T) {
	var calls atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Search(context.Background(), "q", search.Options{})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
