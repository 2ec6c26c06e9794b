package enrich

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func TestEnrichProfileMapsResponse(t *testing.T) {
	var gotQuery url.Values

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"full_name":         "Jane Doe",
			"headline":          "VP Engineering at Acme",
			"occupation":        "VP Engineering",
			"city":              "Austin",
			"state":             "Texas",
			"country_full_name": "United States",
			"industry":          "Software",
			"experiences": []map[string]any{
				{
					"title":   "Engineer",
					"company": "OldCo",
					"ends_at": map[string]int{"year": 2020, "month": 6},
				},
				{
					"title":   "VP Engineering",
					"company": "Acme",
					"ends_at": nil,
				},
			},
		})
	})

	profile, err := client.EnrichProfile(context.Background(), "https://www.linkedin.com/in/jane-doe")
	require.NoError(t, err)

	assert.Equal(t, "https://www.linkedin.com/in/jane-doe", profile.LinkedInURL)
	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, "VP Engineering", profile.Title)
	assert.Equal(t, "Acme", profile.Company)
	assert.Equal(t, "Austin, Texas, United States", profile.Location)
	assert.False(t, profile.EnrichedAt.IsZero())

	assert.Equal(t, "https://www.linkedin.com/in/jane-doe", gotQuery.Get("url"))
	assert.Equal(t, "if-present", gotQuery.Get("use_cache"))
}

func TestEnrichProfileFallsBackToFirstLastName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"first_name": "Jane",
			"last_name":  "Doe",
			"occupation": "CTO",
		})
	})

	profile, err := client.EnrichProfile(context.Background(), "https://www.linkedin.com/in/jane-doe")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, "CTO", profile.Title, "occupation used when no current job")
}

func TestEnrichProfileReturnsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte("out of credits"))
	})

	_, err := client.EnrichProfile(context.Background(), "https://www.linkedin.com/in/jane-doe")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusPaymentRequired, apiErr.StatusCode)
	assert.Equal(t, "out of credits", apiErr.Body)
}

func TestExtractProfileURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "profile url",
			url:  "https://www.linkedin.com/in/jane-doe?utm=x",
			want: "https://www.linkedin.com/in/jane-doe",
		},
		{
			name: "post url",
			url:  "https://www.linkedin.com/posts/john-smith_cloud-activity-123",
			want: "https://www.linkedin.com/in/john-smith",
		},
		{
			name: "non linkedin url",
			url:  "https://example.com/in/someone",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractProfileURL(tt.url))
		})
	}
}
