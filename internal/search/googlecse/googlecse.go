// Package googlecse implements the search provider backed by the Google
// Custom Search Engine API.
package googlecse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/zopdev/leadscout/internal/domain"
	"github.com/zopdev/leadscout/internal/search"
	"github.com/zopdev/leadscout/pkg/httpx"
	"github.com/zopdev/leadscout/pkg/logger"
)

// DefaultBaseURL is the Custom Search API endpoint.
const DefaultBaseURL = "https://www.googleapis.com/customsearch/v1"

// pageSize is the CSE API's fixed maximum results per request.
const pageSize = 10

// Config configures the Google CSE client.
type Config struct {
	// APIKey is the Google API key. Required.
	APIKey string

	// CSEID is the custom search engine ID. Required.
	CSEID string

	// BaseURL overrides the API endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient overrides the HTTP client. Defaults to httpx defaults.
	HTTPClient *http.Client

	// Logger is used for request logging. Defaults to a nop logger.
	Logger logger.Logger
}

// Client is the Google CSE search provider.
type Client struct {
	apiKey     string
	cseID      string
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// New creates a Google CSE client. Fails fast when credentials are missing.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("googlecse: API key is required (set provider.googlecse.api_key or GOOGLE_CSE_API_KEY)")
	}
	if cfg.CSEID == "" {
		return nil, fmt.Errorf("googlecse: CSE ID is required (set provider.googlecse.cse_id or GOOGLE_CSE_ID)")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = httpx.NewDefaultClient()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}

	return &Client{
		apiKey:     cfg.APIKey,
		cseID:      cfg.CSEID,
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}, nil
}

// Name returns the provider's configuration name.
func (c *Client) Name() string {
	return search.ProviderGoogleCSE
}

type item struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Pagemap struct {
		Metatags []map[string]string `json:"metatags"`
	} `json:"pagemap"`
}

type response struct {
	Items []item `json:"items"`
}

// Search executes a query against the CSE API and normalizes the items.
func (c *Client) Search(ctx context.Context, query string, opts search.Options) ([]search.Result, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.cseID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(opts.Count()))

	if opts.Page > 1 {
		startIndex := (opts.Page-1)*pageSize + 1
		params.Set("start", strconv.Itoa(startIndex))
	}

	if code := dateRestrict(opts.DateRange); code != "" {
		params.Set("dateRestrict", code)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("googlecse: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("googlecse: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("googlecse: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Google CSE request failed",
			logger.Int("status", resp.StatusCode),
		)
		return nil, &search.ProviderError{
			Provider:   search.ProviderGoogleCSE,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}

	var data response
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("googlecse: decode response: %w", err)
	}

	results := make([]search.Result, 0, len(data.Items))
	for _, it := range data.Items {
		results = append(results, search.Result{
			Title:         it.Title,
			URL:           it.Link,
			Snippet:       it.Snippet,
			PublishedDate: publishedTime(it),
		})
	}

	return results, nil
}

// publishedTime pulls the article publish time out of the page metatags
// when the indexed page exposes one.
func publishedTime(it item) string {
	if len(it.Pagemap.Metatags) == 0 {
		return ""
	}
	return it.Pagemap.Metatags[0]["article:published_time"]
}

// dateRestrict maps a date range onto the CSE dateRestrict codes.
func dateRestrict(dateRange string) string {
	switch dateRange {
	case domain.DateRangeWeek:
		return "d7"
	case domain.DateRangeMonth:
		return "m1"
	case domain.DateRangeThreeMonths:
		return "m3"
	default:
		return ""
	}
}
