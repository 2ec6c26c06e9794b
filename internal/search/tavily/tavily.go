// Package tavily implements the search provider backed by the Tavily
// AI search API.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/zopdev/leadscout/internal/domain"
	"github.com/zopdev/leadscout/internal/search"
	"github.com/zopdev/leadscout/pkg/httpx"
	"github.com/zopdev/leadscout/pkg/logger"
)

// DefaultBaseURL is the Tavily search endpoint.
const DefaultBaseURL = "https://api.tavily.com/search"

// Config configures the Tavily client.
type Config struct {
	// APIKey is the Tavily API key. Required.
	APIKey string

	// BaseURL overrides the API endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient overrides the HTTP client. Defaults to httpx defaults.
	HTTPClient *http.Client

	// Logger is used for request logging. Defaults to a nop logger.
	Logger logger.Logger
}

// Client is the Tavily search provider.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// New creates a Tavily client. Fails fast when the API key is missing.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("tavily: API key is required (set provider.tavily.api_key or TAVILY_API_KEY)")
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
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}, nil
}

// Name returns the provider's configuration name.
func (c *Client) Name() string {
	return search.ProviderTavily
}

type requestBody struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	MaxResults        int    `json:"max_results"`
	IncludeRawContent bool   `json:"include_raw_content"`
	SearchDepth       string `json:"search_depth"`
	Days              int    `json:"days,omitempty"`
}

type result struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Content       string `json:"content"`
	PublishedDate string `json:"published_date,omitempty"`
}

type response struct {
	Results []result `json:"results"`
}

// Search executes a query against Tavily and normalizes the results. Tavily
// has no native pagination, so Options.Page is ignored.
func (c *Client) Search(ctx context.Context, query string, opts search.Options) ([]search.Result, error) {
	body := requestBody{
		APIKey:            c.apiKey,
		Query:             query,
		MaxResults:        opts.Count(),
		IncludeRawContent: false,
		SearchDepth:       "basic",
		Days:              days(opts.DateRange),
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("tavily: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("tavily: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tavily: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Tavily request failed",
			logger.Int("status", resp.StatusCode),
		)
		return nil, &search.ProviderError{
			Provider:   search.ProviderTavily,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}

	var data response
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("tavily: decode response: %w", err)
	}

	results := make([]search.Result, 0, len(data.Results))
	for _, r := range data.Results {
		results = append(results, search.Result{
			Title:         r.Title,
			URL:           r.URL,
			Snippet:       r.Content,
			PublishedDate: r.PublishedDate,
		})
	}

	return results, nil
}

// days maps a date range onto Tavily's absolute day-count filter.
func days(dateRange string) int {
	switch dateRange {
	case domain.DateRangeWeek:
		return 7
	case domain.DateRangeMonth:
		return 30
	case domain.DateRangeThreeMonths:
		return 90
	default:
		return 0
	}
}
