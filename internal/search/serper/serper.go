// Package serper implements the search provider backed by the Serper.dev
// Google search API.
package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zopdev/leadscout/internal/domain"
	"github.com/zopdev/leadscout/internal/search"
	"github.com/zopdev/leadscout/pkg/httpx"
	"github.com/zopdev/leadscout/pkg/logger"
	"github.com/zopdev/leadscout/pkg/retry"
)

// DefaultBaseURL is the Serper search endpoint.
const DefaultBaseURL = "https://google.serper.dev/search"

// Config configures the Serper client.
type Config struct {
	// APIKey is the Serper API key. Required.
	APIKey string

	// BaseURL overrides the API endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient overrides the HTTP client. Defaults to httpx defaults.
	HTTPClient *http.Client

	// Logger is used for request logging. Defaults to a nop logger.
	Logger logger.Logger
}

// Client is the Serper search provider.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
	retryCfg   retry.Config
}

// New creates a Serper client. Fails fast when the API key is missing so a
// misconfigured deployment surfaces before any search is attempted.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("serper: API key is required (set provider.serper.api_key or SERPER_API_KEY)")
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
		// Serper bills per query and rate-limits aggressively; one
		// bounded retry absorbs transient 429s without hammering.
		retryCfg: retry.Config{
			MaxAttempts:  2,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     2 * time.Second,
			Multiplier:   2.0,
			IsRetryable:  search.IsQuotaExhausted,
		},
	}, nil
}

// Name returns the provider's configuration name.
func (c *Client) Name() string {
	return search.ProviderSerper
}

type requestBody struct {
	Q    string `json:"q"`
	Num  int    `json:"num"`
	TBS  string `json:"tbs,omitempty"`
	Page int    `json:"page,omitempty"`
}

type organicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Date    string `json:"date,omitempty"`
}

type response struct {
	Organic []organicResult `json:"organic"`
}

// Search executes a query against Serper and normalizes the organic results.
func (c *Client) Search(ctx context.Context, query string, opts search.Options) ([]search.Result, error) {
	body := requestBody{
		Q:   query,
		Num: opts.Count(),
		TBS: timeFilter(opts.DateRange),
	}
	if opts.Page > 1 {
		body.Page = opts.Page
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("serper: marshal request: %w", err)
	}

	var results []search.Result
	err = retry.Retry(ctx, c.retryCfg, func() error {
		var attemptErr error
		results, attemptErr = c.doSearch(ctx, payload)
		return attemptErr
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (c *Client) doSearch(ctx context.Context, payload []byte) ([]search.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("serper: build request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("serper: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Serper request failed",
			logger.Int("status", resp.StatusCode),
		)
		return nil, &search.ProviderError{
			Provider:   search.ProviderSerper,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}

	var data response
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("serper: decode response: %w", err)
	}

	results := make([]search.Result, 0, len(data.Organic))
	for _, item := range data.Organic {
		results = append(results, search.Result{
			Title:         item.Title,
			URL:           item.Link,
			Snippet:       item.Snippet,
			PublishedDate: item.Date,
		})
	}

	return results, nil
}

// timeFilter maps a date range onto Serper's tbs relative-time codes.
func timeFilter(dateRange string) string {
	switch dateRange {
	case domain.DateRangeWeek:
		return "qdr:w"
	case domain.DateRangeMonth:
		return "qdr:m"
	case domain.DateRangeThreeMonths:
		return "qdr:m3"
	default:
		return ""
	}
}
