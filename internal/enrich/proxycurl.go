// Package enrich resolves LinkedIn profile URLs into structured profile data
// via the Proxycurl API.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/zopdev/leadscout/internal/domain"
	"github.com/zopdev/leadscout/pkg/httpx"
	"github.com/zopdev/leadscout/pkg/logger"
)

// DefaultBaseURL is the Proxycurl person lookup endpoint.
const DefaultBaseURL = "https://nubela.co/proxycurl/api/v2/linkedin"

// APIError is a non-2xx response from Proxycurl.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("proxycurl API error: %d - %s", e.StatusCode, e.Body)
}

// Config configures the Proxycurl client.
type Config struct {
	// APIKey is the Proxycurl API key. Required.
	APIKey string

	// BaseURL overrides the API endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient overrides the HTTP client. Defaults to httpx defaults.
	HTTPClient *http.Client

	// Logger is used for request logging. Defaults to a nop logger.
	Logger logger.Logger
}

// Client enriches LinkedIn profiles through Proxycurl.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
	now        func() time.Time
}

// New creates a Proxycurl client. Fails fast when the API key is missing.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("proxycurl: API key is required (set enrich.api_key or PROXYCURL_API_KEY)")
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
		now:        time.Now,
	}, nil
}

type experience struct {
	Title   string          `json:"title"`
	Company string          `json:"company"`
	EndsAt  json.RawMessage `json:"ends_at"`
}

type response struct {
	FirstName       string       `json:"first_name"`
	LastName        string       `json:"last_name"`
	FullName        string       `json:"full_name"`
	Headline        string       `json:"headline"`
	Occupation      string       `json:"occupation"`
	City            string       `json:"city"`
	State           string       `json:"state"`
	CountryFullName string       `json:"country_full_name"`
	ProfilePicURL   string       `json:"profile_pic_url"`
	Industry        string       `json:"industry"`
	Experiences     []experience `json:"experiences"`
}

// EnrichProfile looks up the given LinkedIn profile URL and maps the result
// onto a LeadProfile. Proxycurl's cached copy is used when available to keep
// per-lookup cost down.
func (c *Client) EnrichProfile(ctx context.Context, linkedinURL string) (*domain.LeadProfile, error) {
	params := url.Values{}
	params.Set("url", linkedinURL)
	params.Set("use_cache", "if-present")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("proxycurl: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("proxycurl: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("proxycurl: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Proxycurl request failed",
			logger.Int("status", resp.StatusCode),
		)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var data response
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("proxycurl: decode response: %w", err)
	}

	return c.toProfile(linkedinURL, data), nil
}

func (c *Client) toProfile(linkedinURL string, data response) *domain.LeadProfile {
	name := data.FullName
	if name == "" {
		name = strings.TrimSpace(data.FirstName + " " + data.LastName)
	}

	title := data.Occupation
	company := ""
	if job := currentJob(data.Experiences); job != nil {
		if job.Title != "" {
			title = job.Title
		}
		company = job.Company
	}

	return &domain.LeadProfile{
		LinkedInURL:     linkedinURL,
		Name:            name,
		Headline:        data.Headline,
		Title:           title,
		Company:         company,
		Location:        joinNonEmpty(data.City, data.State, data.CountryFullName),
		Industry:        data.Industry,
		ProfileImageURL: data.ProfilePicURL,
		EnrichedAt:      c.now().UTC(),
	}
}

// currentJob returns the first experience with no end date.
func currentJob(experiences []experience) *experience {
	for i := range experiences {
		ends := strings.TrimSpace(string(experiences[i].EndsAt))
		if ends == "" || ends == "null" {
			return &experiences[i]
		}
	}
	return nil
}

func joinNonEmpty(parts ...string) string {
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

var profileURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`linkedin\.com/in/([^/?]+)`),
	regexp.MustCompile(`linkedin\.com/posts/([^_]+)`),
	regexp.MustCompile(`linkedin\.com/pulse/[^/]+.*?-([a-zA-Z0-9-]+)`),
}

// ExtractProfileURL derives a canonical profile URL from a post, article, or
// profile URL. Returns an empty string when no username can be extracted.
func ExtractProfileURL(postURL string) string {
	for _, pattern := range profileURLPatterns {
		if m := pattern.FindStringSubmatch(postURL); m != nil {
			return "https://www.linkedin.com/in/" + m[1]
		}
	}
	return ""
}
