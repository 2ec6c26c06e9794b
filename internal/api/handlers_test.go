package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zopdev/leadscout/internal/domain"
	"github.com/zopdev/leadscout/internal/scorer"
	"github.com/zopdev/leadscout/internal/search"
	"github.com/zopdev/leadscout/internal/service"
	"github.com/zopdev/leadscout/pkg/logger"
)

type stubProvider struct {
	results []search.Result
	err     error
}

func (p *stubProvider) Name() string {
	return "stub"
}

func (p *stubProvider) Search(_ context.Context, _ string, _ search.Options) ([]search.Result, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.results, nil
}

type stubScorer struct {
	scores []domain.AIScore
	err    error
}

func (s *stubScorer) ScoreLeads(_ context.Context, _ []domain.LinkedInPost) ([]domain.AIScore, error) {
	return s.scores, s.err
}

func newTestRouter(provider search.Provider, sc *stubScorer) *gin.Engine {
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	leads := service.NewLeadService(provider, log)
	trending := service.NewTrendingService(provider, log, nil)

	var scIface scorer.Scorer
	if sc != nil {
		scIface = sc
	}

	h := NewHandler(leads, trending, nil, scIface, log)

	router := gin.New()
	RegisterRoutes(router, h)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSearchEndpoint(t *testing.T) {
	provider := &stubProvider{results: []search.Result{
		{Title: "t", URL: "https://www.linkedin.com/posts/john-smith_x", Snippet: "s"},
	}}
	router := newTestRouter(provider, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/search", map[string]any{
		"keywords": []string{"cloud cost"},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Leads, 1)
	assert.Equal(t, "john smith", resp.Leads[0].Post.Author)
	assert.Equal(t, "cloud cost", resp.Query)
}

func TestSearchEndpointRequiresKeywords(t *testing.T) {
	router := newTestRouter(&stubProvider{}, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/search", map[string]any{
		"keywords": []string{},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
}

func TestSearchEndpointSurfacesProviderError(t *testing.T) {
	provider := &stubProvider{err: &search.ProviderError{
		Provider:   "serper",
		StatusCode: http.StatusTooManyRequests,
		Body:       "quota exceeded",
	}}
	router := newTestRouter(provider, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/search", map[string]any{
		"keywords": []string{"cloud"},
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "PROVIDER_ERROR", resp.Code)
	assert.Contains(t, resp.Error, "quota exceeded")
}

func TestSearchProfileEndpoint(t *testing.T) {
	provider := &stubProvider{results: []search.Result{
		{Title: "Jane Doe - CTO - Acme | LinkedIn", URL: "https://www.linkedin.com/in/jane-doe", Snippet: "CTO at Acme"},
	}}
	router := newTestRouter(provider, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/search/profile", map[string]any{
		"username": "jane-doe",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.ProfileSearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Jane Doe", resp.ProfileInfo.Name)
	assert.Equal(t, "jane-doe", resp.ProfileInfo.Username)
}

func TestClassifyEndpoint(t *testing.T) {
	router := newTestRouter(&stubProvider{}, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/classify?q=company:Netflix", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.Classification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.IntentCompany, resp.Intent)
	assert.Equal(t, "Netflix", resp.Company)
}

func TestTrendingEndpoint(t *testing.T) {
	provider := &stubProvider{results: []search.Result{
		{Title: "t", URL: "https://www.linkedin.com/posts/jane-doe_x", Snippet: "s"},
	}}
	router := newTestRouter(provider, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/trending?categories=linkedin_finops", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.TrendingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Contains(t, resp.Grouped, "linkedin_finops")
	assert.NotEmpty(t, resp.AvailableCategories)
}

func TestImportEndpoint(t *testing.T) {
	router := newTestRouter(&stubProvider{}, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/leads/import", map[string]any{
		"urls": []string{"https://www.linkedin.com/posts/john-smith_cloud"},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.ImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Imported)
}

func TestImportEndpointRejectsNonLinkedInURLs(t *testing.T) {
	router := newTestRouter(&stubProvider{}, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/leads/import", map[string]any{
		"urls": []string{"https://example.com/post"},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEnrichEndpointWithoutConfiguration(t *testing.T) {
	router := newTestRouter(&stubProvider{}, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/leads/enrich", map[string]any{
		"linkedinUrl": "https://www.linkedin.com/in/jane-doe",
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CONFIGURATION_ERROR", resp.Code)
	assert.Contains(t, resp.Error, "PROXYCURL_API_KEY")
}

func TestAnalyzeEndpoint(t *testing.T) {
	sc := &stubScorer{scores: []domain.AIScore{
		{Overall: 80, Reasoning: "r", SuggestedOutreach: "o"},
	}}
	router := newTestRouter(&stubProvider{}, sc)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/leads/analyze", map[string]any{
		"leads": []map[string]any{
			{
				"id":     "lead-1",
				"status": "new",
				"post": map[string]any{
					"title":   "t",
					"url":     "https://www.linkedin.com/posts/x",
					"snippet": "s",
				},
			},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Leads, 1)
	assert.Equal(t, domain.LeadStatusAnalyzed, resp.Leads[0].Status)
	require.NotNil(t, resp.Leads[0].Score)
	assert.Equal(t, 80, resp.Leads[0].Score.Overall)
}

func TestAnalyzeEndpointEnforcesBatchLimit(t *testing.T) {
	router := newTestRouter(&stubProvider{}, &stubScorer{})

	leads := make([]map[string]any, 11)
	for i := range leads {
		leads[i] = map[string]any{"id": "x", "post": map[string]any{"url": "https://linkedin.com/posts/a"}}
	}

	rec := doJSON(t, router, http.MethodPost, "/api/v1/leads/analyze", map[string]any{"leads": leads})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
