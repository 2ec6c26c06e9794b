// Package api wires the lead discovery operations to HTTP endpoints.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zopdev/leadscout/internal/classify"
	"github.com/zopdev/leadscout/internal/domain"
	"github.com/zopdev/leadscout/internal/enrich"
	"github.com/zopdev/leadscout/internal/scorer"
	"github.com/zopdev/leadscout/internal/search"
	"github.com/zopdev/leadscout/internal/service"
	"github.com/zopdev/leadscout/internal/telemetry"
	"github.com/zopdev/leadscout/pkg/logger"
)

// Error codes returned in ErrorResponse.Code.
const (
	codeValidation    = "VALIDATION_ERROR"
	codeProvider      = "PROVIDER_ERROR"
	codeConfiguration = "CONFIGURATION_ERROR"
	codeInternal      = "INTERNAL_ERROR"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Timestamp string `json:"timestamp"`
}

// Enricher resolves a LinkedIn profile URL into profile data.
type Enricher interface {
	EnrichProfile(ctx context.Context, linkedinURL string) (*domain.LeadProfile, error)
}

// Handler holds the services behind the HTTP endpoints. Enricher and Scorer
// are optional features and may be nil when their credentials are absent;
// the corresponding endpoints then fail with a configuration error.
type Handler struct {
	leads    *service.LeadService
	trending *service.TrendingService
	enricher Enricher
	scorer   scorer.Scorer
	logger   logger.Logger
}

// NewHandler creates the API handler.
func NewHandler(leads *service.LeadService, trending *service.TrendingService, enricher Enricher, sc scorer.Scorer, log logger.Logger) *Handler {
	return &Handler{
		leads:    leads,
		trending: trending,
		enricher: enricher,
		scorer:   sc,
		logger:   log,
	}
}

// Search handles POST /api/v1/search.
func (h *Handler) Search(c *gin.Context) {
	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, codeValidation, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	resp, err := h.leads.Search(c.Request.Context(), &req)
	if err != nil {
		h.respondProviderError(c, "Search failed", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SearchProfile handles POST /api/v1/search/profile.
func (h *Handler) SearchProfile(c *gin.Context) {
	var req domain.ProfileSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, codeValidation, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	resp, err := h.leads.SearchProfile(c.Request.Context(), &req)
	if err != nil {
		h.respondProviderError(c, "Profile search failed", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Trending handles GET /api/v1/trending.
func (h *Handler) Trending(c *gin.Context) {
	categories := service.ResolveCategories(c.Query("categories"))

	resp, err := h.trending.Fetch(c.Request.Context(), categories)
	if err != nil {
		h.respondProviderError(c, "Trending fetch failed", err)
		return
	}

	c.Header("Cache-Control", "s-maxage=1800, stale-while-revalidate=3600")
	c.JSON(http.StatusOK, resp)
}

// Classify handles GET /api/v1/classify. It powers the search form's
// "detected: profile/company" hint.
func (h *Handler) Classify(c *gin.Context) {
	classification := classify.Classify(c.Query("q"))
	telemetry.RecordClassification(classification.Intent)

	c.JSON(http.StatusOK, classification)
}

// Import handles POST /api/v1/leads/import.
func (h *Handler) Import(c *gin.Context) {
	var req domain.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, codeValidation, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	resp, err := h.leads.ImportLeads(&req)
	if err != nil {
		if errors.Is(err, service.ErrNoValidURLs) {
			h.respondError(c, http.StatusBadRequest, codeValidation, err.Error())
			return
		}
		h.respondError(c, http.StatusInternalServerError, codeInternal, "Import failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Enrich handles POST /api/v1/leads/enrich.
func (h *Handler) Enrich(c *gin.Context) {
	var req domain.EnrichRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, codeValidation, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	if h.enricher == nil {
		h.respondError(c, http.StatusInternalServerError, codeConfiguration,
			"profile enrichment is not configured: set enrich.api_key or PROXYCURL_API_KEY")
		return
	}

	profileURL := req.LinkedInURL
	if extracted := enrich.ExtractProfileURL(req.LinkedInURL); extracted != "" {
		profileURL = extracted
	}

	profile, err := h.enricher.EnrichProfile(c.Request.Context(), profileURL)
	if err != nil {
		h.logger.Error("Enrichment failed", logger.Error(err))
		h.respondError(c, http.StatusInternalServerError, codeProvider, err.Error())
		return
	}

	c.JSON(http.StatusOK, domain.EnrichResponse{Profile: *profile})
}

// Analyze handles POST /api/v1/leads/analyze.
func (h *Handler) Analyze(c *gin.Context) {
	var req domain.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, codeValidation, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	if h.scorer == nil {
		h.respondError(c, http.StatusInternalServerError, codeConfiguration,
			"lead scoring is not configured: set scorer.api_key or ANTHROPIC_API_KEY")
		return
	}

	posts := make([]domain.LinkedInPost, len(req.Leads))
	for i, lead := range req.Leads {
		posts[i] = lead.Post
	}

	scores, err := h.scorer.ScoreLeads(c.Request.Context(), posts)
	if err != nil {
		h.logger.Error("Analysis failed", logger.Error(err))
		h.respondError(c, http.StatusInternalServerError, codeProvider, err.Error())
		return
	}

	analyzed := make([]domain.Lead, len(req.Leads))
	for i, lead := range req.Leads {
		if i < len(scores) {
			analyzed[i] = lead.WithScore(scores[i])
		} else {
			lead.Status = domain.LeadStatusAnalyzed
			analyzed[i] = lead
		}
	}

	c.JSON(http.StatusOK, domain.AnalyzeResponse{Leads: analyzed})
}

// respondProviderError maps search pipeline failures onto HTTP errors,
// exposing the provider's message for operability.
func (h *Handler) respondProviderError(c *gin.Context, context string, err error) {
	h.logger.Error(context, logger.Error(err))

	var pe *search.ProviderError
	if errors.As(err, &pe) {
		h.respondError(c, http.StatusInternalServerError, codeProvider, pe.Error())
		return
	}

	h.respondError(c, http.StatusInternalServerError, codeInternal, context)
}

func (h *Handler) respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
