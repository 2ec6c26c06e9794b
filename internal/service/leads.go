// Package service orchestrates search providers, enrichment, and scoring
// into the lead discovery operations exposed over HTTP.
package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/zopdev/leadscout/internal/classify"
	"github.com/zopdev/leadscout/internal/domain"
	"github.com/zopdev/leadscout/internal/search"
	"github.com/zopdev/leadscout/pkg/logger"
)

// LeadService runs keyword and profile searches and turns results into leads.
type LeadService struct {
	provider search.Provider
	logger   logger.Logger
	now      func() time.Time
	newID    func() string
}

// NewLeadService creates a lead service on top of the given provider.
func NewLeadService(provider search.Provider, log logger.Logger) *LeadService {
	return &LeadService{
		provider: provider,
		logger:   log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Search runs a keyword search and wraps the results as new leads.
func (s *LeadService) Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error) {
	query := search.BuildPostQuery(req.Keywords, req.Roles)

	s.logger.Debug("Keyword search",
		logger.String("query", query),
		logger.String("date_range", req.DateRange),
		logger.Int("page", req.Page),
	)

	results, err := s.provider.Search(ctx, query, search.Options{
		DateRange: req.DateRange,
		Page:      req.Page,
	})
	if err != nil {
		return nil, err
	}

	searchQuery := strings.Join(req.Keywords, ", ")
	leads := s.toLeads(filterLinkedIn(results), searchQuery)

	return &domain.SearchResponse{
		Leads:        leads,
		TotalResults: len(leads),
		Query:        searchQuery,
		SearchedAt:   s.now().UTC(),
	}, nil
}

// SearchProfile runs the two-query profile fan-out: a broad query scoped to
// the user's own profile and post paths, and a narrow query pairing their
// spaced-out name with the cloud topic terms. Both run concurrently; the
// merge puts the narrow results first so their metadata wins on duplicates.
func (s *LeadService) SearchProfile(ctx context.Context, req *domain.ProfileSearchRequest) (*domain.ProfileSearchResponse, error) {
	username := strings.TrimPrefix(strings.TrimSpace(req.Username), "@")
	spacedName := strings.ReplaceAll(username, "-", " ")

	opts := search.Options{DateRange: req.DateRange}

	var broad, narrow []search.Result

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		broad, err = s.provider.Search(gctx, search.BuildProfileBroadQuery(username), opts)
		return err
	})
	g.Go(func() error {
		var err error
		narrow, err = s.provider.Search(gctx, search.BuildProfileTopicQuery(spacedName, classify.CloudTopicTerms), opts)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := search.Merge(narrow, broad)
	leads := s.toLeads(merged, "profile:"+username)

	return &domain.ProfileSearchResponse{
		ProfileInfo:  profileInfo(username, spacedName, broad),
		Leads:        leads,
		TotalResults: len(leads),
		SearchedAt:   s.now().UTC(),
	}, nil
}

// toLeads wraps normalized results into new leads, extracting authors from
// LinkedIn URLs where possible.
func (s *LeadService) toLeads(results []search.Result, searchQuery string) []domain.Lead {
	leads := make([]domain.Lead, 0, len(results))
	createdAt := s.now().UTC()

	for _, r := range results {
		leads = append(leads, domain.Lead{
			ID: s.newID(),
			Post: domain.LinkedInPost{
				Title:         r.Title,
				URL:           r.URL,
				Snippet:       r.Snippet,
				Author:        search.ExtractAuthor(r.URL),
				PublishedDate: r.PublishedDate,
			},
			Status:      domain.LeadStatusNew,
			SearchQuery: searchQuery,
			CreatedAt:   createdAt,
		})
	}

	return leads
}

// profileInfo extracts the person's name and headline from the first
// linkedin.com/in/ hit of the broad result set. LinkedIn profile titles are
// usually "Name - Title - Company | LinkedIn". Falls back to a title-cased
// version of the hyphen-split username.
func profileInfo(username, spacedName string, broad []search.Result) domain.ProfileInfo {
	info := domain.ProfileInfo{
		Username:    username,
		Name:        titleCase(spacedName),
		LinkedInURL: "https://www.linkedin.com/in/" + username,
	}

	for _, r := range broad {
		if !strings.Contains(r.URL, "linkedin.com/in/") {
			continue
		}

		name := strings.TrimSpace(strings.ReplaceAll(strings.SplitN(r.Title, " - ", 2)[0], "| LinkedIn", ""))
		if name != "" {
			info.Name = name
		}
		info.Headline = r.Snippet
		if r.URL != "" {
			info.LinkedInURL = r.URL
		}
		break
	}

	return info
}

// filterLinkedIn drops results outside linkedin.com. The site: filter keeps
// most backends on-domain already, but Tavily treats it as a hint. The input
// slice may be owned by the query cache, so filtering never mutates it.
func filterLinkedIn(results []search.Result) []search.Result {
	filtered := make([]search.Result, 0, len(results))
	for _, r := range results {
		if strings.Contains(r.URL, "linkedin.com") {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
