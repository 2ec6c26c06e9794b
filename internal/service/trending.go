package service

import (
	"context"
	"math/rand"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zopdev/leadscout/internal/domain"
	"github.com/zopdev/leadscout/internal/search"
	"github.com/zopdev/leadscout/internal/telemetry"
	"github.com/zopdev/leadscout/pkg/logger"
)

// Category is one trending feed category: a label and a pool of candidate
// queries. One query is picked uniformly at random per fetch to spread API
// usage across the variants over time.
type Category struct {
	Label   string
	Queries []string
	Num     int
}

// feedCategories is the fixed category table for the trending feed.
var feedCategories = map[string]Category{
	"linkedin_cloud_billing": {
		Label: "LinkedIn: Cloud Billing",
		Queries: []string{
			`site:linkedin.com "cloud bill" OR "cloud cost" OR "cloud billing" problem`,
			`site:linkedin.com "AWS bill" OR "Azure cost" OR "GCP billing" high`,
			`site:linkedin.com "cloud spend" OR "cloud expenses" OR "cloud budget"`,
		},
		Num: 8,
	},
	"linkedin_finops": {
		Label: "LinkedIn: FinOps",
		Queries: []string{
			`site:linkedin.com FinOps OR "cloud financial management" OR "cloud cost optimization"`,
			`site:linkedin.com "cloud savings" OR "right-sizing" OR "reserved instances"`,
			`site:linkedin.com "cloud waste" OR "cost optimization" OR "reduce cloud spend"`,
		},
		Num: 8,
	},
	"linkedin_cloud_engineering": {
		Label: "LinkedIn: Cloud Engineering",
		Queries: []string{
			`site:linkedin.com "cloud infrastructure" OR "cloud migration" OR "cloud architecture"`,
			`site:linkedin.com "DevOps" OR "SRE" OR "platform engineering" cloud`,
			`site:linkedin.com "kubernetes cost" OR "cloud native" OR "multi-cloud"`,
		},
		Num: 6,
	},
	"linkedin_decision_makers": {
		Label: "LinkedIn: Decision Makers",
		Queries: []string{
			`site:linkedin.com CTO OR "VP Engineering" "cloud cost" OR "cloud bill"`,
			`site:linkedin.com "Head of Infrastructure" OR "Director of Engineering" cloud`,
			`site:linkedin.com CFO OR "VP Operations" "cloud spend" OR "cloud budget"`,
		},
		Num: 6,
	},
	"competitors": {
		Label: "Competitor Updates",
		Queries: []string{
			`site:linkedin.com Vantage OR CloudHealth OR Kubecost OR Infracost cloud cost`,
			`site:linkedin.com CloudZero OR Apptio OR "CAST AI" OR Harness cloud cost`,
		},
		Num: 5,
	},
	"cloud_provider_updates": {
		Label: "Cloud Provider News",
		Queries: []string{
			`site:linkedin.com AWS OR Azure OR "Google Cloud" OR OCI new feature pricing`,
			`site:linkedin.com "cloud pricing" OR "cloud update" OR "new cloud service"`,
		},
		Num: 5,
	},
}

// defaultCategories is the reduced subset loaded when the caller does not
// ask for specific categories. The rest are lazy loaded by the UI.
var defaultCategories = []string{"linkedin_cloud_billing", "linkedin_finops", "linkedin_decision_makers"}

var authorFromTitleRegex = regexp.MustCompile(`^(.+?)(?:\s+on\s+LinkedIn|\s+-\s+)`)

// TrendingService aggregates the trending feed across categories.
type TrendingService struct {
	provider search.Provider
	logger   logger.Logger
	rng      *rand.Rand
	rngMu    sync.Mutex
	newID    func() string
	now      func() time.Time
}

// NewTrendingService creates a trending service. A nil rng seeds from the
// current time; tests inject a seeded source for determinism.
func NewTrendingService(provider search.Provider, log logger.Logger, rng *rand.Rand) *TrendingService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &TrendingService{
		provider: provider,
		logger:   log,
		rng:      rng,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// ResolveCategories maps the categories query parameter onto category keys.
// "all" selects every category, a comma list selects known keys, and empty
// input selects the default subset.
func ResolveCategories(param string) []string {
	if param == "all" {
		keys := make([]string, 0, len(feedCategories))
		for key := range feedCategories {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		return keys
	}

	if param != "" {
		var keys []string
		for _, key := range strings.Split(param, ",") {
			key = strings.TrimSpace(key)
			if _, ok := feedCategories[key]; ok {
				keys = append(keys, key)
			}
		}
		return keys
	}

	return defaultCategories
}

// Fetch loads one randomly chosen query per requested category, all
// concurrently. A failing category contributes an empty slice instead of
// failing the aggregation; duplicate URLs across categories are attributed
// to whichever category's fetch claims them first in completion order.
func (s *TrendingService) Fetch(ctx context.Context, categoryKeys []string) (*domain.TrendingResponse, error) {
	type selection struct {
		key   string
		label string
		query string
		num   int
	}

	// Query selection happens up front so the shared rng is not touched
	// from the fetch goroutines.
	selections := make([]selection, 0, len(categoryKeys))
	s.rngMu.Lock()
	for _, key := range categoryKeys {
		category, ok := feedCategories[key]
		if !ok {
			continue
		}
		selections = append(selections, selection{
			key:   key,
			label: category.Label,
			query: category.Queries[s.rng.Intn(len(category.Queries))],
			num:   category.Num,
		})
	}
	s.rngMu.Unlock()

	var (
		mu      sync.Mutex
		seen    = make(map[string]struct{})
		grouped = make(map[string]domain.CategoryGroup)
		total   int
	)

	var wg sync.WaitGroup
	for _, sel := range selections {
		wg.Add(1)
		go func(sel selection) {
			defer wg.Done()

			results, err := s.provider.Search(ctx, sel.query, search.Options{
				ResultCount: sel.num,
				DateRange:   domain.DateRangeMonth,
			})
			if err != nil {
				telemetry.RecordTrendingCategoryFailure(sel.key)
				s.logger.Warn("Trending category fetch failed",
					logger.String("category", sel.key),
					logger.Error(err),
				)
				return
			}

			mu.Lock()
			defer mu.Unlock()

			posts := make([]domain.TrendingPost, 0, len(results))
			for _, r := range results {
				if _, dup := seen[r.URL]; dup {
					continue
				}
				seen[r.URL] = struct{}{}
				posts = append(posts, s.toTrendingPost(sel.key, sel.label, r))
			}

			grouped[sel.key] = domain.CategoryGroup{Label: sel.label, Posts: posts}
			total += len(posts)
		}(sel)
	}
	wg.Wait()

	return &domain.TrendingResponse{
		Grouped:             grouped,
		Total:               total,
		AvailableCategories: availableCategories(categoryKeys),
		FetchedAt:           s.now().UTC(),
	}, nil
}

func (s *TrendingService) toTrendingPost(categoryKey, label string, r search.Result) domain.TrendingPost {
	isLinkedIn := strings.Contains(r.URL, "linkedin.com")

	author := search.ExtractAuthor(r.URL)
	if isLinkedIn && author == "" {
		if m := authorFromTitleRegex.FindStringSubmatch(r.Title); m != nil {
			author = strings.TrimSpace(m[1])
		}
	}

	source := "web"
	if u, err := url.Parse(r.URL); err == nil && u.Hostname() != "" {
		source = strings.TrimPrefix(u.Hostname(), "www.")
	}

	return domain.TrendingPost{
		ID:            s.newID(),
		Category:      categoryKey,
		CategoryLabel: label,
		Title:         r.Title,
		Snippet:       r.Snippet,
		URL:           r.URL,
		Source:        source,
		Author:        author,
		PublishedDate: r.PublishedDate,
		IsLinkedIn:    isLinkedIn,
	}
}

func availableCategories(loadedKeys []string) []domain.CategoryStatus {
	loaded := make(map[string]struct{}, len(loadedKeys))
	for _, key := range loadedKeys {
		loaded[key] = struct{}{}
	}

	keys := make([]string, 0, len(feedCategories))
	for key := range feedCategories {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	statuses := make([]domain.CategoryStatus, 0, len(keys))
	for _, key := range keys {
		_, isLoaded := loaded[key]
		statuses = append(statuses, domain.CategoryStatus{
			Key:    key,
			Label:  feedCategories[key].Label,
			Loaded: isLoaded,
		})
	}
	return statuses
}
