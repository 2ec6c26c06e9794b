// Package domain defines the core data models for the lead discovery service.
package domain

import "time"

// Lead lifecycle statuses. A lead moves forward through these states as it is
// analyzed, enriched, and worked by the user.
const (
	LeadStatusNew       = "new"
	LeadStatusAnalyzed  = "analyzed"
	LeadStatusEnriched  = "enriched"
	LeadStatusSaved     = "saved"
	LeadStatusContacted = "contacted"
)

// LinkedInPost is a single normalized search result pointing at a LinkedIn
// post, article, or profile. All three search providers produce this shape.
type LinkedInPost struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Snippet       string `json:"snippet"`
	Author        string `json:"author,omitempty"`
	PublishedDate string `json:"publishedDate,omitempty"`
}

// Lead wraps a LinkedIn post with a generated identity and pipeline state.
// Leads are value objects: state changes produce a replacement, existing
// instances are never mutated in place.
type Lead struct {
	ID          string       `json:"id"`
	Post        LinkedInPost `json:"post"`
	Status      string       `json:"status"`
	SearchQuery string       `json:"searchQuery,omitempty"`
	Score       *AIScore     `json:"score,omitempty"`
	Profile     *LeadProfile `json:"profile,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// WithScore returns a copy of the lead carrying the given score and the
// analyzed status.
func (l Lead) WithScore(score AIScore) Lead {
	l.Score = &score
	l.Status = LeadStatusAnalyzed
	return l
}

// WithProfile returns a copy of the lead carrying the given enrichment
// profile and the enriched status.
func (l Lead) WithProfile(profile LeadProfile) Lead {
	l.Profile = &profile
	l.Status = LeadStatusEnriched
	return l
}

// ScoreBreakdown holds the five scoring dimensions. Each dimension has its
// own budget; the budgets sum to 100.
type ScoreBreakdown struct {
	PainPointAlignment int `json:"painPointAlignment"`
	DecisionMakerRole  int `json:"decisionMakerRole"`
	CompanyFit         int `json:"companyFit"`
	Recency            int `json:"recency"`
	EngagementSignal   int `json:"engagementSignal"`
}

// AIScore is the model-generated lead quality assessment.
type AIScore struct {
	Overall           int            `json:"overall"`
	Breakdown         ScoreBreakdown `json:"breakdown"`
	Reasoning         string         `json:"reasoning"`
	SuggestedOutreach string         `json:"suggestedOutreach,omitempty"`
}

// LeadProfile is enrichment data resolved from a LinkedIn profile URL.
type LeadProfile struct {
	LinkedInURL     string    `json:"linkedinUrl"`
	Name            string    `json:"name"`
	Headline        string    `json:"headline,omitempty"`
	Title           string    `json:"title,omitempty"`
	Company         string    `json:"company,omitempty"`
	Location        string    `json:"location,omitempty"`
	Industry        string    `json:"industry,omitempty"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	EnrichedAt      time.Time `json:"enrichedAt"`
}
