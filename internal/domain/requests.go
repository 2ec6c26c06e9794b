package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// MaxKeywords is the maximum number of keywords accepted per search.
	MaxKeywords = 20

	// MaxRoles is the maximum number of role filters accepted per search.
	MaxRoles = 20

	// MaxAnalyzeBatch is the maximum number of leads scored in one request.
	MaxAnalyzeBatch = 10

	// MaxImportBatch is the maximum number of URLs accepted in one import.
	MaxImportBatch = 100
)

// SearchRequest is the body of a keyword search request.
type SearchRequest struct {
	Keywords  []string `json:"keywords"`
	Roles     []string `json:"roles,omitempty"`
	DateRange string   `json:"dateRange,omitempty"`
	Page      int      `json:"page,omitempty"`
}

// Validate checks the search request for validity.
func (r *SearchRequest) Validate() error {
	r.Keywords = trimNonEmpty(r.Keywords)
	r.Roles = trimNonEmpty(r.Roles)
	if len(r.Keywords) == 0 {
		return errors.New("at least one keyword is required")
	}
	if len(r.Keywords) > MaxKeywords {
		return fmt.Errorf("cannot search more than %d keywords at once", MaxKeywords)
	}
	if len(r.Roles) > MaxRoles {
		return fmt.Errorf("cannot filter by more than %d roles at once", MaxRoles)
	}
	if r.DateRange != "" && !ValidDateRange(r.DateRange) {
		return invalidDateRangeError(r.DateRange)
	}
	if r.Page < 0 {
		return errors.New("page must not be negative")
	}
	return nil
}

// SearchResponse is the body of a keyword search response.
type SearchResponse struct {
	Leads        []Lead    `json:"leads"`
	TotalResults int       `json:"totalResults"`
	Query        string    `json:"query"`
	SearchedAt   time.Time `json:"searchedAt"`
}

// ProfileSearchRequest is the body of a profile search request.
type ProfileSearchRequest struct {
	Username  string `json:"username" binding:"required"`
	DateRange string `json:"dateRange,omitempty"`
}

// Validate checks the profile search request for validity.
func (r *ProfileSearchRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		return errors.New("username is required")
	}
	if r.DateRange != "" && !ValidDateRange(r.DateRange) {
		return invalidDateRangeError(r.DateRange)
	}
	return nil
}

// ProfileSearchResponse is the body of a profile search response.
type ProfileSearchResponse struct {
	ProfileInfo  ProfileInfo `json:"profileInfo"`
	Leads        []Lead      `json:"leads"`
	TotalResults int         `json:"totalResults"`
	SearchedAt   time.Time   `json:"searchedAt"`
}

// TrendingResponse is the body of the trending feed response.
type TrendingResponse struct {
	Grouped             map[string]CategoryGroup `json:"grouped"`
	Total               int                      `json:"total"`
	AvailableCategories []CategoryStatus         `json:"availableCategories"`
	FetchedAt           time.Time                `json:"fetchedAt"`
}

// ImportRequest is the body of a lead import request. Either a list of URLs
// or a free-text blob to extract LinkedIn URLs from must be provided.
type ImportRequest struct {
	URLs []string `json:"urls,omitempty"`
	Text string   `json:"text,omitempty"`
}

// Validate checks the import request for validity.
func (r *ImportRequest) Validate() error {
	r.URLs = trimNonEmpty(r.URLs)
	r.Text = strings.TrimSpace(r.Text)
	if len(r.URLs) == 0 && r.Text == "" {
		return errors.New("either urls or text is required")
	}
	if len(r.URLs) > MaxImportBatch {
		return fmt.Errorf("cannot import more than %d urls at once", MaxImportBatch)
	}
	return nil
}

// ImportResponse is the body of a lead import response.
type ImportResponse struct {
	Leads    []Lead `json:"leads"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// EnrichRequest is the body of a profile enrichment request.
type EnrichRequest struct {
	LinkedInURL string `json:"linkedinUrl" binding:"required"`
}

// Validate checks the enrichment request for validity.
func (r *EnrichRequest) Validate() error {
	r.LinkedInURL = strings.TrimSpace(r.LinkedInURL)
	if r.LinkedInURL == "" {
		return errors.New("linkedinUrl is required")
	}
	if !strings.Contains(r.LinkedInURL, "linkedin.com/") {
		return errors.New("linkedinUrl must be a linkedin.com URL")
	}
	return nil
}

// EnrichResponse is the body of a profile enrichment response.
type EnrichResponse struct {
	Profile LeadProfile `json:"profile"`
}

// AnalyzeRequest is the body of a lead scoring request.
type AnalyzeRequest struct {
	Leads []Lead `json:"leads" binding:"required"`
}

// Validate checks the analyze request for validity.
func (r *AnalyzeRequest) Validate() error {
	if len(r.Leads) == 0 {
		return errors.New("leads is required and must not be empty")
	}
	if len(r.Leads) > MaxAnalyzeBatch {
		return fmt.Errorf("cannot analyze more than %d leads at once", MaxAnalyzeBatch)
	}
	return nil
}

// AnalyzeResponse is the body of a lead scoring response.
type AnalyzeResponse struct {
	Leads []Lead `json:"leads"`
}

func trimNonEmpty(values []string) []string {
	out := values[:0]
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func invalidDateRangeError(got string) error {
	return fmt.Errorf("invalid dateRange %q: must be one of %s, %s, %s",
		got, DateRangeWeek, DateRangeMonth, DateRangeThreeMonths)
}
