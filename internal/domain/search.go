package domain

// Search intents produced by input classification.
const (
	IntentKeyword = "keyword"
	IntentProfile = "profile"
	IntentCompany = "company"
)

// Date range filters accepted by the search endpoints. Each provider maps
// these onto its own recency vocabulary.
const (
	DateRangeWeek        = "past_week"
	DateRangeMonth       = "past_month"
	DateRangeThreeMonths = "past_3_months"
)

// ValidDateRange reports whether s is a recognized date range value.
func ValidDateRange(s string) bool {
	switch s {
	case DateRangeWeek, DateRangeMonth, DateRangeThreeMonths:
		return true
	}
	return false
}

// Classification is the outcome of analyzing raw search input. Exactly one
// of Query, Username, or Company is populated, matching Intent.
type Classification struct {
	Intent string `json:"intent"`
	// Input is the trimmed original input text.
	Input string `json:"input"`
	// Query is the cleaned query for keyword intent.
	Query string `json:"query,omitempty"`
	// Username is the extracted profile slug for profile intent.
	Username string `json:"username,omitempty"`
	// Company is the extracted company name for company intent.
	Company string `json:"company,omitempty"`
}

// ProfileInfo summarizes the person a profile search resolved to.
type ProfileInfo struct {
	Username    string `json:"username"`
	Name        string `json:"name"`
	Headline    string `json:"headline,omitempty"`
	LinkedInURL string `json:"linkedinUrl"`
}

// TrendingPost is a post surfaced by the trending feed, attributed to the
// category whose query discovered it first.
type TrendingPost struct {
	ID            string `json:"id"`
	Category      string `json:"category"`
	CategoryLabel string `json:"categoryLabel"`
	Title         string `json:"title"`
	Snippet       string `json:"snippet"`
	URL           string `json:"url"`
	Source        string `json:"source"`
	Author        string `json:"author,omitempty"`
	PublishedDate string `json:"publishedDate,omitempty"`
	IsLinkedIn    bool   `json:"isLinkedIn"`
}

// CategoryGroup is one category's slice of the trending feed.
type CategoryGroup struct {
	Label string         `json:"label"`
	Posts []TrendingPost `json:"posts"`
}

// CategoryStatus tells the UI which categories exist and which were loaded
// in this response, for lazy loading.
type CategoryStatus struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Loaded bool   `json:"loaded"`
}
