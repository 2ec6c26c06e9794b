// Package classify turns free-text search input into a search intent.
//
// Bare usernames and bare topic keywords are indistinguishable on shape
// alone, so a stoplist of common domain keywords is the disambiguation
// mechanism. Keep the stoplist in sync with the keyword vocabulary the
// search layer targets.
package classify

import (
	"regexp"
	"strings"

	"github.com/zopdev/leadscout/internal/domain"
)

// CloudTopicTerms is the OR-group of topic terms paired with a person's name
// in the narrow profile search query.
const CloudTopicTerms = `cloud OR cost OR billing OR FinOps OR "cloud cost" OR AWS OR Azure OR GCP OR "cloud spend"`

// commonKeywords are domain terms that must never be treated as usernames.
var commonKeywords = map[string]struct{}{
	"cloud": {}, "aws": {}, "azure": {}, "gcp": {}, "finops": {},
	"billing": {}, "cost": {}, "costs": {},
	"kubernetes": {}, "k8s": {}, "docker": {}, "devops": {}, "sre": {},
	"infrastructure": {}, "optimization": {}, "savings": {}, "spend": {},
	"budget": {}, "pricing": {}, "compute": {}, "storage": {},
	"networking": {}, "serverless": {}, "lambda": {}, "ec2": {}, "s3": {},
	"oci": {}, "oracle": {}, "ibm": {}, "cloudflare": {}, "datadog": {},
	"terraform": {}, "kubecost": {}, "vantage": {}, "infracost": {},
	"cloudhealth": {}, "cloudzero": {},
	"zopnight": {}, "zopday": {}, "zopdev": {},
}

var (
	linkedInURLRegex  = regexp.MustCompile(`linkedin\.com/(?:in|posts)/([a-zA-Z0-9-]+)`)
	usernameSlugRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*[a-zA-Z0-9]$`)
)

// Classify analyzes raw search input and returns its intent. It is pure and
// total: unrecognized input always degrades to keyword intent, never fails.
func Classify(input string) domain.Classification {
	trimmed := strings.TrimSpace(input)

	if trimmed == "" {
		return keyword(trimmed)
	}

	// 1. LinkedIn profile or post URL
	if m := linkedInURLRegex.FindStringSubmatch(trimmed); m != nil {
		return profile(trimmed, m[1])
	}

	lower := strings.ToLower(trimmed)

	// 2. Explicit company prefix (company:Netflix)
	if strings.HasPrefix(lower, "company:") {
		if name := strings.TrimSpace(trimmed[len("company:"):]); name != "" {
			return domain.Classification{
				Intent:  domain.IntentCompany,
				Input:   trimmed,
				Company: name,
			}
		}
	}

	// 3. Explicit profile prefix (profile:jane-doe)
	if strings.HasPrefix(lower, "profile:") {
		username := strings.TrimSpace(trimmed[len("profile:"):])
		username = strings.TrimPrefix(username, "@")
		if username != "" {
			return profile(trimmed, username)
		}
	}

	// 4. @-prefixed username
	if strings.HasPrefix(trimmed, "@") {
		username := strings.TrimSpace(trimmed[1:])
		if username != "" && usernameSlugRegex.MatchString(username) {
			return profile(trimmed, username)
		}
	}

	// 5. Bare slug that is plausibly a username
	if !strings.Contains(trimmed, " ") &&
		usernameSlugRegex.MatchString(trimmed) &&
		len(trimmed) >= 3 {
		if _, stopped := commonKeywords[lower]; !stopped {
			return profile(trimmed, trimmed)
		}
	}

	// 6. Fallback
	return keyword(trimmed)
}

func keyword(trimmed string) domain.Classification {
	return domain.Classification{
		Intent: domain.IntentKeyword,
		Input:  trimmed,
		Query:  trimmed,
	}
}

func profile(trimmed, username string) domain.Classification {
	return domain.Classification{
		Intent:   domain.IntentProfile,
		Input:    trimmed,
		Username: username,
	}
}
