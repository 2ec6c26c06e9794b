package search

import (
	"fmt"
	"regexp"
	"strings"
)

// PostSiteFilter restricts results to LinkedIn post and article paths.
const PostSiteFilter = "site:linkedin.com/posts OR site:linkedin.com/pulse"

// DefaultKeywordGroup is the keyword group used when the caller supplies no
// keywords of its own.
const DefaultKeywordGroup = `"cloud cost" OR "cloud bill"`

var authorSlugRegex = regexp.MustCompile(`linkedin\.com/(?:posts|pulse|in)/([^_/]+)`)

// BuildPostQuery composes the keyword search query: a site filter over
// LinkedIn post paths, an OR-group of quoted keywords, and an optional
// OR-group of quoted role names. Groups are joined with spaces, which the
// backends treat as AND.
func BuildPostQuery(keywords, roles []string) string {
	keywordPart := DefaultKeywordGroup
	if len(keywords) > 0 {
		keywordPart = orGroup(keywords)
	}

	parts := []string{PostSiteFilter, keywordPart}
	if len(roles) > 0 {
		parts = append(parts, orGroup(roles))
	}

	return strings.Join(parts, " ")
}

// BuildProfileBroadQuery composes the broad half of a profile search, scoped
// to the user's own profile and post paths.
func BuildProfileBroadQuery(username string) string {
	return fmt.Sprintf("site:linkedin.com/in/%s OR site:linkedin.com/posts/%s", username, username)
}

// BuildProfileTopicQuery composes the narrow half of a profile search,
// pairing the user's spaced-out name with the given topic OR-group.
func BuildProfileTopicQuery(spacedName, topicTerms string) string {
	return fmt.Sprintf(`site:linkedin.com "%s" %s`, spacedName, topicTerms)
}

// ExtractAuthor derives an author name from a LinkedIn URL by taking the
// path segment after /posts/, /pulse/, or /in/ and replacing hyphens with
// spaces. Best effort; returns an empty string when the URL does not match.
func ExtractAuthor(url string) string {
	m := authorSlugRegex.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return strings.ReplaceAll(m[1], "-", " ")
}

func orGroup(terms []string) string {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = `"` + t + `"`
	}
	return "(" + strings.Join(quoted, " OR ") + ")"
}
