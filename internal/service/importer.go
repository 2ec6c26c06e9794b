package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/zopdev/leadscout/internal/domain"
)

// ErrNoValidURLs is returned when an import request contains no usable
// LinkedIn URLs.
var ErrNoValidURLs = errors.New("no valid LinkedIn URLs found")

var (
	linkedInURLFinder = regexp.MustCompile(`https?://(?:www\.)?linkedin\.com/[^\s,]+`)

	importAuthorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`linkedin\.com/posts/([^_/]+)`),
		regexp.MustCompile(`linkedin\.com/in/([^/?]+)`),
		regexp.MustCompile(`linkedin\.com/pulse/[^/]*?-([a-zA-Z0-9-]+)`),
	}
)

// ImportLeads extracts LinkedIn URLs from the request's URL list and free
// text and wraps each one as a manually imported lead. Non-LinkedIn URLs
// are counted as skipped.
func (s *LeadService) ImportLeads(req *domain.ImportRequest) (*domain.ImportResponse, error) {
	blob := strings.Join(append(append([]string{}, req.URLs...), req.Text), "\n")

	candidates := len(req.URLs)
	urls := linkedInURLFinder.FindAllString(blob, -1)

	if candidates < len(urls) {
		candidates = len(urls)
	}

	createdAt := s.now().UTC()
	leads := make([]domain.Lead, 0, len(urls))
	seen := make(map[string]struct{}, len(urls))

	for _, u := range urls {
		u = strings.TrimSpace(u)
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}

		leads = append(leads, domain.Lead{
			ID:          s.newID(),
			Post:        parseLinkedInURL(u),
			Status:      domain.LeadStatusNew,
			SearchQuery: "manual import",
			CreatedAt:   createdAt,
		})
	}

	if len(leads) == 0 {
		return nil, ErrNoValidURLs
	}

	return &domain.ImportResponse{
		Leads:    leads,
		Imported: len(leads),
		Skipped:  candidates - len(leads),
	}, nil
}

// parseLinkedInURL builds a minimal post from a bare URL, deriving the
// author from the URL path when possible.
func parseLinkedInURL(u string) domain.LinkedInPost {
	var author string
	for _, pattern := range importAuthorPatterns {
		if m := pattern.FindStringSubmatch(u); m != nil {
			author = strings.ReplaceAll(m[1], "-", " ")
			break
		}
	}

	title := "LinkedIn Post"
	if author != "" {
		title = "Post by " + author
	}

	return domain.LinkedInPost{
		URL:     u,
		Title:   title,
		Snippet: "Manually imported - click to view on LinkedIn",
		Author:  author,
	}
}
