package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zopdev/leadscout/internal/domain"
	"github.com/zopdev/leadscout/pkg/logger"
)

func TestImportLeadsFromURLList(t *testing.T) {
	svc := NewLeadService(newFakeProvider(), logger.NewNop())

	resp, err := svc.ImportLeads(&domain.ImportRequest{
		URLs: []string{
			"https://www.linkedin.com/posts/john-smith_cloud-activity-123",
			"https://example.com/not-linkedin",
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Leads, 1)
	assert.Equal(t, 1, resp.Imported)
	assert.Equal(t, 1, resp.Skipped)

	lead := resp.Leads[0]
	assert.Equal(t, "john smith", lead.Post.Author)
	assert.Equal(t, "Post by john smith", lead.Post.Title)
	assert.Equal(t, domain.LeadStatusNew, lead.Status)
	assert.Equal(t, "manual import", lead.SearchQuery)
}

func TestImportLeadsFromFreeText(t *testing.T) {
	svc := NewLeadService(newFakeProvider(), logger.NewNop())

	text := `Check these out:
https://www.linkedin.com/in/jane-doe and also
https://linkedin.com/posts/john-smith_finops-activity`

	resp, err := svc.ImportLeads(&domain.ImportRequest{Text: text})
	require.NoError(t, err)

	require.Len(t, resp.Leads, 2)
	assert.Equal(t, "jane doe", resp.Leads[0].Post.Author)
	assert.Equal(t, "john smith", resp.Leads[1].Post.Author)
}

func TestImportLeadsDeduplicates(t *testing.T) {
	svc := NewLeadService(newFakeProvider(), logger.NewNop())

	url := "https://www.linkedin.com/posts/jane-doe_cloud"
	resp, err := svc.ImportLeads(&domain.ImportRequest{URLs: []string{url, url}})
	require.NoError(t, err)

	assert.Len(t, resp.Leads, 1)
}

func TestImportLeadsRejectsNoValidURLs(t *testing.T) {
	svc := NewLeadService(newFakeProvider(), logger.NewNop())

	_, err := svc.ImportLeads(&domain.ImportRequest{Text: "no urls here"})
	require.ErrorIs(t, err, ErrNoValidURLs)
}
