package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeRemovesDuplicateURLs(t *testing.T) {
	narrow := []Result{
		{Title: "narrow a", URL: "https://a"},
		{Title: "narrow b", URL: "https://b"},
	}
	broad := []Result{
		{Title: "broad a", URL: "https://a"},
		{Title: "broad c", URL: "https://c"},
	}

	merged := Merge(narrow, broad)

	assert.Len(t, merged, 3)
	assert.Equal(t, "https://a", merged[0].URL)
	assert.Equal(t, "https://b", merged[1].URL)
	assert.Equal(t, "https://c", merged[2].URL)
}

func TestMergeNarrowMetadataWinsOnDuplicates(t *testing.T) {
	narrow := []Result{{Title: "narrow version", URL: "https://a", Snippet: "relevant"}}
	broad := []Result{{Title: "broad version", URL: "https://a", Snippet: "generic"}}

	merged := Merge(narrow, broad)

	assert.Len(t, merged, 1)
	assert.Equal(t, "narrow version", merged[0].Title)
	assert.Equal(t, "relevant", merged[0].Snippet)
}

func TestMergeIsIdempotent(t *testing.T) {
	list := []Result{
		{Title: "a", URL: "https://a"},
		{Title: "b", URL: "https://b"},
		{Title: "c", URL: "https://c"},
	}

	merged := Merge(list, list)

	assert.Equal(t, list, merged)
}

func TestMergeEmptyInput(t *testing.T) {
	assert.Empty(t, Merge())
	assert.Empty(t, Merge(nil, nil))
}
