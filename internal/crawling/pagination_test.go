package crawling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-scout/internal/fetch"
)

func TestExtractPaginationURLs_Filter(t *testing.T) {
	items := []fetch.Link{
		{Href: "https://www.google.com/search?q=x&start=10", Text: "2"},
		{Href: "https://www.google.com/search?q=x&start=20", Text: "3"},
		{Href: "https://www.google.com/search?q=x&start=10", Text: "Next"},
		{Href: "https://www.google.com/search?q=x&start=0", Text: "Previous"},
		{Href: "https://www.bing.com/search?q=x&first=11", Text: "2"},
		{Href: "https://www.google.com/search?q=x&start=30", Text: ""},
		{Href: "", Text: "4"},
		{Href: "https://www.google.com/search?q=x&start=40", Text: "5a"},
		{Href: "https://www.google.com/search?q=x&start=50", Text: "٦"},
		{Href: "https://maps.google.com/maps?q=x", Text: "10"},
	}

	got := ExtractPaginationURLs(items, nil)

	assert.Equal(t, []string{
		"https://www.google.com/search?q=x&start=10",
		"https://www.google.com/search?q=x&start=20",
		"https://maps.google.com/maps?q=x",
	}, got)
}

func TestExtractPaginationURLs_Union(t *testing.T) {
	known := []string{
		"https://www.google.com/search?q=x&start=10",
		"https://www.google.com/search?q=x&start=20",
	}
	items := []fetch.Link{
		{Href: "https://www.google.com/search?q=x&start=20", Text: "3"},
		{Href: "https://www.google.com/search?q=x&start=30", Text: "4"},
	}

	got := ExtractPaginationURLs(items, known)

	assert.Equal(t, []string{
		"https://www.google.com/search?q=x&start=10",
		"https://www.google.com/search?q=x&start=20",
		"https://www.google.com/search?q=x&start=30",
	}, got)
	assert.Len(t, known, 2, "known must not be modified")
}

func TestExtractPaginationURLs_IdempotentAndMonotonic(t *testing.T) {
	known := []string{"https://www.google.com/search?q=x&start=90"}
	items := []fetch.Link{
		{Href: "https://www.google.com/search?q=x&start=10", Text: "2"},
		{Href: "https://www.google.com/search?q=x&start=10/", Text: "2"},
		{Href: "https://www.google.com/search?start=20&q=x", Text: "3"},
	}

	once := ExtractPaginationURLs(items, known)
	twice := ExtractPaginationURLs(items, once)

	assert.Equal(t, once, twice)
	assert.Subset(t, once, known)
	// No canonicalisation: different spellings of a URL stay distinct.
	assert.Len(t, once, 4)
}

func TestExtractPaginationURLs_NoMatches(t *testing.T) {
	got := ExtractPaginationURLs([]fetch.Link{{Href: "https://www.google.com/search?q=x", Text: "Next"}}, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
