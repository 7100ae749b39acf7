package crawling

import (
	"net/url"
	"strings"

	"github.com/jonathan/talent-scout/internal/fetch"
)

// PaginationHostSuffix is the host suffix a result page link must carry.
const PaginationHostSuffix = "google.com"

// ExtractPaginationURLs returns known plus every numbered result-page link in
// items. A link qualifies when its href and text are non-empty, its host ends
// with google.com and its text is made only of decimal digits, so "Next" and
// "Previous" are never followed.
//
// URLs are compared as exact strings. The result lists known first, then new
// URLs in the order they appear in items. Neither input is modified.
func ExtractPaginationURLs(items []fetch.Link, known []string) []string {
	result := make([]string, 0, len(known))
	seen := make(map[string]bool, len(known))
	add := func(u string) {
		if !seen[u] {
			seen[u] = true
			result = append(result, u)
		}
	}

	for _, u := range known {
		add(u)
	}
	for _, item := range items {
		if isPaginationLink(item) {
			add(item.Href)
		}
	}
	return result
}

func isPaginationLink(item fetch.Link) bool {
	if item.Href == "" || item.Text == "" || !isDigits(item.Text) {
		return false
	}
	u, err := url.Parse(item.Href)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Hostname()), PaginationHostSuffix)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
