// Package crawling drives search-result crawls: it builds the search query,
// follows numbered result pages and turns discovered profile links into
// candidates or prior-employer records.
package crawling

import "fmt"

// CrawlError represents a general crawling failure
type CrawlError struct {
	Message string
	Cause   error
}

func (e *CrawlError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("crawl error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("crawl error: %s", e.Message)
}

func (e *CrawlError) Unwrap() error {
	return e.Cause
}

// PageFetchError represents a failure fetching a search result page.
// It aborts the crawl that hit it.
type PageFetchError struct {
	URL   string
	Cause error
}

func (e *PageFetchError) Error() string {
	return fmt.Sprintf("page fetch error for %s: %v", e.URL, e.Cause)
}

func (e *PageFetchError) Unwrap() error {
	return e.Cause
}
