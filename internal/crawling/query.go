package crawling

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultSearchEndpoint is the search engine queried for profile pages.
const DefaultSearchEndpoint = "https://www.google.com/search"

// Query describes the role, location and skills being searched for.
type Query struct {
	Position string
	City     string
	State    string
	Country  string
	Skills   []string
}

// SearchString returns the search-engine query restricted to public profile pages.
func (q Query) SearchString() string {
	return fmt.Sprintf(`site:linkedin.com/in/ "%s" "%s, %s, %s" "%s"`,
		q.Position, q.City, q.State, q.Country, strings.Join(q.Skills, ","))
}

// BuildSearchURL places the query for q in the q parameter of endpoint.
func BuildSearchURL(endpoint string, q Query) (string, error) {
	if endpoint == "" {
		endpoint = DefaultSearchEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", &CrawlError{
			Message: fmt.Sprintf("invalid search endpoint %q", endpoint),
			Cause:   err,
		}
	}

	params := u.Query()
	params.Set("q", q.SearchString())
	u.RawQuery = params.Encode()
	return u.String(), nil
}
