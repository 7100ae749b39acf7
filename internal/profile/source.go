package profile

import (
	"context"
	"net/url"
	"strings"
)

// Source retrieves raw profile records by public username or member ID.
type Source interface {
	FetchProfile(ctx context.Context, username string) (*RawProfile, error)
}

// UsernameFromURL returns the last path segment of a profile URL,
// e.g. "jane-doe" for https://www.linkedin.com/in/jane-doe/.
func UsernameFromURL(profileURL string) (string, error) {
	parsed, err := url.Parse(profileURL)
	if err != nil {
		return "", err
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	return segments[len(segments)-1], nil
}
