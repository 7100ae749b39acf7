package fetch

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/publicsuffix"
)

// Link is an anchor on the same site as the page it was found on.
type Link struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// ExternalLink is an anchor pointing to another site.
type ExternalLink struct {
	Href       string `json:"href"`
	Text       string `json:"text"`
	BaseDomain string `json:"base_domain"`
}

// Links holds the anchors of one page split by site.
type Links struct {
	Internal []Link         `json:"internal"`
	External []ExternalLink `json:"external"`
}

// ExtractLinks collects every anchor in htmlContent as an absolute URL and
// splits them into internal and external links by registrable domain.
// Search-engine redirect links (/url?q=...) are replaced by their target.
// Internal links keep duplicates since different labels may share an href;
// external links are unique by href.
func ExtractLinks(htmlContent string, baseURL string) (*Links, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &LinkExtractionError{
			Message: "failed to parse base URL",
			Cause:   err,
		}
	}

	if base.Scheme == "" || base.Host == "" {
		return nil, &LinkExtractionError{
			Message: fmt.Sprintf("invalid base URL: %s (must have scheme and host)", baseURL),
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &LinkExtractionError{
			Message: "failed to parse HTML",
			Cause:   err,
		}
	}

	pageDomain := BaseDomain(base.Hostname())
	links := &Links{
		Internal: make([]Link, 0),
		External: make([]ExternalLink, 0),
	}
	seenExternal := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		href = strings.TrimSpace(href)
		if !exists || href == "" || strings.HasPrefix(href, "#") {
			return
		}

		linkURL, err := url.Parse(href)
		if err != nil {
			// Skip malformed URLs
			return
		}

		absoluteURL := unwrapRedirect(base.ResolveReference(linkURL))
		if absoluteURL.Scheme != "http" && absoluteURL.Scheme != "https" {
			return
		}
		absoluteURL.Fragment = ""
		urlString := absoluteURL.String()
		text := strings.Join(strings.Fields(s.Text()), " ")

		domain := BaseDomain(absoluteURL.Hostname())
		if domain == pageDomain {
			links.Internal = append(links.Internal, Link{Href: urlString, Text: text})
			return
		}

		if !seenExternal[urlString] {
			seenExternal[urlString] = true
			links.External = append(links.External, ExternalLink{Href: urlString, Text: text, BaseDomain: domain})
		}
	})

	return links, nil
}

// BaseDomain returns the registrable domain of host (eTLD+1), or host itself
// when it has none (IP addresses, localhost).
func BaseDomain(host string) string {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if net.ParseIP(host) != nil {
		return host
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}

// unwrapRedirect returns the target of a Google /url redirect link, or u unchanged.
func unwrapRedirect(u *url.URL) *url.URL {
	if !strings.HasSuffix(strings.ToLower(u.Hostname()), "google.com") || u.Path != "/url" {
		return u
	}
	query := u.Query()
	for _, key := range []string{"q", "url"} {
		target, err := url.Parse(query.Get(key))
		if err == nil && target.Host != "" && (target.Scheme == "http" || target.Scheme == "https") {
			return target
		}
	}
	return u
}
