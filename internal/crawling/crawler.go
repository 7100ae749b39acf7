package crawling

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-scout/internal/fetch"
	"github.com/jonathan/talent-scout/internal/profile"
	"github.com/jonathan/talent-scout/internal/types"
)

const (
	// DefaultMaxPages is the default number of result pages fetched per crawl, the first included.
	DefaultMaxPages = 10
	// MaxPagesLimit is the hard maximum number of result pages per crawl.
	MaxPagesLimit = 50
	// DefaultProfileSiteMarker selects candidate links by their base domain.
	DefaultProfileSiteMarker = "linkedin.com"
)

// PageFetcher returns the links found on a search result page.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL string) (*fetch.Links, error)
}

// Options configures a Crawler.
type Options struct {
	SearchEndpoint    string
	ProfileSiteMarker string
	MaxPages          int
	// Concurrency bounds parallel profile lookups within one result page.
	Concurrency int
	// Now overrides the clock used for tenure inference.
	Now func() time.Time
}

// DefaultOptions returns sensible defaults for crawling.
func DefaultOptions() Options {
	return Options{
		SearchEndpoint:    DefaultSearchEndpoint,
		ProfileSiteMarker: DefaultProfileSiteMarker,
		MaxPages:          DefaultMaxPages,
		Concurrency:       1,
		Now:               time.Now,
	}
}

// Crawler walks search result pages and looks up every profile they link to.
// It holds no per-crawl state and may serve concurrent crawls.
type Crawler struct {
	pages    PageFetcher
	profiles profile.Source
	opts     Options
	logger   *zap.Logger
}

// NewCrawler creates a Crawler. Zero option fields take their defaults.
func NewCrawler(pages PageFetcher, profiles profile.Source, opts Options, logger *zap.Logger) *Crawler {
	defaults := DefaultOptions()
	if opts.SearchEndpoint == "" {
		opts.SearchEndpoint = defaults.SearchEndpoint
	}
	if opts.ProfileSiteMarker == "" {
		opts.ProfileSiteMarker = defaults.ProfileSiteMarker
	}
	if opts.MaxPages < 1 {
		opts.MaxPages = defaults.MaxPages
	}
	if opts.MaxPages > MaxPagesLimit {
		opts.MaxPages = MaxPagesLimit
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = defaults.Concurrency
	}
	if opts.Now == nil {
		opts.Now = defaults.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Crawler{pages: pages, profiles: profiles, opts: opts, logger: logger}
}

// Crawl returns a candidate for every profile found in the search results for q.
func (c *Crawler) Crawl(ctx context.Context, q Query) ([]types.Candidate, error) {
	return crawl(ctx, c, q, func(raw *profile.RawProfile, profileURL string) (types.Candidate, bool) {
		return profile.Normalize(raw, profileURL), true
	})
}

// CrawlTargetedTenure returns, for every candidate who joined parentCompany in
// the searched position less than four months ago, the employer they held
// before it.
func (c *Crawler) CrawlTargetedTenure(ctx context.Context, parentCompany string, q Query) ([]types.ExperienceEntry, error) {
	now := c.opts.Now()
	return crawl(ctx, c, q, func(raw *profile.RawProfile, _ string) (types.ExperienceEntry, bool) {
		experience, _ := profile.NormalizeExperience(raw.Experience)
		return profile.InferPriorEmployer(experience, parentCompany, q.Position, now)
	})
}

// CrawlExcludingCompany is Crawl without the candidates currently employed at
// parentCompany.
func (c *Crawler) CrawlExcludingCompany(ctx context.Context, parentCompany string, q Query) ([]types.Candidate, error) {
	return crawl(ctx, c, q, func(raw *profile.RawProfile, profileURL string) (types.Candidate, bool) {
		candidate := profile.Normalize(raw, profileURL)
		if candidate.CurrentCompany != nil && strings.EqualFold(candidate.CurrentCompany.Company, parentCompany) {
			return types.Candidate{}, false
		}
		return candidate, true
	})
}

// extractFunc turns one fetched profile into at most one result.
type extractFunc[T any] func(raw *profile.RawProfile, profileURL string) (T, bool)

// crawl fetches the first result page, then every numbered result page
// discovered along the way, each exactly once, until none is left or the page
// limit is reached. Results from one page are appended before the next page is
// fetched. A page fetch failure aborts the crawl and drops partial results.
func crawl[T any](ctx context.Context, c *Crawler, q Query, extract extractFunc[T]) ([]T, error) {
	startURL, err := BuildSearchURL(c.opts.SearchEndpoint, q)
	if err != nil {
		return nil, err
	}

	results := make([]T, 0)
	seenProfiles := make(map[string]bool)
	visited := map[string]bool{startURL: true}
	pagination := make([]string, 0)

	pageURL := startURL
	next := 0
	pagesFetched := 0
	for {
		if pagesFetched == c.opts.MaxPages {
			c.logger.Warn("page limit reached, stopping crawl",
				zap.Int("max_pages", c.opts.MaxPages),
				zap.Int("pending_pages", 1+countUnvisited(pagination[next:], visited)))
			break
		}

		links, err := c.pages.FetchPage(ctx, pageURL)
		pagesFetched++
		if err != nil {
			return nil, &PageFetchError{URL: pageURL, Cause: err}
		}
		if links == nil {
			links = &fetch.Links{}
		}

		found, err := lookupProfiles(ctx, c, c.profileURLs(links.External, seenProfiles), extract)
		if err != nil {
			return nil, err
		}
		results = append(results, found...)

		// The set only grows at the tail, so a cursor visits each URL once.
		pagination = ExtractPaginationURLs(links.Internal, pagination)
		pageURL = ""
		for ; next < len(pagination); next++ {
			if !visited[pagination[next]] {
				pageURL = pagination[next]
				visited[pageURL] = true
				next++
				break
			}
		}
		if pageURL == "" {
			break
		}
	}

	c.logger.Info("crawl complete",
		zap.Int("pages", pagesFetched),
		zap.Int("profiles", len(seenProfiles)),
		zap.Int("results", len(results)))
	return results, nil
}

// profileURLs selects the candidate profile links not seen earlier in the crawl.
func (c *Crawler) profileURLs(external []fetch.ExternalLink, seen map[string]bool) []string {
	urls := make([]string, 0)
	for _, link := range external {
		if link.Href == "" || !strings.Contains(link.BaseDomain, c.opts.ProfileSiteMarker) {
			continue
		}
		if seen[link.Href] {
			continue
		}
		seen[link.Href] = true
		urls = append(urls, link.Href)
	}
	return urls
}

// lookupProfiles fetches and extracts profileURLs in parallel, keeping their order.
// A failed profile is logged and skipped; only cancellation fails the batch.
func lookupProfiles[T any](ctx context.Context, c *Crawler, profileURLs []string, extract extractFunc[T]) ([]T, error) {
	values := make([]T, len(profileURLs))
	produced := make([]bool, len(profileURLs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)
	for i, profileURL := range profileURLs {
		g.Go(func() error {
			raw, err := c.fetchProfile(gctx, profileURL)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				c.logger.Warn("skipping profile",
					zap.String("profile_url", profileURL),
					zap.Error(err))
				return nil
			}
			values[i], produced[i] = extract(raw, profileURL)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]T, 0, len(values))
	for i, v := range values {
		if produced[i] {
			results = append(results, v)
		}
	}
	return results, nil
}

func (c *Crawler) fetchProfile(ctx context.Context, profileURL string) (*profile.RawProfile, error) {
	username, err := profile.UsernameFromURL(profileURL)
	if err != nil {
		return nil, err
	}
	raw, err := c.profiles.FetchProfile(ctx, username)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, &profile.FetchError{Username: username, Message: "no profile returned", Cause: profile.ErrProfileNotFound}
	}
	return raw, nil
}

func countUnvisited(urls []string, visited map[string]bool) int {
	n := 0
	for _, u := range urls {
		if !visited[u] {
			n++
		}
	}
	return n
}
