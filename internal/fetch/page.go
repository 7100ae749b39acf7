package fetch

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RenderFunc renders a URL and returns its HTML.
type RenderFunc func(ctx context.Context, url string) (string, error)

// PageFetcherOptions configures a PageFetcher.
type PageFetcherOptions struct {
	// UseBrowser renders every page in a headless browser.
	UseBrowser bool
	// BrowserFallback renders pages whose HTTP fetch failed or returned too little text.
	BrowserFallback bool
	BrowserTimeout  time.Duration
	HTTP            *Options
	Logger          *zap.Logger
	// Render overrides headless rendering; nil uses chromedp.
	Render RenderFunc
}

// PageFetcher fetches a page and returns its links.
type PageFetcher struct {
	useBrowser      bool
	browserFallback bool
	http            *Options
	render          RenderFunc
	logger          *zap.Logger
}

// NewPageFetcher creates a PageFetcher.
func NewPageFetcher(opts PageFetcherOptions) *PageFetcher {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	httpOpts := opts.HTTP
	if httpOpts == nil {
		httpOpts = DefaultOptions()
	}
	render := opts.Render
	if render == nil {
		timeout := opts.BrowserTimeout
		render = func(ctx context.Context, url string) (string, error) {
			return WithBrowser(ctx, url, timeout, logger)
		}
	}
	return &PageFetcher{
		useBrowser:      opts.UseBrowser,
		browserFallback: opts.BrowserFallback,
		http:            httpOpts,
		render:          render,
		logger:          logger,
	}
}

// FetchPage retrieves pageURL and extracts its internal and external links.
func (f *PageFetcher) FetchPage(ctx context.Context, pageURL string) (*Links, error) {
	html, baseURL, err := f.load(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return ExtractLinks(html, baseURL)
}

func (f *PageFetcher) load(ctx context.Context, pageURL string) (html string, baseURL string, err error) {
	if f.useBrowser {
		html, err = f.renderPage(ctx, pageURL)
		return html, pageURL, err
	}

	result, err := URL(ctx, pageURL, f.http)
	if err != nil {
		if !f.browserFallback || ctx.Err() != nil {
			return "", "", err
		}
		f.logger.Info("HTTP fetch failed, rendering in browser", zap.String("url", pageURL), zap.Error(err))
		html, err = f.renderPage(ctx, pageURL)
		return html, pageURL, err
	}

	baseURL = result.FinalURL
	if baseURL == "" {
		baseURL = pageURL
	}

	if f.browserFallback {
		text, textErr := VisibleText(result.HTML)
		if textErr != nil || ShouldUseBrowser(text) {
			f.logger.Info("page content too short, rendering in browser", zap.String("url", pageURL))
			html, err = f.renderPage(ctx, pageURL)
			return html, pageURL, err
		}
	}

	return result.HTML, baseURL, nil
}

func (f *PageFetcher) renderPage(ctx context.Context, pageURL string) (string, error) {
	html, err := f.render(ctx, pageURL)
	if err != nil {
		return "", &Error{URL: pageURL, Message: "browser rendering failed", Cause: err}
	}
	return html, nil
}
