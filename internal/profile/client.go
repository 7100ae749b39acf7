package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeout is the default profile request timeout.
const DefaultTimeout = 20 * time.Second

// ClientOptions configures the profile API client.
type ClientOptions struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	HTTPClient        *http.Client
}

// Client fetches profile records from the profile data API.
// Requests are throttled client-side; the API itself is rate limited.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a profile API client. The caller owns its lifecycle.
func NewClient(opts ClientOptions) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid profile API URL %q", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL:    base,
		apiKey:     opts.APIKey,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
	}, nil
}

// FetchProfile retrieves the raw profile for username.
// A missing profile is reported as ErrProfileNotFound wrapped in a FetchError.
func (c *Client) FetchProfile(ctx context.Context, username string) (*RawProfile, error) {
	if username == "" {
		return nil, &FetchError{Username: username, Message: "empty username"}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Username: username, Message: "rate limiter wait failed", Cause: err}
	}

	endpoint := c.baseURL.JoinPath("profiles", username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, &FetchError{Username: username, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Username: username, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &FetchError{Username: username, Message: "no record", Cause: ErrProfileNotFound}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FetchError{
			Username: username,
			Message:  fmt.Sprintf("HTTP status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var raw *RawProfile
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &FetchError{Username: username, Message: "failed to decode profile", Cause: err}
	}
	if raw == nil {
		return nil, &FetchError{Username: username, Message: "empty record", Cause: ErrProfileNotFound}
	}

	return raw, nil
}
