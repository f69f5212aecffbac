// Package web provides the two HTML acquisition tiers behind the
// extraction pipeline: a plain HTTP fetcher and a headless-browser
// page renderer.
package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driven"
)

// browserUserAgent is sent on every request. Some sites serve an empty
// or blocked page to non-browser agents.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// DefaultFetchTimeout bounds one static fetch.
const DefaultFetchTimeout = 20 * time.Second

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw HTML over plain HTTP. Requests are rate
// limited per process so ingesting a batch of URLs does not hammer a
// single host.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// FetcherOption configures the fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

// WithRateLimit sets the request rate limit.
func WithRateLimit(limit rate.Limit, burst int) FetcherOption {
	return func(f *Fetcher) {
		f.limiter = rate.NewLimiter(limit, burst)
	}
}

// NewFetcher creates a new HTTP fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{Timeout: DefaultFetchTimeout},
		limiter: rate.NewLimiter(rate.Limit(2), 4),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the response body for the URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: %s returned %s", domain.ErrFetch, url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", domain.ErrFetch, err)
	}
	return string(body), nil
}
