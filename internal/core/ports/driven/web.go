package driven

import "context"

// Fetcher retrieves the raw HTML of a URL over plain HTTP.
// This is the first, cheapest extraction tier. Implementations apply
// their own request timeout and identify as a regular browser.
type Fetcher interface {
	// Fetch returns the response body for the URL.
	// Errors wrap domain.ErrFetch.
	Fetch(ctx context.Context, url string) (string, error)
}

// PageRenderer loads a URL in a headless browser and returns the fully
// rendered DOM. This is the expensive escalation tier for script-driven
// pages that serve an empty shell to plain HTTP clients.
//
// Implementations must create a fresh transient browser profile per
// call and remove it on every exit path, including timeouts and
// crashes.
type PageRenderer interface {
	// Render returns the rendered page HTML.
	// Errors wrap domain.ErrRender.
	Render(ctx context.Context, url string) (string, error)
}
