package web

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driven"
	"github.com/inkpot-labs/inkpot/internal/logger"
)

// DefaultRenderTimeout bounds one headless render, browser startup
// included.
const DefaultRenderTimeout = 60 * time.Second

// settleDelay gives client-side scripts time to populate the DOM after
// the navigation completes.
const settleDelay = 2 * time.Second

// Ensure Renderer implements the interface.
var _ driven.PageRenderer = (*Renderer)(nil)

// Renderer loads pages in a headless Chrome and returns the rendered
// DOM. Every call runs in a fresh transient profile that is removed on
// all exit paths, so renders never leak state or disk.
type Renderer struct {
	timeout time.Duration
}

// RendererOption configures the renderer.
type RendererOption func(*Renderer)

// WithRenderTimeout sets the per-render timeout.
func WithRenderTimeout(d time.Duration) RendererOption {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// NewRenderer creates a new headless page renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{timeout: DefaultRenderTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns the rendered page HTML.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	profileDir, err := os.MkdirTemp("", "inkpot-chrome-")
	if err != nil {
		return "", fmt.Errorf("%w: creating profile dir: %v", domain.ErrRender, err)
	}
	defer func() {
		if err := os.RemoveAll(profileDir); err != nil {
			logger.Warn("web: removing browser profile %s: %v", profileDir, err)
		}
	}()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(profileDir),
		chromedp.UserAgent(browserUserAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, r.timeout)
	defer cancelTimeout()

	var html string
	err = chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrRender, url, err)
	}
	return html, nil
}
