package extractors

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driven"
	"github.com/inkpot-labs/inkpot/internal/logger"
	"github.com/inkpot-labs/inkpot/internal/postprocessors/chunker"
)

// Sufficiency thresholds for the web tiers, in characters. Tuned
// against real pages; skeleton pages typically carry a few hundred
// characters of navigation chrome, hence the higher raw-text bar.
const (
	minStaticBody      = 500
	minReadabilityText = 50
	minRawText         = 1000
	minRenderedText    = 100
)

// WebExtractor produces text from a URL using tiered fallbacks:
// static fetch, readability main-content extraction, raw flattening,
// and finally a headless render for script-driven pages.
type WebExtractor struct {
	fetcher  driven.Fetcher
	renderer driven.PageRenderer
	proc     *chunker.Processor
}

// NewWebExtractor creates a web extractor. renderer may be nil, in
// which case the render tier is skipped and extraction degrades to
// whatever the static tiers produce.
func NewWebExtractor(fetcher driven.Fetcher, renderer driven.PageRenderer, proc *chunker.Processor) *WebExtractor {
	return &WebExtractor{fetcher: fetcher, renderer: renderer, proc: proc}
}

// webState carries the intermediate products of one extraction run
// between strategies.
type webState struct {
	url         string
	html        string
	text        string
	title       string
	rendered    bool
	rawFallback bool
}

// webStrategy is one extraction stage. It inspects the state, may
// replace html/text, and reports whether the pipeline should continue
// escalating. Strategies never fail the run; they leave the best text
// obtained so far in place.
type webStrategy struct {
	name string
	run  func(ctx context.Context, st *webState)
}

// Extract fetches and extracts the URL into chunk records.
// The returned error is only non-nil when every tier failed to obtain
// any HTML at all; any obtained HTML degrades to best-effort text.
func (e *WebExtractor) Extract(ctx context.Context, pageURL, sourceID string) (*Result, error) {
	st := &webState{url: pageURL}

	if err := e.obtainHTML(ctx, st); err != nil {
		return nil, err
	}

	for _, strat := range e.strategies() {
		strat.run(ctx, st)
		logger.Debug("web: %s -> %d chars (rendered=%v)", strat.name, runeLen(st.text), st.rendered)
	}

	if sourceID == "" {
		sourceID = st.title
	}
	if sourceID == "" {
		sourceID = pageURL
	}

	col := newCollector(e.proc, sourceID, domain.SourceTypeURL)
	col.result.Title = st.title
	col.add(st.text, "", pageURL, "")
	return col.result, nil
}

// obtainHTML runs the fetch tier and, when the static result is
// insufficient or the fetch fails outright, the render tier.
func (e *WebExtractor) obtainHTML(ctx context.Context, st *webState) error {
	body, err := e.fetcher.Fetch(ctx, st.url)
	if err != nil {
		logger.Warn("web: static fetch failed for %s: %v", st.url, err)
		rendered, rerr := e.render(ctx, st.url)
		if rerr != nil {
			return fmt.Errorf("all tiers failed for %s: %w", st.url, err)
		}
		st.html = rendered
		st.rendered = true
		return nil
	}

	st.html = body
	if staticInsufficient(body) {
		logger.Debug("web: static result looks like a script shell, escalating %s", st.url)
		if rendered, rerr := e.render(ctx, st.url); rerr == nil {
			st.html = rendered
			st.rendered = true
		}
		// Render failure keeps the static HTML; later tiers still run.
	}
	return nil
}

func (e *WebExtractor) strategies() []webStrategy {
	return []webStrategy{
		{name: "readability", run: e.readabilityStage},
		{name: "raw-flatten", run: e.rawFlattenStage},
		{name: "render-escalation", run: e.renderStage},
	}
}

// readabilityStage strips boilerplate and flattens the main content.
func (e *WebExtractor) readabilityStage(_ context.Context, st *webState) {
	st.text, st.title = readabilityPass(st.html, st.url)
}

// rawFlattenStage replaces a too-short readability result with the
// flattened raw HTML, boilerplate included.
func (e *WebExtractor) rawFlattenStage(_ context.Context, st *webState) {
	if runeLen(st.text) >= minReadabilityText {
		return
	}
	st.text = flattenHTML(st.html)
	st.rawFallback = true
}

// renderStage escalates to the headless browser when the flattened
// text still looks like an empty application shell and no render has
// been tried yet. A failed render keeps the pre-render text.
func (e *WebExtractor) renderStage(ctx context.Context, st *webState) {
	if !st.rawFallback || st.rendered {
		// Readability already succeeded, or a render was consumed by
		// an earlier tier.
		return
	}
	if runeLen(st.text) >= minRawText && !shellMarkers(st.html) {
		return
	}

	renderedHTML, err := e.render(ctx, st.url)
	if err != nil {
		logger.Warn("web: render failed for %s, keeping best-effort text: %v", st.url, err)
		return
	}
	st.rendered = true

	text, title := readabilityPass(renderedHTML, st.url)
	if runeLen(text) < minRenderedText {
		text = flattenHTML(renderedHTML)
	}
	st.html = renderedHTML
	st.text = text
	if title != "" {
		st.title = title
	}
}

func (e *WebExtractor) render(ctx context.Context, url string) (string, error) {
	if e.renderer == nil {
		return "", fmt.Errorf("%w: no renderer configured", domain.ErrRender)
	}
	return e.renderer.Render(ctx, url)
}

// staticInsufficient reports whether a static fetch result is too thin
// to bother extracting: either hardly any bytes came back, or the head
// of the document is script with no body content (a client-rendered
// shell).
func staticInsufficient(body string) bool {
	if runeLen(body) < minStaticBody {
		return true
	}
	return strings.Contains(runePrefix(body, 500), "<script") &&
		!strings.Contains(runePrefix(body, 1000), "<body>")
}

// shellMarkers reports whether the HTML looks like a known empty
// application shell: an empty root container, or a body that holds
// nothing but a script tag.
func shellMarkers(html string) bool {
	if strings.Contains(html, `<div id="root"></div>`) {
		return true
	}
	return strings.Contains(strings.ReplaceAll(html, " ", ""), "<body><script>")
}
