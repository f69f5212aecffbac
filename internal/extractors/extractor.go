// Package extractors turns raw sources (files and URLs) into ordered
// chunk records. Each source type has its own extractor; all of them
// share the same post-processing: extracted text is whitespace-
// normalised, chunked, and tagged with deterministic chunk IDs and
// provenance.
//
// Extraction is best-effort by design. Unreliable inputs (script-only
// pages, scanned PDF pages, flaky networks) degrade through fallback
// tiers instead of failing; a source only yields zero chunks when
// every tier is exhausted.
package extractors

import (
	"path/filepath"
	"strings"

	"github.com/inkpot-labs/inkpot/internal/analysis"
	"github.com/inkpot-labs/inkpot/internal/core/domain"
	"github.com/inkpot-labs/inkpot/internal/postprocessors/chunker"
)

// Result is the outcome of extracting one source.
type Result struct {
	// SourceID is the resolved source identifier (explicit override,
	// file base name, page title, or the URL itself).
	SourceID string

	// Type is the resolved source type.
	Type domain.SourceType

	// Title is the document title when one was found.
	Title string

	// Chunks are the extracted chunk records in extraction order.
	Chunks []domain.Chunk
}

// collector accumulates chunks for one source, assigning sequential
// ordinals across all of the source's segments (pages keep counting
// where the previous page left off).
type collector struct {
	proc   *chunker.Processor
	result *Result
}

func newCollector(proc *chunker.Processor, sourceID string, sourceType domain.SourceType) *collector {
	return &collector{
		proc:   proc,
		result: &Result{SourceID: sourceID, Type: sourceType},
	}
}

// add cleans, chunks and records one extracted text segment.
func (c *collector) add(text, location, url, path string) {
	text = analysis.CleanText(text)
	for _, piece := range c.proc.Split(text) {
		c.result.Chunks = append(c.result.Chunks, domain.Chunk{
			ID:         domain.ChunkID(c.result.SourceID, len(c.result.Chunks)),
			Text:       piece,
			SourceID:   c.result.SourceID,
			SourceType: c.result.Type,
			Location:   location,
			URL:        url,
			Path:       path,
			Enabled:    true,
		})
	}
}

// FileType resolves the source type for a file path.
// PDFs get the paginated pipeline; everything else is read as text.
func FileType(path string) domain.SourceType {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return domain.SourceTypePDF
	}
	return domain.SourceTypeText
}
