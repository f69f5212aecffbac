package domain

import "fmt"

// SourceType identifies how a source was ingested.
type SourceType string

const (
	// SourceTypeText is a plain text file.
	SourceTypeText SourceType = "text"

	// SourceTypePDF is a paginated PDF document.
	SourceTypePDF SourceType = "pdf"

	// SourceTypeURL is a web page fetched over HTTP.
	SourceTypeURL SourceType = "url"
)

// Chunk is the atomic retrieval unit: a bounded, whitespace-normalised
// text fragment cut from one source.
//
// Chunks are immutable once created, except for Enabled, which is
// inherited from the owning source.
type Chunk struct {
	// ID is derived from the source ID and the chunk's ordinal position
	// within that source ("<source_id>#<n>"). Ordinals follow extraction
	// order, so re-ingesting the same source reproduces the same IDs.
	ID string

	// Text is the cleaned chunk content.
	Text string

	// SourceID links to the owning Source.
	SourceID string

	// SourceType is the type of the owning source.
	SourceType SourceType

	// Location is an optional locator within the source, e.g. "page 3"
	// for PDFs. Empty for text files and URLs.
	Location string

	// URL is the provenance URL for url sources.
	URL string

	// Path is the provenance file path for file sources.
	Path string

	// Enabled mirrors the owning source's enabled flag. Disabled chunks
	// never participate in ranking.
	Enabled bool
}

// ChunkID builds the deterministic chunk identifier for a source ordinal.
func ChunkID(sourceID string, ordinal int) string {
	return fmt.Sprintf("%s#%d", sourceID, ordinal)
}
