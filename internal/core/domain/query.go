package domain

// Hit is a single ranked search result: a chunk and its fused score.
type Hit struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Score is the fused relevance score in [0,1].
	Score float64
}

// Citation points an answer fragment back at the chunk it came from.
type Citation struct {
	// Rank is the 1-indexed position in the ranked hit list.
	Rank int `json:"rank"`

	// Score is the fused score rounded to four decimal places.
	Score float64 `json:"score"`

	// SourceID identifies the owning source.
	SourceID string `json:"source_id"`

	// SourceType is the owning source's type.
	SourceType SourceType `json:"source_type"`

	// Location is the in-source locator, if any ("page 3").
	Location string `json:"location,omitempty"`

	// URL is the provenance URL, if any.
	URL string `json:"url,omitempty"`

	// Path is the provenance file path, if any.
	Path string `json:"path,omitempty"`
}

// Answer is the synthesised response to a query, with citations into
// the ranked chunks the answer was grounded on.
type Answer struct {
	// Text is the answer body.
	Text string `json:"answer"`

	// Citations lists the chunks handed to synthesis, in rank order.
	Citations []Citation `json:"citations"`
}
