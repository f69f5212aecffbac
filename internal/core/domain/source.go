package domain

import "time"

// Source is a named origin (file or URL) owning zero or more chunks.
// It is created when the first chunk of that origin is ingested.
type Source struct {
	// ID identifies the source within its notebook. For files this is
	// the base file name, for URLs the page title or the URL itself.
	ID string

	// NotebookID links to the owning notebook.
	NotebookID string

	// Type is how the source was ingested.
	Type SourceType

	// URL is set for url sources.
	URL string

	// Path is set for file sources.
	Path string

	// Enabled gates whether this source's chunks participate in ranking.
	Enabled bool

	// ChunkCount is the number of chunks owned by this source.
	// Populated on listing, not persisted.
	ChunkCount int

	// CreatedAt is when the source was first ingested.
	CreatedAt time.Time
}
