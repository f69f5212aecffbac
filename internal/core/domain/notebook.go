package domain

import "time"

// Notebook is an isolated collection of sources and chunks.
// Ranking indexes are built per notebook and never shared.
type Notebook struct {
	// ID is the unique notebook identifier (UUID).
	ID string

	// Title is the human-readable notebook name.
	Title string

	// CreatedAt is when the notebook was created.
	CreatedAt time.Time
}
