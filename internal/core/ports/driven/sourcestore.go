package driven

import (
	"context"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
)

// SourceStore persists sources and their enablement state.
type SourceStore interface {
	// SaveSource stores a source if it does not exist yet.
	// Saving an existing source is a no-op (first ingestion wins).
	SaveSource(ctx context.Context, source *domain.Source) error

	// ListSources returns all sources in a notebook with their chunk
	// counts populated.
	ListSources(ctx context.Context, notebookID string) ([]domain.Source, error)

	// SetEnabled flips a source's enabled flag.
	// Returns domain.ErrNotFound if the source does not exist.
	SetEnabled(ctx context.Context, notebookID, sourceID string, enabled bool) error

	// DeleteSource removes a source and cascades to its chunks.
	// Returns domain.ErrNotFound if the source does not exist.
	DeleteSource(ctx context.Context, notebookID, sourceID string) error
}
