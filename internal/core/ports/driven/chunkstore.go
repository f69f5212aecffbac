package driven

import (
	"context"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
)

// ChunkStore persists chunks. Backed by SQLite for durable storage,
// with an in-memory implementation for tests.
type ChunkStore interface {
	// SaveChunks stores a batch of chunks for a notebook.
	// Existing chunks with the same ID are replaced.
	SaveChunks(ctx context.Context, notebookID string, chunks []domain.Chunk) error

	// LoadEnabledChunks returns the chunks of all enabled sources in a
	// notebook, in insertion order. This is the corpus the ranking
	// index is built from.
	LoadEnabledChunks(ctx context.Context, notebookID string) ([]domain.Chunk, error)

	// CountChunks returns the number of chunks in a notebook,
	// regardless of enablement.
	CountChunks(ctx context.Context, notebookID string) (int, error)
}
