package driving

import (
	"context"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
)

// NotebookService manages notebook lifecycle.
type NotebookService interface {
	// Create makes a new notebook with the given title.
	Create(ctx context.Context, title string) (*domain.Notebook, error)

	// List returns all notebooks, newest first.
	List(ctx context.Context) ([]domain.Notebook, error)

	// Delete removes a notebook, its sources and chunks, and evicts
	// its cached ranking index.
	Delete(ctx context.Context, notebookID string) error
}
