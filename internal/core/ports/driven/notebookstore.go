package driven

import (
	"context"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
)

// NotebookStore persists notebooks.
type NotebookStore interface {
	// SaveNotebook stores a new notebook.
	SaveNotebook(ctx context.Context, notebook *domain.Notebook) error

	// GetNotebook retrieves a notebook by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetNotebook(ctx context.Context, id string) (*domain.Notebook, error)

	// ListNotebooks returns all notebooks, newest first.
	ListNotebooks(ctx context.Context) ([]domain.Notebook, error)

	// DeleteNotebook removes a notebook and cascades to its sources
	// and chunks. Returns domain.ErrNotFound if it does not exist.
	DeleteNotebook(ctx context.Context, id string) error
}
