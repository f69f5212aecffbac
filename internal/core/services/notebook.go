package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driven"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driving"
)

// Ensure NotebookService implements the interface.
var _ driving.NotebookService = (*NotebookService)(nil)

// NotebookService manages notebook lifecycle.
type NotebookService struct {
	store driven.NotebookStore
	cache indexCache
}

// NewNotebookService creates a new notebook service.
func NewNotebookService(store driven.NotebookStore, cache indexCache) *NotebookService {
	return &NotebookService{store: store, cache: cache}
}

// Create makes a new notebook with a generated ID.
func (s *NotebookService) Create(ctx context.Context, title string) (*domain.Notebook, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("notebook title is required: %w", domain.ErrInvalidInput)
	}

	notebook := &domain.Notebook{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.SaveNotebook(ctx, notebook); err != nil {
		return nil, err
	}
	return notebook, nil
}

// List returns all notebooks, newest first.
func (s *NotebookService) List(ctx context.Context) ([]domain.Notebook, error) {
	return s.store.ListNotebooks(ctx)
}

// Delete removes a notebook with its sources and chunks, and evicts
// its cached index.
func (s *NotebookService) Delete(ctx context.Context, notebookID string) error {
	if err := s.store.DeleteNotebook(ctx, notebookID); err != nil {
		return err
	}
	s.cache.Invalidate(notebookID)
	return nil
}
