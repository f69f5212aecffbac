package services

import (
	"context"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driven"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driving"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// SourceService manages the sources of a notebook.
type SourceService struct {
	notebookStore driven.NotebookStore
	sourceStore   driven.SourceStore
	cache         indexCache
}

// NewSourceService creates a new source service.
func NewSourceService(
	notebookStore driven.NotebookStore,
	sourceStore driven.SourceStore,
	cache indexCache,
) *SourceService {
	return &SourceService{
		notebookStore: notebookStore,
		sourceStore:   sourceStore,
		cache:         cache,
	}
}

// List returns a notebook's sources with chunk counts.
func (s *SourceService) List(ctx context.Context, notebookID string) ([]domain.Source, error) {
	if _, err := s.notebookStore.GetNotebook(ctx, notebookID); err != nil {
		return nil, err
	}
	return s.sourceStore.ListSources(ctx, notebookID)
}

// SetEnabled flips a source's enablement and invalidates the cached
// index so the next query sees the change.
func (s *SourceService) SetEnabled(ctx context.Context, notebookID, sourceID string, enabled bool) error {
	if err := s.sourceStore.SetEnabled(ctx, notebookID, sourceID, enabled); err != nil {
		return err
	}
	s.cache.Invalidate(notebookID)
	return nil
}

// Delete removes a source and its chunks and invalidates the cached
// index.
func (s *SourceService) Delete(ctx context.Context, notebookID, sourceID string) error {
	if err := s.sourceStore.DeleteSource(ctx, notebookID, sourceID); err != nil {
		return err
	}
	s.cache.Invalidate(notebookID)
	return nil
}
