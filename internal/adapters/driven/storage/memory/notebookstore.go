package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driven"
)

// Ensure NotebookStore implements the interface.
var _ driven.NotebookStore = (*NotebookStore)(nil)

// NotebookStore is an in-memory implementation of driven.NotebookStore.
type NotebookStore struct {
	mu        sync.RWMutex
	notebooks map[string]*domain.Notebook

	sources *SourceStore
	chunks  *ChunkStore
}

// NewNotebookStore creates a new in-memory notebook store. sources and
// chunks receive the delete cascade and may be nil.
func NewNotebookStore(sources *SourceStore, chunks *ChunkStore) *NotebookStore {
	return &NotebookStore{
		notebooks: make(map[string]*domain.Notebook),
		sources:   sources,
		chunks:    chunks,
	}
}

// SaveNotebook stores a new notebook.
func (s *NotebookStore) SaveNotebook(_ context.Context, notebook *domain.Notebook) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notebooks[notebook.ID]; ok {
		return fmt.Errorf("notebook %s: %w", notebook.ID, domain.ErrAlreadyExists)
	}
	cp := *notebook
	s.notebooks[notebook.ID] = &cp
	return nil
}

// GetNotebook retrieves a notebook by ID.
func (s *NotebookStore) GetNotebook(_ context.Context, id string) (*domain.Notebook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nb, ok := s.notebooks[id]
	if !ok {
		return nil, fmt.Errorf("notebook %s: %w", id, domain.ErrNotFound)
	}
	cp := *nb
	return &cp, nil
}

// ListNotebooks returns all notebooks, newest first.
func (s *NotebookStore) ListNotebooks(_ context.Context) ([]domain.Notebook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Notebook, 0, len(s.notebooks))
	for _, nb := range s.notebooks {
		out = append(out, *nb)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// DeleteNotebook removes a notebook and cascades to its sources and
// chunks.
func (s *NotebookStore) DeleteNotebook(_ context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.notebooks[id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("notebook %s: %w", id, domain.ErrNotFound)
	}
	delete(s.notebooks, id)
	s.mu.Unlock()

	if s.sources != nil {
		s.sources.deleteByNotebook(id)
	}
	if s.chunks != nil {
		s.chunks.deleteByNotebook(id)
	}
	return nil
}
