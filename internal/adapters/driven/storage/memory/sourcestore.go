package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driven"
)

// Ensure SourceStore implements the interface.
var _ driven.SourceStore = (*SourceStore)(nil)

type sourceKey struct {
	notebookID string
	sourceID   string
}

// SourceStore is an in-memory implementation of driven.SourceStore.
type SourceStore struct {
	mu      sync.RWMutex
	sources map[sourceKey]*domain.Source
	order   []sourceKey

	// chunks receives the delete cascade. Wired by Bind after both
	// stores exist.
	chunks *ChunkStore
}

// NewSourceStore creates a new in-memory source store.
func NewSourceStore() *SourceStore {
	return &SourceStore{sources: make(map[sourceKey]*domain.Source)}
}

// Bind attaches the chunk store that delete cascades apply to.
func (s *SourceStore) Bind(chunks *ChunkStore) {
	s.chunks = chunks
}

// SaveSource stores a source if it does not exist yet. Saving an
// existing source is a no-op.
func (s *SourceStore) SaveSource(_ context.Context, source *domain.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sourceKey{source.NotebookID, source.ID}
	if _, ok := s.sources[key]; ok {
		return nil
	}
	cp := *source
	s.sources[key] = &cp
	s.order = append(s.order, key)
	return nil
}

// ListSources returns all sources in a notebook with chunk counts
// populated, in insertion order.
func (s *SourceStore) ListSources(_ context.Context, notebookID string) ([]domain.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Source
	for _, key := range s.order {
		if key.notebookID != notebookID {
			continue
		}
		src := *s.sources[key]
		if s.chunks != nil {
			src.ChunkCount = s.chunks.countBySource(notebookID, src.ID)
		}
		out = append(out, src)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// SetEnabled flips a source's enabled flag.
func (s *SourceStore) SetEnabled(_ context.Context, notebookID, sourceID string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, ok := s.sources[sourceKey{notebookID, sourceID}]
	if !ok {
		return fmt.Errorf("source %s: %w", sourceID, domain.ErrNotFound)
	}
	src.Enabled = enabled
	return nil
}

// DeleteSource removes a source and cascades to its chunks.
func (s *SourceStore) DeleteSource(_ context.Context, notebookID, sourceID string) error {
	s.mu.Lock()
	key := sourceKey{notebookID, sourceID}
	if _, ok := s.sources[key]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("source %s: %w", sourceID, domain.ErrNotFound)
	}
	delete(s.sources, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if s.chunks != nil {
		s.chunks.deleteBySource(notebookID, sourceID)
	}
	return nil
}

// deleteByNotebook drops all sources of a notebook. Called by the
// notebook store's delete cascade.
func (s *SourceStore) deleteByNotebook(notebookID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.order[:0]
	for _, key := range s.order {
		if key.notebookID == notebookID {
			delete(s.sources, key)
			continue
		}
		kept = append(kept, key)
	}
	s.order = kept
}

// enabled reports whether the source exists and is enabled.
func (s *SourceStore) enabled(notebookID, sourceID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src, ok := s.sources[sourceKey{notebookID, sourceID}]
	return ok && src.Enabled
}
