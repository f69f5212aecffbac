// Package memory provides in-memory implementations of the storage
// ports for testing.
package memory

import (
	"context"
	"sync"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an in-memory implementation of driven.ChunkStore.
// Insertion order is preserved per notebook, matching the corpus order
// the ranking index depends on.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks map[string][]domain.Chunk

	// sources resolves enablement on load. Optional; without it every
	// chunk counts as enabled.
	sources *SourceStore
}

// NewChunkStore creates a new in-memory chunk store. sources may be
// nil.
func NewChunkStore(sources *SourceStore) *ChunkStore {
	return &ChunkStore{
		chunks:  make(map[string][]domain.Chunk),
		sources: sources,
	}
}

// SaveChunks stores a batch of chunks, replacing any existing chunks
// with the same IDs.
func (s *ChunkStore) SaveChunks(_ context.Context, notebookID string, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.chunks[notebookID]
	byID := make(map[string]int, len(existing))
	for i, c := range existing {
		byID[c.ID] = i
	}
	for _, c := range chunks {
		if i, ok := byID[c.ID]; ok {
			existing[i] = c
			continue
		}
		byID[c.ID] = len(existing)
		existing = append(existing, c)
	}
	s.chunks[notebookID] = existing
	return nil
}

// LoadEnabledChunks returns the chunks of all enabled sources in
// insertion order.
func (s *ChunkStore) LoadEnabledChunks(_ context.Context, notebookID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Chunk
	for _, c := range s.chunks[notebookID] {
		if s.sourceEnabled(notebookID, c.SourceID) {
			c.Enabled = true
			out = append(out, c)
		}
	}
	return out, nil
}

// CountChunks returns the number of chunks regardless of enablement.
func (s *ChunkStore) CountChunks(_ context.Context, notebookID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks[notebookID]), nil
}

// deleteBySource drops all chunks of one source. Called by the source
// store under its own lock to emulate the cascade.
func (s *ChunkStore) deleteBySource(notebookID, sourceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.chunks[notebookID][:0]
	for _, c := range s.chunks[notebookID] {
		if c.SourceID != sourceID {
			kept = append(kept, c)
		}
	}
	s.chunks[notebookID] = kept
}

// deleteByNotebook drops all chunks of a notebook.
func (s *ChunkStore) deleteByNotebook(notebookID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chunks, notebookID)
}

// countBySource counts the chunks of one source.
func (s *ChunkStore) countBySource(notebookID, sourceID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, c := range s.chunks[notebookID] {
		if c.SourceID == sourceID {
			n++
		}
	}
	return n
}

func (s *ChunkStore) sourceEnabled(notebookID, sourceID string) bool {
	if s.sources == nil {
		return true
	}
	return s.sources.enabled(notebookID, sourceID)
}
