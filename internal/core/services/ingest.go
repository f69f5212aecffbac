package services

import (
	"context"
	"time"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driven"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driving"
	"github.com/inkpot-labs/inkpot/internal/extractors"
	"github.com/inkpot-labs/inkpot/internal/logger"
)

// sourceExtractor is the slice of the extraction pipeline the ingest
// service needs: one source reference in, chunk records out.
type sourceExtractor interface {
	Extract(ctx context.Context, ref, sourceID string) (*extractors.Result, error)
}

// indexCache invalidates cached ranking indexes after mutations.
// Satisfied by QueryService.
type indexCache interface {
	Invalidate(notebookID string)
}

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService extracts, chunks and persists documents and URLs.
type IngestService struct {
	notebookStore driven.NotebookStore
	sourceStore   driven.SourceStore
	chunkStore    driven.ChunkStore

	text sourceExtractor
	pdf  sourceExtractor
	web  sourceExtractor

	cache indexCache
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	notebookStore driven.NotebookStore,
	sourceStore driven.SourceStore,
	chunkStore driven.ChunkStore,
	text, pdf, web sourceExtractor,
	cache indexCache,
) *IngestService {
	return &IngestService{
		notebookStore: notebookStore,
		sourceStore:   sourceStore,
		chunkStore:    chunkStore,
		text:          text,
		pdf:           pdf,
		web:           web,
		cache:         cache,
	}
}

// Ingest runs one ingestion batch. A source whose extraction fails or
// yields zero chunks is recorded in Failed and skipped; a storage
// failure aborts the batch. The notebook's cached index is invalidated
// once when the batch added anything.
func (s *IngestService) Ingest(ctx context.Context, notebookID string, filePaths, urls []string) (*driving.IngestStats, error) {
	if _, err := s.notebookStore.GetNotebook(ctx, notebookID); err != nil {
		return nil, err
	}

	stats := &driving.IngestStats{}
	for _, path := range filePaths {
		ext := s.text
		if extractors.FileType(path) == domain.SourceTypePDF {
			ext = s.pdf
		}
		if err := s.ingestOne(ctx, notebookID, ext, path, path, "", stats); err != nil {
			return nil, err
		}
	}
	for _, url := range urls {
		if err := s.ingestOne(ctx, notebookID, s.web, url, "", url, stats); err != nil {
			return nil, err
		}
	}

	if stats.Added > 0 {
		s.cache.Invalidate(notebookID)
	}

	total, err := s.chunkStore.CountChunks(ctx, notebookID)
	if err != nil {
		return nil, err
	}
	stats.Total = total
	return stats, nil
}

// ingestOne extracts and persists a single source reference. Returns
// an error only for storage failures.
func (s *IngestService) ingestOne(
	ctx context.Context,
	notebookID string,
	ext sourceExtractor,
	ref, path, url string,
	stats *driving.IngestStats,
) error {
	res, err := ext.Extract(ctx, ref, "")
	if err != nil {
		logger.Warn("ingest: %s: %v", ref, err)
		stats.Failed = append(stats.Failed, ref)
		return nil
	}
	if len(res.Chunks) == 0 {
		logger.Warn("ingest: %s produced no chunks", ref)
		stats.Failed = append(stats.Failed, ref)
		return nil
	}

	source := &domain.Source{
		ID:         res.SourceID,
		NotebookID: notebookID,
		Type:       res.Type,
		URL:        url,
		Path:       path,
		Enabled:    true,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.sourceStore.SaveSource(ctx, source); err != nil {
		return err
	}
	if err := s.chunkStore.SaveChunks(ctx, notebookID, res.Chunks); err != nil {
		return err
	}

	logger.Debug("ingest: %s -> %d chunks as %q", ref, len(res.Chunks), res.SourceID)
	stats.Added += len(res.Chunks)
	return nil
}
