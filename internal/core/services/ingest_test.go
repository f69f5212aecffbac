package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpot-labs/inkpot/internal/adapters/driven/storage/memory"
	"github.com/inkpot-labs/inkpot/internal/core/domain"
	"github.com/inkpot-labs/inkpot/internal/extractors"
)

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) Invalidate(notebookID string) {
	f.invalidated = append(f.invalidated, notebookID)
}

// fakeExtractor maps source references to canned results.
type fakeExtractor struct {
	results map[string]*extractors.Result
	err     error
	calls   []string
}

func (f *fakeExtractor) Extract(_ context.Context, ref, _ string) (*extractors.Result, error) {
	f.calls = append(f.calls, ref)
	if f.err != nil {
		return nil, f.err
	}
	if res, ok := f.results[ref]; ok {
		return res, nil
	}
	return &extractors.Result{SourceID: ref, Type: domain.SourceTypeText}, nil
}

func makeResult(sourceID string, srcType domain.SourceType, texts ...string) *extractors.Result {
	res := &extractors.Result{SourceID: sourceID, Type: srcType}
	for i, text := range texts {
		res.Chunks = append(res.Chunks, domain.Chunk{
			ID:         domain.ChunkID(sourceID, i),
			Text:       text,
			SourceID:   sourceID,
			SourceType: srcType,
			Enabled:    true,
		})
	}
	return res
}

type ingestFixture struct {
	notebooks *memory.NotebookStore
	sources   *memory.SourceStore
	chunks    *memory.ChunkStore
	text      *fakeExtractor
	pdf       *fakeExtractor
	web       *fakeExtractor
	cache     *fakeCache
	svc       *IngestService
}

func newIngestFixture(t *testing.T) *ingestFixture {
	t.Helper()

	sources := memory.NewSourceStore()
	chunks := memory.NewChunkStore(sources)
	sources.Bind(chunks)
	notebooks := memory.NewNotebookStore(sources, chunks)
	require.NoError(t, notebooks.SaveNotebook(context.Background(), &domain.Notebook{
		ID: "nb", Title: "test", CreatedAt: time.Now(),
	}))

	fix := &ingestFixture{
		notebooks: notebooks,
		sources:   sources,
		chunks:    chunks,
		text:      &fakeExtractor{results: map[string]*extractors.Result{}},
		pdf:       &fakeExtractor{results: map[string]*extractors.Result{}},
		web:       &fakeExtractor{results: map[string]*extractors.Result{}},
		cache:     &fakeCache{},
	}
	fix.svc = NewIngestService(notebooks, sources, chunks, fix.text, fix.pdf, fix.web, fix.cache)
	return fix
}

func TestIngestService_UnknownNotebook(t *testing.T) {
	fix := newIngestFixture(t)
	_, err := fix.svc.Ingest(context.Background(), "ghost", []string{"a.txt"}, nil)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIngestService_DispatchByType(t *testing.T) {
	fix := newIngestFixture(t)
	fix.text.results["/d/notes.txt"] = makeResult("notes.txt", domain.SourceTypeText, "plain text body")
	fix.pdf.results["/d/paper.pdf"] = makeResult("paper.pdf", domain.SourceTypePDF, "pdf page body")
	fix.web.results["https://e.com"] = makeResult("Example", domain.SourceTypeURL, "web page body")

	stats, err := fix.svc.Ingest(context.Background(), "nb",
		[]string{"/d/notes.txt", "/d/paper.pdf"}, []string{"https://e.com"})
	require.NoError(t, err)

	assert.Equal(t, []string{"/d/notes.txt"}, fix.text.calls)
	assert.Equal(t, []string{"/d/paper.pdf"}, fix.pdf.calls)
	assert.Equal(t, []string{"https://e.com"}, fix.web.calls)
	assert.Equal(t, 3, stats.Added)
	assert.Equal(t, 3, stats.Total)
	assert.Empty(t, stats.Failed)
}

func TestIngestService_PersistsSourcesAndChunks(t *testing.T) {
	ctx := context.Background()
	fix := newIngestFixture(t)
	fix.text.results["/d/notes.txt"] = makeResult("notes.txt", domain.SourceTypeText, "one", "two")
	fix.web.results["https://e.com/page"] = makeResult("Page Title", domain.SourceTypeURL, "web body")

	_, err := fix.svc.Ingest(ctx, "nb", []string{"/d/notes.txt"}, []string{"https://e.com/page"})
	require.NoError(t, err)

	listed, err := fix.sources.ListSources(ctx, "nb")
	require.NoError(t, err)
	require.Len(t, listed, 2)

	byID := map[string]domain.Source{}
	for _, src := range listed {
		byID[src.ID] = src
	}
	file := byID["notes.txt"]
	assert.Equal(t, "/d/notes.txt", file.Path)
	assert.True(t, file.Enabled)
	assert.Equal(t, 2, file.ChunkCount)

	web := byID["Page Title"]
	assert.Equal(t, "https://e.com/page", web.URL)
	assert.Equal(t, domain.SourceTypeURL, web.Type)
}

func TestIngestService_FailedSourcesDoNotAbort(t *testing.T) {
	fix := newIngestFixture(t)
	fix.text.results["/d/good.txt"] = makeResult("good.txt", domain.SourceTypeText, "body")
	// "/d/empty.txt" has no canned result and yields zero chunks.
	fix.web.err = errors.New("connection refused")

	stats, err := fix.svc.Ingest(context.Background(), "nb",
		[]string{"/d/empty.txt", "/d/good.txt"}, []string{"https://down.example.com"})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Added)
	assert.ElementsMatch(t, []string{"/d/empty.txt", "https://down.example.com"}, stats.Failed)
}

func TestIngestService_InvalidatesOnceWhenAdded(t *testing.T) {
	fix := newIngestFixture(t)
	fix.text.results["/d/a.txt"] = makeResult("a.txt", domain.SourceTypeText, "one")
	fix.text.results["/d/b.txt"] = makeResult("b.txt", domain.SourceTypeText, "two")

	_, err := fix.svc.Ingest(context.Background(), "nb", []string{"/d/a.txt", "/d/b.txt"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"nb"}, fix.cache.invalidated)
}

func TestIngestService_NoInvalidateOnEmptyBatch(t *testing.T) {
	fix := newIngestFixture(t)

	stats, err := fix.svc.Ingest(context.Background(), "nb", []string{"/d/empty.txt"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Added)
	assert.Empty(t, fix.cache.invalidated)
}

func TestIngestService_TotalCountsWholeNotebook(t *testing.T) {
	ctx := context.Background()
	fix := newIngestFixture(t)

	fix.text.results["/d/a.txt"] = makeResult("a.txt", domain.SourceTypeText, "one")
	_, err := fix.svc.Ingest(ctx, "nb", []string{"/d/a.txt"}, nil)
	require.NoError(t, err)

	fix.text.results["/d/b.txt"] = makeResult("b.txt", domain.SourceTypeText, "two", "three")
	stats, err := fix.svc.Ingest(ctx, "nb", []string{"/d/b.txt"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Added)
	assert.Equal(t, 3, stats.Total, "total spans previous batches")
}
