package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpot-labs/inkpot/internal/adapters/driven/storage/memory"
	"github.com/inkpot-labs/inkpot/internal/core/domain"
)

type sourceFixture struct {
	sources *memory.SourceStore
	chunks  *memory.ChunkStore
	cache   *fakeCache
	svc     *SourceService
}

func newSourceFixture(t *testing.T) *sourceFixture {
	t.Helper()
	ctx := context.Background()

	sources := memory.NewSourceStore()
	chunks := memory.NewChunkStore(sources)
	sources.Bind(chunks)
	notebooks := memory.NewNotebookStore(sources, chunks)
	require.NoError(t, notebooks.SaveNotebook(ctx, &domain.Notebook{
		ID: "nb", Title: "test", CreatedAt: time.Now(),
	}))
	require.NoError(t, sources.SaveSource(ctx, &domain.Source{
		ID: "a.txt", NotebookID: "nb", Type: domain.SourceTypeText, Enabled: true,
	}))
	require.NoError(t, chunks.SaveChunks(ctx, "nb", []domain.Chunk{{
		ID: "a.txt#0", Text: "body", SourceID: "a.txt",
		SourceType: domain.SourceTypeText, Enabled: true,
	}}))

	cache := &fakeCache{}
	return &sourceFixture{
		sources: sources,
		chunks:  chunks,
		cache:   cache,
		svc:     NewSourceService(notebooks, sources, cache),
	}
}

func TestSourceService_List(t *testing.T) {
	fix := newSourceFixture(t)

	listed, err := fix.svc.List(context.Background(), "nb")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "a.txt", listed[0].ID)
	assert.Equal(t, 1, listed[0].ChunkCount)
}

func TestSourceService_ListUnknownNotebook(t *testing.T) {
	fix := newSourceFixture(t)
	_, err := fix.svc.List(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSourceService_SetEnabledInvalidates(t *testing.T) {
	ctx := context.Background()
	fix := newSourceFixture(t)

	require.NoError(t, fix.svc.SetEnabled(ctx, "nb", "a.txt", false))
	assert.Equal(t, []string{"nb"}, fix.cache.invalidated)

	loaded, err := fix.chunks.LoadEnabledChunks(ctx, "nb")
	require.NoError(t, err)
	assert.Empty(t, loaded, "disabled source drops out of the corpus")

	err = fix.svc.SetEnabled(ctx, "nb", "ghost", false)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, fix.cache.invalidated, 1, "failed flip does not invalidate")
}

func TestSourceService_DeleteInvalidates(t *testing.T) {
	ctx := context.Background()
	fix := newSourceFixture(t)

	require.NoError(t, fix.svc.Delete(ctx, "nb", "a.txt"))
	assert.Equal(t, []string{"nb"}, fix.cache.invalidated)

	n, err := fix.chunks.CountChunks(ctx, "nb")
	require.NoError(t, err)
	assert.Equal(t, 0, n, "chunks cascade with the source")

	err = fix.svc.Delete(ctx, "nb", "a.txt")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
