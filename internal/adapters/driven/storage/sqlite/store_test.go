package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedNotebook(t *testing.T, store *Store, id string) {
	t.Helper()
	require.NoError(t, store.NotebookStore().SaveNotebook(context.Background(), &domain.Notebook{
		ID: id, Title: "notebook " + id, CreatedAt: time.Now().UTC(),
	}))
}

func seedSource(t *testing.T, store *Store, notebookID, sourceID string) {
	t.Helper()
	require.NoError(t, store.SourceStore().SaveSource(context.Background(), &domain.Source{
		ID: sourceID, NotebookID: notebookID, Type: domain.SourceTypeText,
		Path: "/d/" + sourceID, Enabled: true, CreatedAt: time.Now().UTC(),
	}))
}

func seedChunks(t *testing.T, store *Store, notebookID, sourceID string, texts ...string) {
	t.Helper()
	var batch []domain.Chunk
	for i, text := range texts {
		batch = append(batch, domain.Chunk{
			ID:         domain.ChunkID(sourceID, i),
			Text:       text,
			SourceID:   sourceID,
			SourceType: domain.SourceTypeText,
			Enabled:    true,
		})
	}
	require.NoError(t, store.ChunkStore().SaveChunks(context.Background(), notebookID, batch))
}

func TestStore_MigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	seedNotebook(t, store, "nb")
	require.NoError(t, store.Close())

	// Reopening the same file must not rerun applied migrations or
	// lose data.
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	nb, err := store.NotebookStore().GetNotebook(context.Background(), "nb")
	require.NoError(t, err)
	assert.Equal(t, "notebook nb", nb.Title)
}

func TestNotebookStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	notebooks := store.NotebookStore()

	older := &domain.Notebook{ID: "n1", Title: "first", CreatedAt: time.Now().UTC().Add(-time.Hour)}
	newer := &domain.Notebook{ID: "n2", Title: "second", CreatedAt: time.Now().UTC()}
	require.NoError(t, notebooks.SaveNotebook(ctx, older))
	require.NoError(t, notebooks.SaveNotebook(ctx, newer))

	require.ErrorIs(t, notebooks.SaveNotebook(ctx, older), domain.ErrAlreadyExists)

	got, err := notebooks.GetNotebook(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)

	_, err = notebooks.GetNotebook(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)

	listed, err := notebooks.ListNotebooks(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "n2", listed[0].ID, "newest first")

	require.NoError(t, notebooks.DeleteNotebook(ctx, "n1"))
	require.ErrorIs(t, notebooks.DeleteNotebook(ctx, "n1"), domain.ErrNotFound)
}

func TestSourceStore_FirstIngestionWins(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedNotebook(t, store, "nb")

	first := &domain.Source{
		ID: "a.txt", NotebookID: "nb", Type: domain.SourceTypeText,
		Path: "/original/a.txt", Enabled: true, CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.SourceStore().SaveSource(ctx, first))

	second := *first
	second.Path = "/other/a.txt"
	require.NoError(t, store.SourceStore().SaveSource(ctx, &second))

	listed, err := store.SourceStore().ListSources(ctx, "nb")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "/original/a.txt", listed[0].Path)
}

func TestSourceStore_ListPopulatesChunkCounts(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedNotebook(t, store, "nb")
	seedSource(t, store, "nb", "a.txt")
	seedSource(t, store, "nb", "b.txt")
	seedChunks(t, store, "nb", "a.txt", "one", "two", "three")

	listed, err := store.SourceStore().ListSources(ctx, "nb")
	require.NoError(t, err)
	require.Len(t, listed, 2)

	counts := map[string]int{}
	for _, src := range listed {
		counts[src.ID] = src.ChunkCount
	}
	assert.Equal(t, 3, counts["a.txt"])
	assert.Equal(t, 0, counts["b.txt"])
}

func TestSourceStore_SetEnabled(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedNotebook(t, store, "nb")
	seedSource(t, store, "nb", "a.txt")
	seedChunks(t, store, "nb", "a.txt", "body")

	require.NoError(t, store.SourceStore().SetEnabled(ctx, "nb", "a.txt", false))

	loaded, err := store.ChunkStore().LoadEnabledChunks(ctx, "nb")
	require.NoError(t, err)
	assert.Empty(t, loaded, "disabled source's chunks drop out of the corpus")

	n, err := store.ChunkStore().CountChunks(ctx, "nb")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "count ignores enablement")

	require.ErrorIs(t, store.SourceStore().SetEnabled(ctx, "nb", "ghost", true), domain.ErrNotFound)
}

func TestSourceStore_DeleteCascadesToChunks(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedNotebook(t, store, "nb")
	seedSource(t, store, "nb", "a.txt")
	seedSource(t, store, "nb", "b.txt")
	seedChunks(t, store, "nb", "a.txt", "one")
	seedChunks(t, store, "nb", "b.txt", "two")

	require.NoError(t, store.SourceStore().DeleteSource(ctx, "nb", "a.txt"))
	require.ErrorIs(t, store.SourceStore().DeleteSource(ctx, "nb", "a.txt"), domain.ErrNotFound)

	loaded, err := store.ChunkStore().LoadEnabledChunks(ctx, "nb")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "b.txt", loaded[0].SourceID)
}

func TestChunkStore_OrderAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedNotebook(t, store, "nb")
	seedSource(t, store, "nb", "doc.pdf")

	batch := []domain.Chunk{
		{
			ID: "doc.pdf#0", Text: "first page text", SourceID: "doc.pdf",
			SourceType: domain.SourceTypePDF, Location: "page 1",
			Path: "/d/doc.pdf", Enabled: true,
		},
		{
			ID: "doc.pdf#1", Text: "second page text", SourceID: "doc.pdf",
			SourceType: domain.SourceTypePDF, Location: "page 2",
			Path: "/d/doc.pdf", Enabled: true,
		},
	}
	require.NoError(t, store.ChunkStore().SaveChunks(ctx, "nb", batch))

	loaded, err := store.ChunkStore().LoadEnabledChunks(ctx, "nb")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, batch[0], loaded[0], "insertion order and fields survive the round trip")
	assert.Equal(t, batch[1], loaded[1])
}

func TestChunkStore_ReplaceKeepsPosition(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedNotebook(t, store, "nb")
	seedSource(t, store, "nb", "a.txt")
	seedChunks(t, store, "nb", "a.txt", "original zero", "original one")

	replacement := domain.Chunk{
		ID: "a.txt#0", Text: "replaced zero", SourceID: "a.txt",
		SourceType: domain.SourceTypeText, Enabled: true,
	}
	require.NoError(t, store.ChunkStore().SaveChunks(ctx, "nb", []domain.Chunk{replacement}))

	loaded, err := store.ChunkStore().LoadEnabledChunks(ctx, "nb")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "replaced zero", loaded[0].Text, "replaced chunk keeps its corpus position")
	assert.Equal(t, "original one", loaded[1].Text)
}

func TestNotebookDelete_CascadesAll(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedNotebook(t, store, "nb")
	seedSource(t, store, "nb", "a.txt")
	seedChunks(t, store, "nb", "a.txt", "body")

	require.NoError(t, store.NotebookStore().DeleteNotebook(ctx, "nb"))

	sources, err := store.SourceStore().ListSources(ctx, "nb")
	require.NoError(t, err)
	assert.Empty(t, sources)

	n, err := store.ChunkStore().CountChunks(ctx, "nb")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
