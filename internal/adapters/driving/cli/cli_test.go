package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driving"
)

type fakeNotebooks struct {
	created  []string
	notebook *domain.Notebook
	list     []domain.Notebook
	deleted  []string
}

func (f *fakeNotebooks) Create(_ context.Context, title string) (*domain.Notebook, error) {
	f.created = append(f.created, title)
	if f.notebook != nil {
		return f.notebook, nil
	}
	return &domain.Notebook{ID: "nb-id", Title: title, CreatedAt: time.Now()}, nil
}

func (f *fakeNotebooks) List(context.Context) ([]domain.Notebook, error) {
	return f.list, nil
}

func (f *fakeNotebooks) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeSources struct {
	list    []domain.Source
	enabled map[string]bool
	deleted []string
}

func (f *fakeSources) List(context.Context, string) ([]domain.Source, error) {
	return f.list, nil
}

func (f *fakeSources) SetEnabled(_ context.Context, _, sourceID string, enabled bool) error {
	if f.enabled == nil {
		f.enabled = map[string]bool{}
	}
	f.enabled[sourceID] = enabled
	return nil
}

func (f *fakeSources) Delete(_ context.Context, _, sourceID string) error {
	f.deleted = append(f.deleted, sourceID)
	return nil
}

type fakeIngest struct {
	stats *driving.IngestStats
	files []string
	urls  []string
}

func (f *fakeIngest) Ingest(_ context.Context, _ string, filePaths, urls []string) (*driving.IngestStats, error) {
	f.files = filePaths
	f.urls = urls
	return f.stats, nil
}

type fakeQuery struct {
	hits   []domain.Hit
	answer *domain.Answer
}

func (f *fakeQuery) Search(context.Context, string, string, int) ([]domain.Hit, error) {
	return f.hits, nil
}

func (f *fakeQuery) Ask(context.Context, string, string, int) (*domain.Answer, error) {
	return f.answer, nil
}

func (f *fakeQuery) Invalidate(string) {}

// execute runs the root command against fake services and returns the
// captured output.
func execute(t *testing.T, services Services, args ...string) (string, error) {
	t.Helper()

	SetServices(services)
	t.Cleanup(func() { SetServices(Services{}) })

	// Flag variables are package globals; reset them between runs.
	ingestFiles = nil
	ingestURLs = nil
	askTopK = 5
	askJSON = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, Services{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "inkpot version")
}

func TestNotebookCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range notebookCmd.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Contains(t, names, "create")
	assert.Contains(t, names, "list")
	assert.Contains(t, names, "delete")
}

func TestNotebookCreateCmd(t *testing.T) {
	notebooks := &fakeNotebooks{}
	out, err := execute(t, Services{Notebooks: notebooks}, "notebook", "create", "Field", "Notes")
	require.NoError(t, err)

	assert.Equal(t, []string{"Field Notes"}, notebooks.created, "multi-word titles are joined")
	assert.Contains(t, out, "Field Notes")
	assert.Contains(t, out, "nb-id")
}

func TestNotebookCreateCmd_NoService(t *testing.T) {
	_, err := execute(t, Services{}, "notebook", "create", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestNotebookListCmd_Empty(t *testing.T) {
	out, err := execute(t, Services{Notebooks: &fakeNotebooks{}}, "notebook", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No notebooks yet")
}

func TestSourceListCmd(t *testing.T) {
	sources := &fakeSources{list: []domain.Source{{
		ID: "manual.pdf", Type: domain.SourceTypePDF, ChunkCount: 12, Enabled: false,
	}}}
	out, err := execute(t, Services{Sources: sources}, "source", "list", "nb")
	require.NoError(t, err)

	assert.Contains(t, out, "manual.pdf")
	assert.Contains(t, out, "12 chunks")
	assert.Contains(t, out, "disabled")
}

func TestSourceEnableDisableCmds(t *testing.T) {
	sources := &fakeSources{}
	_, err := execute(t, Services{Sources: sources}, "source", "disable", "nb", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, false, sources.enabled["a.txt"])

	_, err = execute(t, Services{Sources: sources}, "source", "enable", "nb", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, true, sources.enabled["a.txt"])
}

func TestIngestCmd(t *testing.T) {
	ingest := &fakeIngest{stats: &driving.IngestStats{
		Added: 7, Total: 20, Failed: []string{"https://down.example.com"},
	}}
	out, err := execute(t, Services{Ingest: ingest},
		"ingest", "nb", "--file", "/d/a.txt", "--url", "https://e.com")
	require.NoError(t, err)

	assert.Equal(t, []string{"/d/a.txt"}, ingest.files)
	assert.Equal(t, []string{"https://e.com"}, ingest.urls)
	assert.Contains(t, out, "Added 7 chunks (20 total in notebook)")
	assert.Contains(t, out, "failed: https://down.example.com")
}

func TestIngestCmd_NothingToIngest(t *testing.T) {
	_, err := execute(t, Services{Ingest: &fakeIngest{}}, "ingest", "nb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to ingest")
}

func TestAskCmd_RendersAnswerAndCitations(t *testing.T) {
	query := &fakeQuery{answer: &domain.Answer{
		Text: "Twelve kilowatts [1].",
		Citations: []domain.Citation{{
			Rank: 1, Score: 0.9123, SourceID: "manual.pdf",
			SourceType: domain.SourceTypePDF, Location: "page 3",
		}},
	}}
	out, err := execute(t, Services{Query: query}, "ask", "nb", "how much power")
	require.NoError(t, err)

	assert.Contains(t, out, "Twelve kilowatts [1].")
	assert.Contains(t, out, "[1] manual.pdf, page 3 (0.9123)")
}

func TestAskCmd_JSON(t *testing.T) {
	query := &fakeQuery{answer: &domain.Answer{Text: "answer body"}}
	out, err := execute(t, Services{Query: query}, "ask", "nb", "q", "--json")
	require.NoError(t, err)

	assert.Contains(t, out, `"answer": "answer body"`)
	assert.Contains(t, out, `"citations"`)
}

func TestSearchCmd(t *testing.T) {
	query := &fakeQuery{hits: []domain.Hit{{
		Chunk: domain.Chunk{ID: "a.txt#0", Text: "first line\nsecond line"},
		Score: 0.5,
	}}}
	out, err := execute(t, Services{Query: query}, "search", "nb", "anything")
	require.NoError(t, err)

	assert.Contains(t, out, "[1] a.txt#0 (0.5000)")
	assert.Contains(t, out, "first line...")
	assert.NotContains(t, out, "second line")
}

func TestSearchCmd_NoResults(t *testing.T) {
	out, err := execute(t, Services{Query: &fakeQuery{}}, "search", "nb", "anything")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}
