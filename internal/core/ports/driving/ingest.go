package driving

import "context"

// IngestStats summarises one ingestion batch.
type IngestStats struct {
	// Added is the number of chunks produced by this batch.
	Added int

	// Total is the notebook's chunk count after the batch.
	Total int

	// Failed lists source descriptors that produced zero chunks.
	Failed []string
}

// IngestService turns raw documents and URLs into persisted chunks.
type IngestService interface {
	// Ingest extracts, chunks and persists the given file paths and
	// URLs into a notebook. Ingestion is partial-failure tolerant:
	// a document whose extraction tiers are all exhausted contributes
	// zero chunks and is reported in Failed, it never aborts the batch.
	Ingest(ctx context.Context, notebookID string, filePaths, urls []string) (*IngestStats, error)
}
