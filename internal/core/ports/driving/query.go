package driving

import (
	"context"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
)

// QueryService answers natural-language questions against a notebook's
// enabled chunks.
type QueryService interface {
	// Search returns the ranked hits for a query without synthesis.
	// topK <= 0 and empty corpora yield empty results, never errors.
	Search(ctx context.Context, notebookID, query string, topK int) ([]domain.Hit, error)

	// Ask ranks the query and synthesises an answer with citations.
	// Synthesis failures degrade to chunk excerpts.
	Ask(ctx context.Context, notebookID, query string, topK int) (*domain.Answer, error)

	// Invalidate drops the cached ranking index for a notebook.
	// Called after any mutation of its chunk set or enablement.
	Invalidate(notebookID string)
}
