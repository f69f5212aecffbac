package driving

import (
	"context"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
)

// SourceService manages the sources of a notebook.
type SourceService interface {
	// List returns a notebook's sources with chunk counts.
	List(ctx context.Context, notebookID string) ([]domain.Source, error)

	// SetEnabled enables or disables a source. Disabled sources keep
	// their chunks but drop out of ranking on the next index build.
	SetEnabled(ctx context.Context, notebookID, sourceID string, enabled bool) error

	// Delete removes a source and its chunks.
	Delete(ctx context.Context, notebookID, sourceID string) error
}
