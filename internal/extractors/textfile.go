package extractors

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
	"github.com/inkpot-labs/inkpot/internal/postprocessors/chunker"
)

// TextExtractor reads a plain-text file into chunk records. Decoding
// is permissive: bytes that are not valid UTF-8 are dropped rather
// than failing the source.
type TextExtractor struct {
	proc *chunker.Processor
}

func NewTextExtractor(proc *chunker.Processor) *TextExtractor {
	return &TextExtractor{proc: proc}
}

// Extract reads the whole file as one segment.
func (e *TextExtractor) Extract(_ context.Context, path, sourceID string) (*Result, error) {
	if sourceID == "" {
		sourceID = baseName(path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrExtraction, path, err)
	}

	col := newCollector(e.proc, sourceID, domain.SourceTypeText)
	col.add(strings.ToValidUTF8(string(raw), ""), "", "", path)
	return col.result, nil
}

// baseName is the default source identifier for file-backed sources.
func baseName(path string) string {
	return filepath.Base(path)
}
