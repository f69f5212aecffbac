//go:build cgo

// Package tesseract provides an OCR service backed by the Tesseract
// engine. The binding needs CGO; builds without it get a stub that
// reports itself unavailable, and the extraction pipeline skips its
// OCR steps.
package tesseract

import (
	"context"
	"fmt"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driven"
)

// Ensure OCRService implements the interface.
var _ driven.OCRService = (*OCRService)(nil)

// OCRService recognises text in images using Tesseract.
type OCRService struct {
	// mu serialises access; gosseract clients are not safe for
	// concurrent use.
	mu        sync.Mutex
	languages []string
}

// NewOCRService creates a new Tesseract OCR service. languages are
// Tesseract language codes; empty defaults to simplified Chinese plus
// English, matching the mixed-script corpora the tokenizer handles.
func NewOCRService(languages ...string) *OCRService {
	if len(languages) == 0 {
		languages = []string{"chi_sim", "eng"}
	}
	return &OCRService{languages: languages}
}

// Recognise returns the text found in the image bytes.
func (s *OCRService) Recognise(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrOCR, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(s.languages...); err != nil {
		return "", fmt.Errorf("%w: setting languages: %v", domain.ErrOCR, err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("%w: loading image: %v", domain.ErrOCR, err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrOCR, err)
	}
	return text, nil
}

// Available reports that the engine can be used.
func (s *OCRService) Available() bool {
	return true
}
