//go:build !cgo

// Package tesseract provides an OCR service backed by the Tesseract
// engine. This is the stub for builds without CGO.
package tesseract

import (
	"context"
	"fmt"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driven"
)

// Ensure OCRService implements the interface.
var _ driven.OCRService = (*OCRService)(nil)

// OCRService is the unavailable OCR service for non-CGO builds.
type OCRService struct{}

// NewOCRService creates the stub OCR service.
func NewOCRService(_ ...string) *OCRService {
	return &OCRService{}
}

// Recognise always fails; callers check Available first.
func (s *OCRService) Recognise(context.Context, []byte) (string, error) {
	return "", fmt.Errorf("%w: built without cgo", domain.ErrOCR)
}

// Available reports that the engine cannot be used in this build.
func (s *OCRService) Available() bool {
	return false
}
