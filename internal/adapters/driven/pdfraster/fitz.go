// Package pdfraster renders PDF pages to images for the OCR fallback,
// using MuPDF through go-fitz.
package pdfraster

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"

	"github.com/inkpot-labs/inkpot/internal/extractors"
)

// Ensure Rasterizer implements the interface.
var _ extractors.Rasterizer = (*Rasterizer)(nil)

// Rasterizer renders single PDF pages to PNG bytes.
type Rasterizer struct{}

// NewRasterizer creates a new MuPDF-backed rasterizer.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

// RasterizePage renders the 1-indexed page at the given DPI.
// The document is opened per call; page rendering is rare enough (only
// pages with no text layer) that caching open documents is not worth
// the lifetime management.
func (r *Rasterizer) RasterizePage(path string, page int, dpi float64) ([]byte, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer doc.Close()

	if page < 1 || page > doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range for %s", page, path)
	}

	// go-fitz pages are 0-indexed.
	img, err := doc.ImageDPI(page-1, dpi)
	if err != nil {
		return nil, fmt.Errorf("rendering %s page %d: %w", path, page, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding %s page %d: %w", path, page, err)
	}
	return buf.Bytes(), nil
}

// Available reports whether rendering can be used. go-fitz loads MuPDF
// dynamically, so the binding is present whenever the package builds.
func (r *Rasterizer) Available() bool {
	return true
}
