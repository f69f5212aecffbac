package extractors

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driven"
	"github.com/inkpot-labs/inkpot/internal/logger"
	"github.com/inkpot-labs/inkpot/internal/postprocessors/chunker"
)

// minPageText is the character threshold below which a page is treated
// as having no usable text layer and the whole page is rasterised for
// OCR. Covers vector-drawn text and pure scans with no image objects.
const minPageText = 50

// rasterDPI is the render resolution for the whole-page OCR fallback.
const rasterDPI = 300

// Rasterizer renders a single PDF page to an image for OCR.
// Implementations may be unavailable in some builds (the renderer
// needs cgo); extraction then skips the raster fallback.
type Rasterizer interface {
	// RasterizePage renders the 1-indexed page at the given DPI and
	// returns encoded image bytes.
	RasterizePage(path string, page int, dpi float64) ([]byte, error)

	// Available reports whether rendering can be used in this build.
	Available() bool
}

// pdfDocument is the per-page view of an open PDF.
type pdfDocument interface {
	// NumPages returns the page count.
	NumPages() int

	// PageText extracts the embedded text layer of the 1-indexed page.
	PageText(page int) (string, error)

	// PageImages returns the raw bytes of each embedded raster image
	// on the 1-indexed page.
	PageImages(page int) ([][]byte, error)

	// Close releases the underlying file.
	Close() error
}

// PDFExtractor produces text from a PDF page by page: the embedded
// text layer first, OCR over embedded images second, and a full-page
// raster OCR as the last resort for pages with no extractable text.
type PDFExtractor struct {
	ocr    driven.OCRService
	raster Rasterizer
	proc   *chunker.Processor

	// open is swapped in tests for a fake document.
	open func(path string) (pdfDocument, error)
}

// NewPDFExtractor creates a PDF extractor. ocr and raster may be nil;
// the corresponding fallback steps are then skipped.
func NewPDFExtractor(ocr driven.OCRService, raster Rasterizer, proc *chunker.Processor) *PDFExtractor {
	return &PDFExtractor{
		ocr:    ocr,
		raster: raster,
		proc:   proc,
		open:   openPDFDocument,
	}
}

// Extract reads the PDF into chunk records, one collector pass over
// all pages so chunk ordinals run document-wide. A failing page is
// logged and skipped; it never aborts the document.
func (e *PDFExtractor) Extract(ctx context.Context, path, sourceID string) (*Result, error) {
	if sourceID == "" {
		sourceID = baseName(path)
	}

	doc, err := e.open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", domain.ErrExtraction, path, err)
	}
	defer doc.Close()

	col := newCollector(e.proc, sourceID, domain.SourceTypePDF)
	for page := 1; page <= doc.NumPages(); page++ {
		text := e.extractPage(ctx, doc, path, page)
		if strings.TrimSpace(text) == "" {
			// Nothing extractable after all three steps: the page
			// contributes zero chunks.
			continue
		}
		col.add(text, fmt.Sprintf("page %d", page), "", path)
	}
	return col.result, nil
}

// extractPage runs the three per-page steps and returns the
// accumulated text. OCR output is appended to the text layer without
// overlap detection; duplicated content when both are present is
// accepted, not deduplicated.
func (e *PDFExtractor) extractPage(ctx context.Context, doc pdfDocument, path string, page int) string {
	text, err := doc.PageText(page)
	if err != nil {
		logger.Warn("pdf: reading text layer of %s page %d: %v", path, page, err)
		text = ""
	}

	if e.ocrUsable() {
		images, err := doc.PageImages(page)
		if err != nil {
			logger.Warn("pdf: listing images of %s page %d: %v", path, page, err)
		}
		for _, img := range images {
			recognised, err := e.ocr.Recognise(ctx, img)
			if err != nil {
				logger.Warn("pdf: ocr on embedded image of %s page %d: %v", path, page, err)
				continue
			}
			text = appendText(text, recognised)
		}
	}

	if runeLen(strings.TrimSpace(text)) < minPageText {
		text = appendText(text, e.rasterOCR(ctx, path, page))
	}
	return text
}

// rasterOCR renders the whole page and recognises it. Any failure
// degrades to empty text.
func (e *PDFExtractor) rasterOCR(ctx context.Context, path string, page int) string {
	if !e.ocrUsable() || e.raster == nil || !e.raster.Available() {
		return ""
	}
	img, err := e.raster.RasterizePage(path, page, rasterDPI)
	if err != nil {
		logger.Warn("pdf: rasterising %s page %d: %v", path, page, err)
		return ""
	}
	recognised, err := e.ocr.Recognise(ctx, img)
	if err != nil {
		logger.Warn("pdf: ocr on rendered %s page %d: %v", path, page, err)
		return ""
	}
	return recognised
}

func (e *PDFExtractor) ocrUsable() bool {
	return e.ocr != nil && e.ocr.Available()
}

// appendText concatenates recognised text onto the page text with a
// newline separator, skipping empties.
func appendText(text, extra string) string {
	extra = strings.TrimSpace(extra)
	if extra == "" {
		return text
	}
	if text == "" {
		return extra
	}
	return text + "\n" + extra
}
