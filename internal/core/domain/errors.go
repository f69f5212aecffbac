package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates no LLM service is configured.
	// Answer synthesis degrades to excerpt summaries without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)

// Extraction errors. All of them are recoverable at the tier or page
// they occur in: the pipeline logs them and degrades to the best text
// obtained so far, it never fails a whole ingestion batch over them.
var (
	// ErrFetch indicates a network or HTTP failure on the static tier.
	ErrFetch = errors.New("fetch failed")

	// ErrRender indicates a headless render timeout or crash.
	ErrRender = errors.New("render failed")

	// ErrExtraction indicates a malformed document or unreadable page.
	ErrExtraction = errors.New("extraction failed")

	// ErrOCR indicates the recognition engine failed on one image.
	ErrOCR = errors.New("ocr failed")
)
