// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): persistence, web fetching and rendering,
// OCR, and LLM answer synthesis.
//
// The core never talks to SQLite, Chrome, Tesseract or an LLM API
// directly; it talks to these ports, which makes every pipeline stage
// testable with deterministic fakes.
package driven
