// Package chunker splits cleaned text into bounded, overlap-aware
// segments. Paragraphs are accumulated greedily up to the size limit;
// a paragraph that does not fit on its own is hard-sliced with a
// sliding window.
package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxChars is the default segment size limit in characters.
const DefaultMaxChars = 800

// DefaultOverlap is the default overlap between hard-sliced segments.
const DefaultOverlap = 120

var paragraphBreaks = regexp.MustCompile(`\n{2,}`)

// Processor splits text into bounded segments.
type Processor struct {
	maxChars int
	overlap  int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithMaxChars sets the segment size limit in characters.
func WithMaxChars(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxChars = n
		}
	}
}

// WithOverlap sets the overlap between hard-sliced segments in characters.
func WithOverlap(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.overlap = n
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		maxChars: DefaultMaxChars,
		overlap:  DefaultOverlap,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Split partitions text into ordered segments of at most maxChars
// characters each. Lengths are measured in runes, matching the
// character semantics the limits were tuned for.
//
// The input is split into paragraphs on blank-line boundaries (runs of
// two or more newlines); text without any boundary is one paragraph.
// Paragraphs are accumulated into a newline-joined buffer while the
// buffer stays within the limit; on overflow the buffer is flushed and
// the paragraph either starts a new buffer or, if it exceeds the limit
// by itself, is hard-sliced with stride maxChars-overlap (minimum 1).
//
// Split is lossless: every character of the input appears in some
// segment, overlap duplication aside.
func (p *Processor) Split(text string) []string {
	var paragraphs []string
	for _, para := range paragraphBreaks.Split(text, -1) {
		if trimmed := strings.TrimSpace(para); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	if len(paragraphs) == 0 {
		paragraphs = []string{text}
	}

	var chunks []string
	buf := ""
	for _, para := range paragraphs {
		if utf8.RuneCountInString(buf)+utf8.RuneCountInString(para)+1 <= p.maxChars {
			if buf == "" {
				buf = para
			} else {
				buf = strings.TrimSpace(buf + "\n" + para)
			}
			continue
		}

		if buf != "" {
			chunks = append(chunks, buf)
		}
		if utf8.RuneCountInString(para) <= p.maxChars {
			buf = para
			continue
		}

		stride := p.maxChars - p.overlap
		if stride < 1 {
			stride = 1
		}
		runes := []rune(para)
		for i := 0; i < len(runes); i += stride {
			end := i + p.maxChars
			if end > len(runes) {
				end = len(runes)
			}
			chunks = append(chunks, string(runes[i:end]))
		}
		buf = ""
	}
	if buf != "" {
		chunks = append(chunks, buf)
	}
	return chunks
}

// MaxChars returns the configured segment size limit.
func (p *Processor) MaxChars() int {
	return p.maxChars
}

// Overlap returns the configured overlap.
func (p *Processor) Overlap() int {
	return p.overlap
}
