// Package analysis turns text into the term and trigram sequences
// consumed by the ranking engine.
//
// Tokenisation handles mixed Latin/CJK text: CJK runs are segmented
// with a dictionary segmenter into meaningful word units, while
// Latin/alphanumeric runs are extracted as maximal [A-Za-z0-9]+ runs.
// Character trigrams provide a word-boundary-independent signal for
// fuzzy matching.
package analysis

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-ego/gse"

	"github.com/inkpot-labs/inkpot/internal/logger"
)

var latinRuns = regexp.MustCompile(`[A-Za-z0-9]+`)

var (
	segOnce sync.Once
	seg     gse.Segmenter
)

// segmenter returns the shared CJK segmenter, loading its dictionary
// on first use. Dictionary loading is expensive, so it happens once
// per process.
func segmenter() *gse.Segmenter {
	segOnce.Do(func() {
		if err := seg.LoadDict(); err != nil {
			logger.Warn("analysis: loading segmenter dictionary: %v", err)
		}
	})
	return &seg
}

// Tokenize splits text into lowercase terms with bigram augmentation
// enabled. See TokenizeWithBigrams.
func Tokenize(text string) []string {
	return TokenizeWithBigrams(text, true)
}

// TokenizeWithBigrams splits text into an ordered sequence of lowercase
// terms: the segmenter's word units first, then the Latin/alphanumeric
// runs. Latin words therefore appear via both passes; the resulting
// term-frequency boost is part of the ranking behaviour and must not
// be "fixed".
//
// When addBigrams is true, adjacent-term bigrams ("a_b") are appended
// after the base terms. Bigrams bias BM25 toward exact short-phrase
// matches without a separate phrase index.
func TokenizeWithBigrams(text string, addBigrams bool) []string {
	var tokens []string

	for _, t := range segmenter().Cut(text, true) {
		if strings.TrimSpace(t) == "" {
			continue
		}
		tokens = append(tokens, strings.ToLower(t))
	}
	for _, t := range latinRuns.FindAllString(text, -1) {
		tokens = append(tokens, strings.ToLower(t))
	}

	if addBigrams {
		tokens = append(tokens, bigrams(tokens)...)
	}
	return tokens
}

// bigrams joins each adjacent term pair with an underscore.
func bigrams(tokens []string) []string {
	if len(tokens) < 2 {
		return nil
	}
	grams := make([]string, 0, len(tokens)-1)
	for i := 0; i+1 < len(tokens); i++ {
		grams = append(grams, tokens[i]+"_"+tokens[i+1])
	}
	return grams
}
