// Package ranking builds ephemeral in-memory indexes over chunk
// corpora and scores queries against them. The hybrid index fuses
// three lexical signals (BM25, Jaccard term overlap, character trigram
// overlap) into one ordered result set; a plain BM25 index serves the
// degraded single-signal mode.
package ranking

import "math"

// Okapi BM25 parameters. The scoring must stay compatible with the
// classic Okapi formulation (including the epsilon floor applied to
// negative IDF values), so these are fixed.
const (
	bm25K1      = 1.5
	bm25B       = 0.75
	bm25Epsilon = 0.25
)

// BM25 is an Okapi BM25 scorer over a tokenised corpus.
// It is immutable after construction.
type BM25 struct {
	docFreqs  []map[string]int
	idf       map[string]float64
	docLens   []int
	avgDocLen float64
}

// NewBM25 builds the scorer from per-document term sequences.
func NewBM25(corpus [][]string) *BM25 {
	b := &BM25{
		docFreqs: make([]map[string]int, 0, len(corpus)),
		idf:      make(map[string]float64),
	}

	df := make(map[string]int)
	totalLen := 0
	for _, doc := range corpus {
		freqs := make(map[string]int, len(doc))
		for _, term := range doc {
			freqs[term]++
		}
		b.docFreqs = append(b.docFreqs, freqs)
		b.docLens = append(b.docLens, len(doc))
		totalLen += len(doc)
		for term := range freqs {
			df[term]++
		}
	}
	if len(corpus) > 0 {
		b.avgDocLen = float64(totalLen) / float64(len(corpus))
	}

	// IDF can go negative for terms present in more than half the
	// corpus; those are floored at epsilon times the average IDF.
	n := float64(len(corpus))
	var idfSum float64
	var negative []string
	for term, freq := range df {
		idf := math.Log(n-float64(freq)+0.5) - math.Log(float64(freq)+0.5)
		b.idf[term] = idf
		idfSum += idf
		if idf < 0 {
			negative = append(negative, term)
		}
	}
	if len(b.idf) > 0 {
		eps := bm25Epsilon * idfSum / float64(len(b.idf))
		for _, term := range negative {
			b.idf[term] = eps
		}
	}

	return b
}

// Scores returns the raw BM25 score of every document in the corpus
// against the query terms, in corpus order.
func (b *BM25) Scores(query []string) []float64 {
	scores := make([]float64, len(b.docFreqs))
	if b.avgDocLen == 0 {
		return scores
	}
	for _, term := range query {
		idf, ok := b.idf[term]
		if !ok {
			continue
		}
		for i, freqs := range b.docFreqs {
			f := float64(freqs[term])
			if f == 0 {
				continue
			}
			norm := 1 - bm25B + bm25B*float64(b.docLens[i])/b.avgDocLen
			scores[i] += idf * (f * (bm25K1 + 1) / (f + bm25K1*norm))
		}
	}
	return scores
}

// Len returns the corpus size.
func (b *BM25) Len() int {
	return len(b.docFreqs)
}

// minMaxNorm scales scores into [0,1]. A constant vector normalises to
// all ones, so an all-tie corpus does not zero out the BM25 signal.
func minMaxNorm(scores []float64) []float64 {
	if len(scores) == 0 {
		return scores
	}
	mn, mx := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < mn {
			mn = s
		}
		if s > mx {
			mx = s
		}
	}
	out := make([]float64, len(scores))
	if mx == mn {
		for i := range out {
			out[i] = 1.0
		}
		return out
	}
	for i, s := range scores {
		out[i] = (s - mn) / (mx - mn)
	}
	return out
}
