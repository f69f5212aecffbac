package ranking

import (
	"sort"

	"github.com/inkpot-labs/inkpot/internal/analysis"
	"github.com/inkpot-labs/inkpot/internal/core/domain"
)

// Fusion weights. BM25 carries global term-importance-aware relevance
// but is brittle to segmentation errors in mixed-script text; Jaccard
// term overlap is a segmentation-robust coarse signal; trigram overlap
// recovers partial credit for typos and unsegmented compounds. The
// weights were tuned empirically and are part of the ranking contract.
const (
	weightBM25    = 0.60
	weightJaccard = 0.25
	weightTrigram = 0.15
)

// HybridIndex is an ephemeral, read-only ranking structure built from
// the enabled chunks of one notebook. It is rebuilt whole on any
// corpus change, never updated incrementally.
type HybridIndex struct {
	chunks   []domain.Chunk
	tokens   [][]string
	trigrams [][]string
	bm25     *BM25
}

// NewHybridIndex builds an index over the given chunks. Chunks marked
// disabled are excluded up front; a disabled chunk is never ranked.
func NewHybridIndex(chunks []domain.Chunk) *HybridIndex {
	idx := &HybridIndex{}
	for _, c := range chunks {
		if !c.Enabled {
			continue
		}
		idx.chunks = append(idx.chunks, c)
		idx.tokens = append(idx.tokens, analysis.Tokenize(c.Text))
		idx.trigrams = append(idx.trigrams, analysis.CharTrigrams(c.Text))
	}
	idx.bm25 = NewBM25(idx.tokens)
	return idx
}

// Len returns the number of indexed chunks.
func (idx *HybridIndex) Len() int {
	return len(idx.chunks)
}

// Search scores the query against every indexed chunk and returns the
// top-k hits ordered by fused score, descending. The sort is stable:
// ties keep corpus order, so repeated searches return identical
// results. An empty corpus or topK <= 0 yields no hits.
func (idx *HybridIndex) Search(query string, topK int) []domain.Hit {
	if len(idx.chunks) == 0 || topK <= 0 {
		return nil
	}

	qTokens := analysis.Tokenize(query)
	qTrigrams := analysis.CharTrigrams(query)

	bmScores := minMaxNorm(idx.bm25.Scores(qTokens))

	hits := make([]domain.Hit, len(idx.chunks))
	for i, c := range idx.chunks {
		fused := weightBM25*bmScores[i] +
			weightJaccard*jaccard(qTokens, idx.tokens[i]) +
			weightTrigram*trigramOverlap(qTrigrams, idx.trigrams[i])
		hits[i] = domain.Hit{Chunk: c, Score: fused}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})
	if topK < len(hits) {
		hits = hits[:topK]
	}
	return hits
}

// jaccard is set-intersection-over-union of the two term sequences.
// Multiplicity is ignored. Empty sets score zero.
func jaccard(a, b []string) float64 {
	sa, sb := toSet(a), toSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	inter := 0
	for t := range sa {
		if _, ok := sb[t]; ok {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// trigramOverlap is intersection size over the larger set size.
// Empty sets score zero.
func trigramOverlap(a, b []string) float64 {
	sa, sb := toSet(a), toSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	inter := 0
	for t := range sa {
		if _, ok := sb[t]; ok {
			inter++
		}
	}
	max := len(sa)
	if len(sb) > max {
		max = len(sb)
	}
	return float64(inter) / float64(max)
}

func toSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	return set
}

// Index is the lexical-only degraded variant: the same BM25 pipeline
// without fusion and without enablement filtering. Callers are
// responsible for filtering disabled chunks in this mode.
type Index struct {
	chunks []domain.Chunk
	bm25   *BM25
}

// NewIndex builds a plain BM25 index over the given chunks.
func NewIndex(chunks []domain.Chunk) *Index {
	tokens := make([][]string, len(chunks))
	for i, c := range chunks {
		tokens[i] = analysis.Tokenize(c.Text)
	}
	return &Index{chunks: chunks, bm25: NewBM25(tokens)}
}

// Search returns the top-k chunks by raw BM25 score, stable-sorted
// descending.
func (idx *Index) Search(query string, topK int) []domain.Hit {
	if len(idx.chunks) == 0 || topK <= 0 {
		return nil
	}
	scores := idx.bm25.Scores(analysis.Tokenize(query))
	hits := make([]domain.Hit, len(idx.chunks))
	for i, c := range idx.chunks {
		hits[i] = domain.Hit{Chunk: c, Score: scores[i]}
	}
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})
	if topK < len(hits) {
		hits = hits[:topK]
	}
	return hits
}
