package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driven"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driving"
	"github.com/inkpot-labs/inkpot/internal/logger"
	"github.com/inkpot-labs/inkpot/internal/ranking"
)

// answerExcerptChars bounds the per-chunk excerpt in degraded answers.
const answerExcerptChars = 200

// noHitsAnswer is returned when ranking finds nothing relevant.
const noHitsAnswer = "No relevant content found in this notebook's sources."

const synthesisSystemPrompt = "You are a careful assistant answering questions " +
	"from a personal notebook. Use only the numbered excerpts provided; do not " +
	"bring in outside knowledge. Cite the excerpts you used as [n]. If the " +
	"excerpts do not contain the answer, say so."

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService ranks queries against per-notebook hybrid indexes and
// synthesises answers. Indexes are built lazily from the enabled chunk
// corpus and cached until invalidated by a mutation.
type QueryService struct {
	notebookStore driven.NotebookStore
	chunkStore    driven.ChunkStore
	llm           driven.LLMService

	mu      sync.RWMutex
	indexes map[string]*ranking.HybridIndex
}

// NewQueryService creates a new query service. llm may be nil; answers
// then degrade to chunk excerpts.
func NewQueryService(
	notebookStore driven.NotebookStore,
	chunkStore driven.ChunkStore,
	llm driven.LLMService,
) *QueryService {
	return &QueryService{
		notebookStore: notebookStore,
		chunkStore:    chunkStore,
		llm:           llm,
		indexes:       make(map[string]*ranking.HybridIndex),
	}
}

// Search returns the ranked hits for a query.
func (s *QueryService) Search(ctx context.Context, notebookID, query string, topK int) ([]domain.Hit, error) {
	if _, err := s.notebookStore.GetNotebook(ctx, notebookID); err != nil {
		return nil, err
	}
	idx, err := s.index(ctx, notebookID)
	if err != nil {
		return nil, err
	}
	return idx.Search(query, topK), nil
}

// Ask ranks the query and synthesises an answer with citations into
// the ranked chunks. Synthesis failure is never fatal; the answer
// degrades to the top excerpts.
func (s *QueryService) Ask(ctx context.Context, notebookID, query string, topK int) (*domain.Answer, error) {
	hits, err := s.Search(ctx, notebookID, query, topK)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return &domain.Answer{Text: noHitsAnswer}, nil
	}

	answer := &domain.Answer{Citations: citations(hits)}
	if s.llm == nil {
		answer.Text = excerptAnswer(hits)
		return answer, nil
	}

	text, err := s.synthesise(ctx, query, hits)
	if err != nil {
		logger.Warn("query: synthesis failed, degrading to excerpts: %v", err)
		text = excerptAnswer(hits)
	}
	answer.Text = text
	return answer, nil
}

// Invalidate drops the cached index for a notebook. The next query
// rebuilds it from the stored enabled corpus.
func (s *QueryService) Invalidate(notebookID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.indexes, notebookID)
}

// index returns the cached index for the notebook, building it when
// absent. Builds happen outside the lock; on a race the last build
// wins, which is harmless because both saw the same corpus.
func (s *QueryService) index(ctx context.Context, notebookID string) (*ranking.HybridIndex, error) {
	s.mu.RLock()
	idx, ok := s.indexes[notebookID]
	s.mu.RUnlock()
	if ok {
		return idx, nil
	}

	chunks, err := s.chunkStore.LoadEnabledChunks(ctx, notebookID)
	if err != nil {
		return nil, fmt.Errorf("loading corpus for %s: %w", notebookID, err)
	}
	idx = ranking.NewHybridIndex(chunks)
	logger.Debug("query: built index for %s over %d chunks", notebookID, idx.Len())

	s.mu.Lock()
	s.indexes[notebookID] = idx
	s.mu.Unlock()
	return idx, nil
}

// synthesise asks the LLM for an answer grounded on the ranked chunks.
func (s *QueryService) synthesise(ctx context.Context, query string, hits []domain.Hit) (string, error) {
	var b strings.Builder
	for i, h := range hits {
		fmt.Fprintf(&b, "[%d] %s\n\n", i+1, h.Chunk.Text)
	}
	user := fmt.Sprintf("Excerpts:\n\n%sQuestion: %s", b.String(), query)

	reply, err := s.llm.Chat(ctx, []driven.ChatMessage{
		{Role: "system", Content: synthesisSystemPrompt},
		{Role: "user", Content: user},
	})
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", fmt.Errorf("empty completion: %w", domain.ErrLLMUnavailable)
	}
	return reply, nil
}

// citations maps hits to citation records in rank order.
func citations(hits []domain.Hit) []domain.Citation {
	out := make([]domain.Citation, len(hits))
	for i, h := range hits {
		out[i] = domain.Citation{
			Rank:       i + 1,
			Score:      roundScore(h.Score),
			SourceID:   h.Chunk.SourceID,
			SourceType: h.Chunk.SourceType,
			Location:   h.Chunk.Location,
			URL:        h.Chunk.URL,
			Path:       h.Chunk.Path,
		}
	}
	return out
}

// excerptAnswer is the degraded answer used when no LLM is configured
// or synthesis fails: the top chunks, truncated, in rank order.
func excerptAnswer(hits []domain.Hit) string {
	var b strings.Builder
	b.WriteString("Answer synthesis is unavailable. The most relevant excerpts are:\n")
	for i, h := range hits {
		fmt.Fprintf(&b, "\n[%d] %s", i+1, truncateRunes(h.Chunk.Text, answerExcerptChars))
	}
	return b.String()
}

// roundScore rounds to four decimal places for presentation.
func roundScore(s float64) float64 {
	return math.Round(s*10000) / 10000
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
