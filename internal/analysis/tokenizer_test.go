package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_MixedScript(t *testing.T) {
	tokens := Tokenize("Hello 世界")

	assert.Contains(t, tokens, "hello")

	hasCJK := false
	for _, tok := range tokens {
		for _, r := range tok {
			if r >= 0x4E00 && r <= 0x9FFF {
				hasCJK = true
			}
		}
	}
	assert.True(t, hasCJK, "expected at least one CJK-derived term, got %v", tokens)
}

func TestTokenize_Lowercases(t *testing.T) {
	tokens := Tokenize("HTTP Server")

	assert.Contains(t, tokens, "http")
	assert.Contains(t, tokens, "server")
	assert.NotContains(t, tokens, "HTTP")
}

func TestTokenizeWithBigrams_Toggle(t *testing.T) {
	with := TokenizeWithBigrams("alpha beta", true)
	without := TokenizeWithBigrams("alpha beta", false)

	hasUnderscore := func(tokens []string) bool {
		for _, tok := range tokens {
			if strings.ContainsRune(tok, '_') {
				return true
			}
		}
		return false
	}

	assert.True(t, hasUnderscore(with), "bigram terms expected when enabled")
	assert.False(t, hasUnderscore(without), "no bigram terms expected when disabled")
	assert.Greater(t, len(with), len(without))
}

func TestTokenizeWithBigrams_JoinsAdjacent(t *testing.T) {
	tokens := TokenizeWithBigrams("alpha beta", true)
	assert.Contains(t, tokens, "alpha_beta")
}

func TestTokenize_Empty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a\n\nb\t c  "))
	assert.Equal(t, "", CleanText(" \n\t "))
}

func TestCharTrigrams_ShortInput(t *testing.T) {
	assert.Empty(t, CharTrigrams("ab"))
	assert.Empty(t, CharTrigrams(""))
}

func TestCharTrigrams_Basic(t *testing.T) {
	require.Equal(t, []string{"abc", "bcd"}, CharTrigrams("abcd"))
}

func TestCharTrigrams_NormalisesWhitespace(t *testing.T) {
	// "a  b" collapses to "a b" before gram extraction.
	assert.Equal(t, []string{"a b"}, CharTrigrams("a \n b"))
}

func TestCharTrigrams_RuneBoundaries(t *testing.T) {
	grams := CharTrigrams("世界很大")
	require.Len(t, grams, 2)
	assert.Equal(t, "世界很", grams[0])
	assert.Equal(t, "界很大", grams[1])
}
