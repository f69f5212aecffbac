package analysis

import (
	"regexp"
	"strings"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// CleanText collapses all whitespace runs to a single space and trims.
// All extracted text passes through here before chunking, so chunk
// text and trigram input share the same normal form.
func CleanText(text string) string {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(text, " "))
}

// CharTrigrams returns the ordered sequence of lowercase 3-character
// grams of the cleaned text. Grams are cut on rune boundaries so CJK
// text yields character grams rather than byte fragments. Input
// shorter than three runes yields an empty sequence.
func CharTrigrams(text string) []string {
	runes := []rune(CleanText(text))
	if len(runes) < 3 {
		return nil
	}
	grams := make([]string, 0, len(runes)-2)
	for i := 0; i+3 <= len(runes); i++ {
		grams = append(grams, strings.ToLower(string(runes[i:i+3])))
	}
	return grams
}
