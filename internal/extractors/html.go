package extractors

import (
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// flattenHTML strips all markup and returns the block text, one line
// per text node, the same shape a DOM get-text walk produces. Script,
// style and noscript subtrees are skipped.
func flattenHTML(raw string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(raw))

	var lines []string
	skipDepth := 0
	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return strings.Join(lines, "\n")
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if skippedTag(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if skippedTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			if text := strings.TrimSpace(string(tokenizer.Text())); text != "" {
				lines = append(lines, text)
			}
		}
	}
}

func skippedTag(name string) bool {
	switch name {
	case "script", "style", "noscript":
		return true
	}
	return false
}

// readabilityPass runs main-content extraction over the HTML and
// returns the flattened article text and the page title. An empty
// text return means the pass found no usable content and the caller
// should fall back to flattening the raw HTML.
func readabilityPass(rawHTML, pageURL string) (text, title string) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		parsed = &url.URL{}
	}
	article, err := readability.FromReader(strings.NewReader(rawHTML), parsed)
	if err != nil {
		return "", ""
	}
	return flattenHTML(article.Content), article.Title
}

// runeLen measures text length in characters, which is what all the
// sufficiency thresholds were tuned against.
func runeLen(s string) int {
	return len([]rune(s))
}

// runePrefix returns the first n characters of s.
func runePrefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
