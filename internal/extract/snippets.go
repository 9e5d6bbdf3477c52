package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/ovelis/leaderwatch/internal/model"
	"golang.org/x/net/html"
)

// Extraction tuning. Named so tests can target the exact boundaries.
const (
	// MinBlockLen is the minimum visible text length for a block to be
	// considered; shorter blocks carry no usable context.
	MinBlockLen = 15

	// FallbackWindow is the number of characters taken on each side of a
	// leader name when falling back to whole-page text.
	FallbackWindow = 200
)

// blockTags are the human-readable text containers we inspect.
// Markup-only and invisible elements are excluded by skipTags.
var blockTags = map[string]bool{
	"p":          true,
	"span":       true,
	"div":        true,
	"li":         true,
	"article":    true,
	"blockquote": true,
}

var skipTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
}

// SnippetExtractor turns raw page markup into candidate snippets that
// mention one of the configured leaders
type SnippetExtractor struct {
	minBlockLen int
	window      int
}

// NewSnippetExtractor creates a snippet extractor with default tuning
func NewSnippetExtractor() *SnippetExtractor {
	return &SnippetExtractor{
		minBlockLen: MinBlockLen,
		window:      FallbackWindow,
	}
}

// Extract returns snippets in document order. Duplicates across nested
// blocks are possible and left for alert-level deduplication. Malformed
// markup degrades to an empty result, never an error.
func (e *SnippetExtractor) Extract(htmlContent string, leaders []string) []model.Snippet {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil
	}

	lowered := lowerAll(leaders)

	var snippets []model.Snippet

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skipTags[n.Data] {
				return
			}
			if blockTags[n.Data] {
				text := nodeText(n)
				if utf8.RuneCountInString(text) >= e.minBlockLen && containsAny(strings.ToLower(text), lowered) {
					for _, sentence := range splitSentences(text) {
						if containsAny(strings.ToLower(sentence), lowered) {
							snippets = append(snippets, model.Snippet{
								Text:    sentence,
								Context: text,
							})
						}
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(snippets) == 0 {
		snippets = e.fallback(doc, lowered)
	}

	return snippets
}

// fallback scans the whole page text when no block produced a snippet and
// emits one window per leader actually present. The window is measured in
// runes so multi-byte text is neither shortened nor split mid-character.
func (e *SnippetExtractor) fallback(doc *html.Node, lowered []string) []model.Snippet {
	full := []rune(nodeText(doc))
	fullLow := []rune(strings.ToLower(string(full)))

	var snippets []model.Snippet
	for _, leader := range lowered {
		idx := runeIndex(fullLow, []rune(leader))
		if idx < 0 || idx > len(full) {
			continue
		}
		start := idx - e.window
		if start < 0 {
			start = 0
		}
		end := idx + e.window
		if end > len(full) {
			end = len(full)
		}
		window := strings.TrimSpace(string(full[start:end]))
		snippets = append(snippets, model.Snippet{Text: window, Context: window})
	}
	return snippets
}

// runeIndex returns the rune offset of needle in haystack, or -1
func runeIndex(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// nodeText extracts the visible text of a subtree, collapsing whitespace
// and markup boundaries to single spaces
func nodeText(n *html.Node) string {
	var parts []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipTags[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			parts = append(parts, strings.Fields(n.Data)...)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.Join(parts, " ")
}

// splitSentences splits text into sentence-like units after '.', '!' or '?'
// followed by whitespace
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			if i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t' || text[i+1] == '\n') {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func containsAny(lowText string, lowered []string) bool {
	for _, leader := range lowered {
		if strings.Contains(lowText, leader) {
			return true
		}
	}
	return false
}

func lowerAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(n)
	}
	return out
}
