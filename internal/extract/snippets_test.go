package extract

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSnippetExtractor_BasicExtraction(t *testing.T) {
	extractor := NewSnippetExtractor()

	html := `
	<html>
	<body>
		<p>John Doe mixed reactions today.</p>
		<p>An unrelated paragraph about something else entirely.</p>
	</body>
	</html>
	`

	snippets := extractor.Extract(html, []string{"John Doe"})

	if len(snippets) != 1 {
		t.Fatalf("Expected 1 snippet, got %d", len(snippets))
	}
	if !strings.Contains(snippets[0].Text, "John Doe") {
		t.Errorf("Expected snippet text to contain 'John Doe', got '%s'", snippets[0].Text)
	}
	if snippets[0].Context == "" {
		t.Error("Expected snippet context to be set")
	}
}

func TestSnippetExtractor_CaseInsensitive(t *testing.T) {
	extractor := NewSnippetExtractor()

	html := `<html><body><p>Critics say JOHN DOE mishandled the situation badly.</p></body></html>`

	snippets := extractor.Extract(html, []string{"john doe"})

	if len(snippets) != 1 {
		t.Fatalf("Expected 1 snippet for case-insensitive match, got %d", len(snippets))
	}
}

func TestSnippetExtractor_SentenceSelection(t *testing.T) {
	extractor := NewSnippetExtractor()

	html := `
	<html>
	<body>
		<p>The weather was pleasant this morning. Jane Smith faced harsh criticism at the meeting. Traffic was light on the highway.</p>
	</body>
	</html>
	`

	snippets := extractor.Extract(html, []string{"Jane Smith"})

	if len(snippets) != 1 {
		t.Fatalf("Expected 1 snippet, got %d", len(snippets))
	}
	if snippets[0].Text != "Jane Smith faced harsh criticism at the meeting." {
		t.Errorf("Unexpected snippet text: '%s'", snippets[0].Text)
	}
	if !strings.Contains(snippets[0].Context, "weather") || !strings.Contains(snippets[0].Context, "Traffic") {
		t.Errorf("Expected context to hold the full block, got '%s'", snippets[0].Context)
	}
}

func TestSnippetExtractor_SkipScripts(t *testing.T) {
	extractor := NewSnippetExtractor()

	html := `
	<html>
	<head>
		<script>var who = "John Doe did something terrible here";</script>
		<style>/* John Doe styling rules for the page */</style>
	</head>
	<body>
		<p>John Doe attended the ceremony yesterday evening.</p>
	</body>
	</html>
	`

	snippets := extractor.Extract(html, []string{"John Doe"})

	for _, sn := range snippets {
		if strings.Contains(sn.Text, "terrible") {
			t.Error("Should not extract snippets from script tags")
		}
		if strings.Contains(sn.Text, "styling") {
			t.Error("Should not extract snippets from style tags")
		}
	}

	found := false
	for _, sn := range snippets {
		if strings.Contains(sn.Text, "ceremony") {
			found = true
		}
	}
	if !found {
		t.Error("Expected to find snippet from body content")
	}
}

func TestSnippetExtractor_NestedBlocksMayDuplicate(t *testing.T) {
	extractor := NewSnippetExtractor()

	html := `<html><body><div><p>John Doe was criticized sharply today.</p></div></body></html>`

	snippets := extractor.Extract(html, []string{"John Doe"})

	// Both the div and the nested p carry the same text; duplicates are
	// suppressed later at the alert stage, not here.
	if len(snippets) != 2 {
		t.Errorf("Expected 2 snippets from nested blocks, got %d", len(snippets))
	}
}

func TestSnippetExtractor_WhitespaceCollapse(t *testing.T) {
	extractor := NewSnippetExtractor()

	html := "<html><body><p>John\n\tDoe   drew\n criticism over the remarks.</p></body></html>"

	snippets := extractor.Extract(html, []string{"John Doe"})

	if len(snippets) != 1 {
		t.Fatalf("Expected 1 snippet, got %d", len(snippets))
	}
	if snippets[0].Text != "John Doe drew criticism over the remarks." {
		t.Errorf("Expected collapsed whitespace, got '%s'", snippets[0].Text)
	}
}

func TestSnippetExtractor_ShortBlocksFallBack(t *testing.T) {
	extractor := NewSnippetExtractor()

	// Block text is shorter than MinBlockLen, so block extraction finds
	// nothing and the whole-page fallback takes over.
	html := `<html><body><p>John Doe.</p></body></html>`

	snippets := extractor.Extract(html, []string{"John Doe"})

	if len(snippets) != 1 {
		t.Fatalf("Expected 1 fallback snippet, got %d", len(snippets))
	}
	if snippets[0].Text != snippets[0].Context {
		t.Error("Expected fallback snippet text to equal its context")
	}
}

func TestSnippetExtractor_FallbackWindow(t *testing.T) {
	extractor := NewSnippetExtractor()

	padding := strings.Repeat("x", 500)
	// h1 is not an allowlisted block, so only the fallback can find this.
	html := `<html><body><h1>` + padding + ` John Doe ` + padding + `</h1></body></html>`

	snippets := extractor.Extract(html, []string{"John Doe"})

	if len(snippets) != 1 {
		t.Fatalf("Expected 1 fallback snippet, got %d", len(snippets))
	}
	if !strings.Contains(snippets[0].Text, "John Doe") {
		t.Errorf("Expected fallback window to contain the leader name, got '%s'", snippets[0].Text)
	}
	if len(snippets[0].Text) > 2*FallbackWindow {
		t.Errorf("Expected window of at most %d chars, got %d", 2*FallbackWindow, len(snippets[0].Text))
	}
}

func TestSnippetExtractor_FallbackWindowMultiByte(t *testing.T) {
	extractor := NewSnippetExtractor()

	padding := strings.Repeat("é", 300)
	// h1 is not an allowlisted block, so only the fallback can find this.
	html := `<html><body><h1>` + padding + `John Doe` + padding + `</h1></body></html>`

	snippets := extractor.Extract(html, []string{"John Doe"})

	if len(snippets) != 1 {
		t.Fatalf("Expected 1 fallback snippet, got %d", len(snippets))
	}
	text := snippets[0].Text
	if !utf8.ValidString(text) {
		t.Fatalf("Window split a multi-byte character: %q", text)
	}
	if !strings.Contains(text, "John Doe") {
		t.Errorf("Expected fallback window to contain the leader name, got '%s'", text)
	}
	if got := utf8.RuneCountInString(text); got != 2*FallbackWindow {
		t.Errorf("Expected a %d-rune window, got %d runes", 2*FallbackWindow, got)
	}
}

func TestSnippetExtractor_MinBlockLenCountsRunes(t *testing.T) {
	extractor := NewSnippetExtractor()

	// "ééééé John." is 16 bytes but only 11 runes, so the block is too
	// short and the whole-page fallback takes over instead.
	html := `<html><body><p>ééééé John.</p><p>Unrelated filler text long enough to be a block.</p></body></html>`

	snippets := extractor.Extract(html, []string{"John"})

	if len(snippets) != 1 {
		t.Fatalf("Expected 1 fallback snippet, got %d", len(snippets))
	}
	if !strings.Contains(snippets[0].Text, "Unrelated filler") {
		t.Errorf("Expected whole-page fallback window, got block snippet '%s'", snippets[0].Text)
	}
}

func TestSnippetExtractor_NoLeaderPresent(t *testing.T) {
	extractor := NewSnippetExtractor()

	html := `<html><body><p>A perfectly ordinary paragraph about gardening techniques.</p></body></html>`

	snippets := extractor.Extract(html, []string{"John Doe", "Jane Smith"})

	if len(snippets) != 0 {
		t.Errorf("Expected 0 snippets when no leader is mentioned, got %d", len(snippets))
	}
}

func TestSnippetExtractor_EmptyHTML(t *testing.T) {
	extractor := NewSnippetExtractor()

	snippets := extractor.Extract("", []string{"John Doe"})

	if len(snippets) != 0 {
		t.Errorf("Expected 0 snippets from empty markup, got %d", len(snippets))
	}
}

func TestSplitSentences_BasicSplitting(t *testing.T) {
	text := "First sentence here. Second one follows! Third one asks? Trailing fragment"

	sentences := splitSentences(text)

	if len(sentences) != 4 {
		t.Fatalf("Expected 4 sentences, got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != "First sentence here." {
		t.Errorf("Unexpected first sentence: '%s'", sentences[0])
	}
	if sentences[3] != "Trailing fragment" {
		t.Errorf("Expected trailing fragment to be kept, got '%s'", sentences[3])
	}
}

func TestSplitSentences_NoSplitWithoutWhitespace(t *testing.T) {
	// Terminator not followed by whitespace (e.g. "v1.2") must not split.
	text := "The v1.2 release of the tool shipped today."

	sentences := splitSentences(text)

	if len(sentences) != 1 {
		t.Errorf("Expected 1 sentence, got %d: %v", len(sentences), sentences)
	}
}

func TestSplitSentences_Trimmed(t *testing.T) {
	sentences := splitSentences("One sentence.   Another sentence.")

	for _, s := range sentences {
		if s != strings.TrimSpace(s) {
			t.Errorf("Expected sentence to be trimmed: '%s'", s)
		}
	}
}
