package model

// Snippet is a short unit of extracted page text that plausibly mentions a
// monitored leader
type Snippet struct {
	Text    string `json:"text"`    // Minimal span (ideally one sentence) mentioning a leader
	Context string `json:"context"` // Enclosing block the span was drawn from
}
