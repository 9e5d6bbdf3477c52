package model

// Alert is a confirmed negative snippet attributed to a leader.
// Identity for deduplication is the (Leader, Text, URL) triple; Context and
// Score are carried for the digest but do not participate in identity.
type Alert struct {
	Leader  string  `json:"leader"`
	Text    string  `json:"text"`
	Context string  `json:"context,omitempty"`
	URL     string  `json:"url"`
	Score   float64 `json:"score"`
}

// RunSummary aggregates counters for one monitoring pass
type RunSummary struct {
	URLsScanned   int `json:"urls_scanned"`
	FetchFailures int `json:"fetch_failures"`
	Snippets      int `json:"snippets"`
	Classified    int `json:"classified"`
	ClassifyFails int `json:"classify_failures"`
	Alerts        int `json:"alerts"`
}
