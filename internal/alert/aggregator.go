// Package alert collects confirmed negative mentions, deduplicates them and
// renders the emailed digest.
package alert

import (
	"fmt"
	"strings"

	"github.com/ovelis/leaderwatch/internal/model"
)

// identity is the deduplication key. Context and score are deliberately
// excluded: the same sentence from the same page is the same alert even if
// classifier confidence drifted between snippets.
type identity struct {
	leader string
	text   string
	url    string
}

// Dedupe removes alerts whose (leader, text, url) triple matches an earlier
// one, preserving first-seen order. Idempotent.
func Dedupe(alerts []model.Alert) []model.Alert {
	seen := make(map[identity]bool, len(alerts))
	unique := make([]model.Alert, 0, len(alerts))

	for _, a := range alerts {
		key := identity{leader: a.Leader, text: a.Text, url: a.URL}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, a)
	}

	return unique
}

// RenderDigest produces the human-readable email body, one block per alert.
// An empty alert list renders to "" so callers can skip notification.
func RenderDigest(alerts []model.Alert) string {
	if len(alerts) == 0 {
		return ""
	}

	var lines []string
	for _, a := range alerts {
		lines = append(lines, fmt.Sprintf("Leader: %s", a.Leader))
		lines = append(lines, fmt.Sprintf("Score: %v", a.Score))
		lines = append(lines, fmt.Sprintf("Comment snippet: %s", a.Text))
		lines = append(lines, fmt.Sprintf("Post URL: %s", a.URL))
		lines = append(lines, "---")
	}

	return strings.Join(lines, "\n")
}

// Subject builds the digest subject line
func Subject(count int) string {
	return fmt.Sprintf("Negative comments detected (%d)", count)
}
