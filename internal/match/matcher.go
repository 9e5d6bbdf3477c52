// Package match attributes snippet text to a configured leader.
package match

import "strings"

// Matcher resolves which configured leader a snippet concerns
type Matcher struct {
	leaders []string
}

// NewMatcher creates a matcher over the configured leader names.
// Configuration order is significant: when a snippet mentions several
// leaders, the first configured one wins.
func NewMatcher(leaders []string) *Matcher {
	return &Matcher{leaders: leaders}
}

// Match returns the first leader (in configuration order) whose name occurs
// case-insensitively in the text, or "" when none does
func (m *Matcher) Match(text string) string {
	low := strings.ToLower(text)
	for _, leader := range m.leaders {
		if strings.Contains(low, strings.ToLower(leader)) {
			return leader
		}
	}
	return ""
}
