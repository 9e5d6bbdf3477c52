package sentiment

import "strings"

// DefaultThreshold is the minimum confidence required to call a
// classification negative
const DefaultThreshold = 0.6

// labelConvention recognizes one classifier labeling scheme. Pretrained
// models disagree on vocabulary: some emit human-readable labels
// ("NEGATIVE"), others enumerated placeholders ("LABEL_0").
type labelConvention interface {
	negative(label string) bool
}

// substringConvention matches human-readable labels by substring
type substringConvention struct {
	fragment string
}

func (c substringConvention) negative(label string) bool {
	return strings.Contains(strings.ToLower(label), c.fragment)
}

// placeholderConvention matches enumerated placeholder codes exactly
type placeholderConvention struct {
	codes map[string]bool
}

func (c placeholderConvention) negative(label string) bool {
	return c.codes[label]
}

// Decider interprets label/score pairs from a possibly-unknown classifier
// convention and decides whether they represent a confident negative
type Decider struct {
	threshold   float64
	conventions []labelConvention
}

// NewDecider creates a decider with the known label conventions. A
// negative threshold means unset and falls back to DefaultThreshold; an
// explicit zero is honored, alerting on every recognized negative label.
func NewDecider(threshold float64) *Decider {
	if threshold < 0 {
		threshold = DefaultThreshold
	}
	return &Decider{
		threshold: threshold,
		conventions: []labelConvention{
			substringConvention{fragment: "neg"},
			placeholderConvention{codes: map[string]bool{"LABEL_0": true}},
		},
	}
}

// Threshold returns the configured confidence threshold
func (d *Decider) Threshold() float64 {
	return d.threshold
}

// IsNegative reports whether the label names a negative class under any
// known convention and the score clears the threshold. Monotonic in score
// for a fixed label.
func (d *Decider) IsNegative(label string, score float64) bool {
	if score < d.threshold {
		return false
	}
	for _, convention := range d.conventions {
		if convention.negative(label) {
			return true
		}
	}
	return false
}
