package sentiment

import "testing"

func TestDecider_IsNegative(t *testing.T) {
	decider := NewDecider(0.6)

	tests := []struct {
		name  string
		label string
		score float64
		want  bool
	}{
		{"negative above threshold", "NEGATIVE", 0.75, true},
		{"negative below threshold", "NEGATIVE", 0.4, false},
		{"negative at threshold", "NEGATIVE", 0.6, true},
		{"lowercase negative", "negative", 0.9, true},
		{"neg fragment in longer label", "very_negative", 0.8, true},
		{"placeholder code", "LABEL_0", 0.9, true},
		{"placeholder below threshold", "LABEL_0", 0.5, false},
		{"positive label", "POSITIVE", 0.99, false},
		{"positive placeholder", "LABEL_1", 0.99, false},
		{"unknown label", "NEUTRAL", 0.99, false},
		{"lowercased placeholder is not exact", "label_0", 0.9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decider.IsNegative(tt.label, tt.score); got != tt.want {
				t.Errorf("IsNegative(%q, %v) = %v, want %v", tt.label, tt.score, got, tt.want)
			}
		})
	}
}

func TestDecider_MonotonicInScore(t *testing.T) {
	decider := NewDecider(0.6)

	// If a label is negative at score s, it stays negative for every s' >= s.
	for _, label := range []string{"NEGATIVE", "LABEL_0"} {
		firstNegative := -1.0
		for s := 0.0; s <= 1.0; s += 0.05 {
			if decider.IsNegative(label, s) {
				firstNegative = s
				break
			}
		}
		if firstNegative < 0 {
			t.Fatalf("Expected %s to become negative at some score", label)
		}
		for s := firstNegative; s <= 1.0; s += 0.05 {
			if !decider.IsNegative(label, s) {
				t.Errorf("Expected %s to stay negative at score %v", label, s)
			}
		}
	}
}

func TestDecider_NegativeThresholdUsesDefault(t *testing.T) {
	decider := NewDecider(-1)

	if decider.Threshold() != DefaultThreshold {
		t.Errorf("Expected default threshold %v, got %v", DefaultThreshold, decider.Threshold())
	}
	if decider.IsNegative("NEGATIVE", 0.5) {
		t.Error("Expected 0.5 to be below the default threshold")
	}
	if !decider.IsNegative("NEGATIVE", 0.7) {
		t.Error("Expected 0.7 to clear the default threshold")
	}
}

func TestDecider_ExplicitZeroThresholdHonored(t *testing.T) {
	decider := NewDecider(0)

	if decider.Threshold() != 0 {
		t.Errorf("Expected threshold 0 to be kept, got %v", decider.Threshold())
	}
	// Every recognized negative label alerts, regardless of confidence.
	if !decider.IsNegative("NEGATIVE", 0.01) {
		t.Error("Expected any negative label to alert at threshold 0")
	}
	if !decider.IsNegative("LABEL_0", 0) {
		t.Error("Expected placeholder label to alert at threshold 0")
	}
	if decider.IsNegative("POSITIVE", 0.99) {
		t.Error("Expected positive label to stay non-negative at threshold 0")
	}
}
