// Package sentiment abstracts the pretrained classification capability
// behind a provider interface and maps heterogeneous label conventions to a
// single negativity decision.
package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Provider defines the interface for sentiment classifiers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Classify returns the label/score pair for one text. The caller is
	// expected to pass text already bounded by Truncate.
	Classify(ctx context.Context, text string) (Result, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// MaxInputChars is the input bound imposed by typical inference backends.
// Text is truncated to this many characters before classification.
const MaxInputChars = 512

// Result is the label/score pair returned by a classifier for one text.
// The label vocabulary is provider-dependent ("NEGATIVE", "LABEL_0", ...);
// interpretation happens in the Decider, never in callers.
type Result struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Config holds classification provider configuration
type Config struct {
	// Provider name: "huggingface", "openai", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, HF-compatible gateways)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider: "huggingface",
		Model:    "distilbert-base-uncased-finetuned-sst-2-english",
		Timeout:  60,
	}
}

// Truncate cuts text to MaxInputChars characters, never splitting a rune
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxInputChars {
		return text
	}
	return string(runes[:MaxInputChars])
}

// parseResultJSON extracts a Result from LLM output that is expected to be a
// single JSON object, tolerating surrounding prose and code fences
func parseResultJSON(raw string) (Result, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return Result{}, fmt.Errorf("no JSON object in response: %q", raw)
	}

	var res Result
	if err := json.Unmarshal([]byte(raw[start:end+1]), &res); err != nil {
		return Result{}, fmt.Errorf("unmarshal classification: %w", err)
	}

	if res.Label == "" {
		return Result{}, fmt.Errorf("classification missing label: %q", raw)
	}
	if res.Score < 0 || res.Score > 1 {
		return Result{}, fmt.Errorf("classification score out of range: %v", res.Score)
	}

	return res, nil
}
