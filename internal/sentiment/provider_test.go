package sentiment

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	short := "short text"
	if got := Truncate(short); got != short {
		t.Errorf("Expected short text unchanged, got %q", got)
	}

	long := strings.Repeat("a", MaxInputChars+100)
	got := Truncate(long)
	if len(got) != MaxInputChars {
		t.Errorf("Expected %d chars, got %d", MaxInputChars, len(got))
	}

	// Truncation must not split a multi-byte rune.
	runes := strings.Repeat("é", MaxInputChars+10)
	got = Truncate(runes)
	if len([]rune(got)) != MaxInputChars {
		t.Errorf("Expected %d runes, got %d", MaxInputChars, len([]rune(got)))
	}
	if !strings.HasSuffix(got, "é") {
		t.Error("Expected truncation on a rune boundary")
	}
}

func TestParseResultJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Result
		wantErr bool
	}{
		{
			name: "bare object",
			raw:  `{"label":"NEGATIVE","score":0.82}`,
			want: Result{Label: "NEGATIVE", Score: 0.82},
		},
		{
			name: "fenced object",
			raw:  "```json\n{\"label\":\"POSITIVE\",\"score\":0.95}\n```",
			want: Result{Label: "POSITIVE", Score: 0.95},
		},
		{
			name: "surrounding prose",
			raw:  `The sentiment is: {"label":"NEGATIVE","score":0.7} as requested.`,
			want: Result{Label: "NEGATIVE", Score: 0.7},
		},
		{
			name:    "no object",
			raw:     "NEGATIVE 0.9",
			wantErr: true,
		},
		{
			name:    "missing label",
			raw:     `{"score":0.9}`,
			wantErr: true,
		},
		{
			name:    "score out of range",
			raw:     `{"label":"NEGATIVE","score":1.4}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResultJSON(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("parseResultJSON(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(Config{Provider: "watson"})
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
}

func TestNewProvider_Known(t *testing.T) {
	cfg := DefaultConfig()
	provider, err := NewProvider(cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if provider.Name() != "huggingface" {
		t.Errorf("Expected huggingface provider, got %s", provider.Name())
	}
}
