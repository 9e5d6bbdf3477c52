package alert

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ovelis/leaderwatch/internal/model"
)

func TestDedupe_RemovesExactTriples(t *testing.T) {
	alerts := []model.Alert{
		{Leader: "John Doe", Text: "snippet one", URL: "https://a.example", Score: 0.9},
		{Leader: "John Doe", Text: "snippet one", URL: "https://a.example", Score: 0.7},
		{Leader: "John Doe", Text: "snippet two", URL: "https://a.example", Score: 0.9},
	}

	got := Dedupe(alerts)

	if len(got) != 2 {
		t.Fatalf("Expected 2 alerts, got %d", len(got))
	}
	// First occurrence wins, including its score.
	if got[0].Score != 0.9 {
		t.Errorf("Expected first-seen alert to be kept, got score %v", got[0].Score)
	}
}

func TestDedupe_URLIsPartOfIdentity(t *testing.T) {
	// The same leader and text from two different pages are distinct alerts.
	alerts := []model.Alert{
		{Leader: "John Doe", Text: "same snippet", URL: "https://a.example"},
		{Leader: "John Doe", Text: "same snippet", URL: "https://b.example"},
	}

	got := Dedupe(alerts)

	if len(got) != 2 {
		t.Errorf("Expected both alerts retained, got %d", len(got))
	}
}

func TestDedupe_Idempotent(t *testing.T) {
	alerts := []model.Alert{
		{Leader: "A", Text: "x", URL: "u1"},
		{Leader: "A", Text: "x", URL: "u1"},
		{Leader: "B", Text: "y", URL: "u2"},
		{Leader: "A", Text: "x", URL: "u2"},
	}

	once := Dedupe(alerts)
	twice := Dedupe(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Expected dedupe to be idempotent: %v vs %v", once, twice)
	}
}

func TestDedupe_PreservesOrder(t *testing.T) {
	alerts := []model.Alert{
		{Leader: "C", Text: "3", URL: "u"},
		{Leader: "A", Text: "1", URL: "u"},
		{Leader: "B", Text: "2", URL: "u"},
	}

	got := Dedupe(alerts)

	want := []string{"C", "A", "B"}
	for i, a := range got {
		if a.Leader != want[i] {
			t.Errorf("Expected order %v, got %s at index %d", want, a.Leader, i)
		}
	}
}

func TestRenderDigest_Empty(t *testing.T) {
	if got := RenderDigest(nil); got != "" {
		t.Errorf("Expected empty digest for no alerts, got %q", got)
	}
}

func TestRenderDigest_SingleAlert(t *testing.T) {
	digest := RenderDigest([]model.Alert{
		{
			Leader: "John Doe",
			Text:   "John Doe faced criticism today.",
			URL:    "https://news.example/post/1",
			Score:  0.87,
		},
	})

	for _, want := range []string{"John Doe", "0.87", "John Doe faced criticism today.", "https://news.example/post/1", "---"} {
		if !strings.Contains(digest, want) {
			t.Errorf("Expected digest to contain %q, got:\n%s", want, digest)
		}
	}
}

func TestSubject(t *testing.T) {
	if got := Subject(3); got != "Negative comments detected (3)" {
		t.Errorf("Unexpected subject: %q", got)
	}
}
