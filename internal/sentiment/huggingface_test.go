package sentiment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHuggingFaceProvider_Classify_NestedShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/test-model" {
			t.Errorf("Expected path /models/test-model, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Expected bearer auth, got %q", auth)
		}
		_, _ = w.Write([]byte(`[[{"label":"NEGATIVE","score":0.91},{"label":"POSITIVE","score":0.09}]]`))
	}))
	defer server.Close()

	provider, err := NewHuggingFaceProvider(Config{
		BaseURL: server.URL,
		Model:   "test-model",
		APIKey:  "test-key",
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	res, err := provider.Classify(context.Background(), "some text")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if res.Label != "NEGATIVE" {
		t.Errorf("Expected top label NEGATIVE, got %s", res.Label)
	}
	if res.Score != 0.91 {
		t.Errorf("Expected score 0.91, got %v", res.Score)
	}
}

func TestHuggingFaceProvider_Classify_FlatShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"label":"LABEL_0","score":0.88},{"label":"LABEL_1","score":0.12}]`))
	}))
	defer server.Close()

	provider, err := NewHuggingFaceProvider(Config{BaseURL: server.URL, Model: "test-model", Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	res, err := provider.Classify(context.Background(), "some text")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if res.Label != "LABEL_0" || res.Score != 0.88 {
		t.Errorf("Unexpected result: %+v", res)
	}
}

func TestHuggingFaceProvider_Classify_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is currently loading"}`))
	}))
	defer server.Close()

	provider, err := NewHuggingFaceProvider(Config{BaseURL: server.URL, Model: "test-model", Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Classify(context.Background(), "some text")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "Model is currently loading") {
		t.Errorf("Expected API error message, got %v", err)
	}
}

func TestHuggingFaceProvider_Classify_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	defer server.Close()

	provider, err := NewHuggingFaceProvider(Config{BaseURL: server.URL, Model: "test-model", Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Classify(context.Background(), "some text")
	if err == nil {
		t.Fatal("Expected error for unexpected response shape")
	}
}

func TestNewHuggingFaceProvider_RequiresModel(t *testing.T) {
	_, err := NewHuggingFaceProvider(Config{})
	if err == nil {
		t.Fatal("Expected error when model is missing")
	}
}
