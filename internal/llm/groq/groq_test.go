package groq

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/docsnap/doc-extractor/internal/domain"
)

func testEngine(endpoint string) *Engine {
	e := New("gsk-test-key", "meta-llama/llama-4-scout-17b-16e-instruct", 5*time.Second)
	e.endpoint = endpoint
	return e
}

func TestEngine_Extract_WireFormat(t *testing.T) {
	payload := domain.NewPayload([]byte{0xFF, 0xD8, 0xFF, 0xE0})

	var calls int
	var captured Request
	var authHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		authHeader = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Response{
			ID: "cmpl-1",
			Choices: []Choice{
				{Message: ChoiceMessage{Role: "assistant", Content: `{"total": "10.00"}`}},
			},
		})
	}))
	defer srv.Close()

	got, err := testEngine(srv.URL).Extract(context.Background(), payload)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != `{"total": "10.00"}` {
		t.Errorf("Extract = %q", got)
	}

	if calls != 1 {
		t.Fatalf("Expected exactly one request, got %d", calls)
	}
	if authHeader != "Bearer gsk-test-key" {
		t.Errorf("Authorization = %q", authHeader)
	}
	if captured.Model != "meta-llama/llama-4-scout-17b-16e-instruct" {
		t.Errorf("Model = %q", captured.Model)
	}
	if captured.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3", captured.Temperature)
	}
	if captured.MaxCompletionTokens != 1024 {
		t.Errorf("MaxCompletionTokens = %d, want 1024", captured.MaxCompletionTokens)
	}
	if captured.TopP != 1 {
		t.Errorf("TopP = %v, want 1", captured.TopP)
	}
	if captured.Stream {
		t.Error("Stream = true, want false")
	}

	if len(captured.Messages) != 1 || len(captured.Messages[0].Content) != 2 {
		t.Fatalf("Unexpected message shape: %+v", captured.Messages)
	}
	text := captured.Messages[0].Content[0]
	if text.Type != "text" || !strings.Contains(text.Text, "structured JSON format") {
		t.Errorf("Unexpected text part: %+v", text)
	}
	img := captured.Messages[0].Content[1]
	if img.Type != "image_url" || img.ImageURL == nil {
		t.Fatalf("Unexpected image part: %+v", img)
	}
	wantURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(payload.Data)
	if img.ImageURL.URL != wantURL {
		t.Errorf("Image data URL = %q, want %q", img.ImageURL.URL, wantURL)
	}
}

func TestEngine_Extract_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limit"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testEngine(srv.URL).Extract(context.Background(), domain.NewPayload([]byte{1}))
	if err == nil {
		t.Fatal("Expected error for non-200 response")
	}
	if domain.TypeOf(err) != domain.ErrorTypeAPI {
		t.Errorf("Expected API error, got %v", domain.TypeOf(err))
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("Error should carry status: %v", err)
	}
}

func TestEngine_Extract_NoRetryOnFailure(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testEngine(srv.URL).Extract(context.Background(), domain.NewPayload([]byte{1}))
	if err == nil {
		t.Fatal("Expected error")
	}
	if calls != 1 {
		t.Errorf("Expected exactly one request even on failure, got %d", calls)
	}
}

func TestEngine_Extract_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Response{ID: "cmpl-2"})
	}))
	defer srv.Close()

	_, err := testEngine(srv.URL).Extract(context.Background(), domain.NewPayload([]byte{1}))
	if err == nil {
		t.Fatal("Expected error for empty choices")
	}
	if domain.TypeOf(err) != domain.ErrorTypeAPI {
		t.Errorf("Expected API error, got %v", domain.TypeOf(err))
	}
}
