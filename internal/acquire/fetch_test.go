package acquire

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docsnap/doc-extractor/internal/domain"
	"github.com/docsnap/doc-extractor/internal/observability"
)

type countingTransport struct {
	calls int
	inner http.RoundTripper
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls++
	return c.inner.RoundTrip(req)
}

func testLogger() *observability.Logger {
	return observability.NewLogger(observability.LogConfig{
		Level:       "error",
		ServiceName: "test",
	})
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		rawURL  string
		wantErr bool
	}{
		{
			name:   "absolute https URL",
			rawURL: "https://example.com/receipt.jpg",
		},
		{
			name:   "absolute http URL with path and query",
			rawURL: "http://cdn.example.com/img/r.png?v=2",
		},
		{
			name:   "surrounding whitespace trimmed",
			rawURL: "  https://example.com/a.jpg  ",
		},
		{
			name:    "missing scheme",
			rawURL:  "example.com/receipt.jpg",
			wantErr: true,
		},
		{
			name:    "missing host",
			rawURL:  "https://",
			wantErr: true,
		},
		{
			name:    "relative path",
			rawURL:  "/images/receipt.jpg",
			wantErr: true,
		},
		{
			name:    "empty string",
			rawURL:  "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			rawURL:  "   ",
			wantErr: true,
		},
		{
			name:    "bare word",
			rawURL:  "receipt",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateURL(tt.rawURL)

			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				if domain.TypeOf(err) != domain.ErrorTypeValidation {
					t.Errorf("Expected validation error, got %v", domain.TypeOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
		})
	}
}

func TestFetcher_Fetch(t *testing.T) {
	imageBytes := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(imageBytes)
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, testLogger())

	raw, err := f.Fetch(context.Background(), srv.URL+"/receipt.jpg")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if raw.Kind != domain.KindURL {
		t.Errorf("Kind = %v, want %v", raw.Kind, domain.KindURL)
	}
	// Fetched bytes pass through untouched
	if !bytes.Equal(raw.Data, imageBytes) {
		t.Error("Fetched bytes were modified")
	}
	if raw.SourceURL != srv.URL+"/receipt.jpg" {
		t.Errorf("SourceURL = %q", raw.SourceURL)
	}
}

func TestFetcher_Fetch_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, testLogger())

	_, err := f.Fetch(context.Background(), srv.URL+"/missing.jpg")
	if err == nil {
		t.Fatal("Expected error for non-200 response")
	}
	if domain.TypeOf(err) != domain.ErrorTypeFetch {
		t.Errorf("Expected fetch error, got %v", domain.TypeOf(err))
	}
}

func TestFetcher_Fetch_InvalidURLMakesNoRequest(t *testing.T) {
	transport := &countingTransport{inner: http.DefaultTransport}

	f := NewFetcher(5*time.Second, testLogger())
	f.httpc.Transport = transport

	for _, rawURL := range []string{"", "no-scheme.example.com/a.jpg", "https://", "just words"} {
		if _, err := f.Fetch(context.Background(), rawURL); err == nil {
			t.Fatalf("Expected error for %q", rawURL)
		}
	}

	if transport.calls != 0 {
		t.Errorf("Expected zero network calls, got %d", transport.calls)
	}
}

func TestFetcher_Fetch_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, testLogger())

	_, err := f.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("Expected error for empty body")
	}
	if domain.TypeOf(err) != domain.ErrorTypeFetch {
		t.Errorf("Expected fetch error, got %v", domain.TypeOf(err))
	}
}
