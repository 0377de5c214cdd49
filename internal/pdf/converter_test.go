package pdf

import (
	"context"
	"os"
	"testing"

	"github.com/docsnap/doc-extractor/internal/domain"
)

func TestRasterizer_EmptyInput(t *testing.T) {
	_, err := NewRasterizer().Rasterize(context.Background(), nil)
	if err == nil {
		t.Fatal("Expected error for empty input")
	}
	if domain.TypeOf(err) != domain.ErrorTypeValidation {
		t.Errorf("Expected validation error, got %v", domain.TypeOf(err))
	}
}

// Rendering a real document needs MuPDF at runtime, so the test is
// gated on a sample path from the environment.
func TestRasterizer_Rasterize_Sample(t *testing.T) {
	samplePath := os.Getenv("DOC_EXTRACTOR_SAMPLE_PDF")
	if samplePath == "" {
		t.Skip("DOC_EXTRACTOR_SAMPLE_PDF not set, skipping rasterization test")
	}

	data, err := os.ReadFile(samplePath)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	r := NewRasterizer()
	var callbacks []int
	r.OnPage = func(index, total int) {
		callbacks = append(callbacks, index)
	}

	set, err := r.Rasterize(context.Background(), data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(set) == 0 {
		t.Fatal("Expected at least one page")
	}

	// One page per document page, indexed 0..N-1 in document order.
	for i, page := range set {
		if page.Index != i {
			t.Errorf("Page %d has index %d", i, page.Index)
		}
		if page.Width <= 0 || page.Height <= 0 {
			t.Errorf("Page %d has dimensions %dx%d", i, page.Width, page.Height)
		}
		if page.Bitmap == nil {
			t.Errorf("Page %d has no bitmap", i)
		}
	}

	if len(callbacks) != len(set) {
		t.Errorf("OnPage fired %d times for %d pages", len(callbacks), len(set))
	}
}

func TestRasterizer_ContextCancellation(t *testing.T) {
	samplePath := os.Getenv("DOC_EXTRACTOR_SAMPLE_PDF")
	if samplePath == "" {
		t.Skip("DOC_EXTRACTOR_SAMPLE_PDF not set, skipping rasterization test")
	}

	data, err := os.ReadFile(samplePath)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewRasterizer().Rasterize(ctx, data); err == nil {
		t.Fatal("Expected error for canceled context")
	}
}
