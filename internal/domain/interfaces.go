package domain

import "context"

// Rasterizer defines the interface for converting PDF bytes to page images
type Rasterizer interface {
	// Rasterize renders every page of the document, in order
	Rasterize(ctx context.Context, pdfData []byte) (PageSet, error)
}

// Engine defines the interface to the extraction service: exactly one
// call per payload, no retries, no streaming
type Engine interface {
	// Name identifies the provider
	Name() string

	// Model reports the configured model identifier
	Model() string

	// Extract sends one payload with the fixed prompt and returns the
	// raw response text
	Extract(ctx context.Context, payload EncodedImagePayload) (string, error)
}

// Fetcher retrieves raw bytes from a remote URL with a single bounded
// attempt
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (RawInput, error)
}
