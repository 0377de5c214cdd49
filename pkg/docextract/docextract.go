// Package docextract is the embedding facade for the document extraction
// pipeline: one call per document image, PDF page, or image URL.
package docextract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docsnap/doc-extractor/internal/acquire"
	"github.com/docsnap/doc-extractor/internal/config"
	"github.com/docsnap/doc-extractor/internal/domain"
	"github.com/docsnap/doc-extractor/internal/extract"
	"github.com/docsnap/doc-extractor/internal/llm"
	"github.com/docsnap/doc-extractor/internal/observability"
	"github.com/docsnap/doc-extractor/internal/pdf"
)

// Re-export result types for the public API.
type (
	Result      = domain.ExtractionResult
	DisplayMode = domain.DisplayMode
	PDFInfo     = extract.PDFInfo
	PageInfo    = extract.PageInfo
)

// Display mode constants.
const (
	DisplayStructured = domain.DisplayStructured
	DisplayPlain      = domain.DisplayPlain
)

// Client runs the extraction pipeline inside another program.
type Client struct {
	service *extract.Service
	cfg     *config.Config
}

// New creates a client from the environment: a .env file is honored and
// the configured provider's credential is required.
func New() (*Client, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a client from an explicit configuration.
func NewWithConfig(cfg *config.Config) (*Client, error) {
	engine, err := llm.New(cfg.Extractor)
	if err != nil {
		return nil, err
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "docextract",
	})

	fetcher := acquire.NewFetcher(cfg.Acquire.FetchTimeout, logger)
	rasterizer := pdf.NewRasterizer()
	service := extract.NewService(rasterizer, engine, fetcher,
		cfg.Normalize.JPEGQuality, cfg.Extractor.RequestTimeout, logger)

	return &Client{service: service, cfg: cfg}, nil
}

// ExtractFile extracts from a local image or PDF file. The page index is
// zero-based and ignored for images.
func (c *Client) ExtractFile(ctx context.Context, path string, page int) (Result, error) {
	raw, err := readInput(path)
	if err != nil {
		return Result{}, err
	}

	if raw.Kind == domain.KindPDF {
		return c.service.ExtractPDFPage(ctx, raw, page)
	}
	return c.service.ExtractImage(ctx, raw)
}

// ExtractURL fetches a remote image and extracts from it.
func (c *Client) ExtractURL(ctx context.Context, rawURL string) (Result, error) {
	return c.service.ExtractURL(ctx, rawURL)
}

// Pages reports the page inventory of a local PDF file.
func (c *Client) Pages(ctx context.Context, path string) (PDFInfo, error) {
	raw, err := readInput(path)
	if err != nil {
		return PDFInfo{}, err
	}
	return c.service.InspectPDF(ctx, raw)
}

func readInput(path string) (domain.RawInput, error) {
	kind, err := pdf.ValidateInputPath(path)
	if err != nil {
		return domain.RawInput{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.RawInput{}, domain.ValidationError(fmt.Sprintf("cannot read %s", path), err)
	}

	return domain.RawInput{Kind: kind, Data: data, Filename: filepath.Base(path)}, nil
}
