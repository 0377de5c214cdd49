// Package extract runs one user interaction through the pipeline:
// acquire, normalize, request, display. Each stage blocks; a failure
// stops the interaction at its boundary and nothing downstream runs.
package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/docsnap/doc-extractor/internal/domain"
	"github.com/docsnap/doc-extractor/internal/imaging"
	"github.com/docsnap/doc-extractor/internal/observability"
	"github.com/docsnap/doc-extractor/internal/pdf"
)

// Service orchestrates the extraction pipeline for one interaction at a
// time. All state is per-call; the service itself is read-only after
// construction.
type Service struct {
	rasterizer domain.Rasterizer
	engine     domain.Engine
	fetcher    domain.Fetcher
	quality    int
	timeout    time.Duration
	logger     *observability.Logger
}

// NewService creates an extraction service. The timeout bounds each
// engine call; zero disables the bound.
func NewService(rasterizer domain.Rasterizer, engine domain.Engine, fetcher domain.Fetcher,
	quality int, timeout time.Duration, logger *observability.Logger) *Service {
	return &Service{
		rasterizer: rasterizer,
		engine:     engine,
		fetcher:    fetcher,
		quality:    quality,
		timeout:    timeout,
		logger:     logger.WithStage("extract"),
	}
}

// PageInfo describes one rasterized page for the page picker.
type PageInfo struct {
	Index  int `json:"index"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PDFInfo is the page inventory reported after a PDF upload.
type PDFInfo struct {
	Pages int        `json:"pages"`
	Sizes []PageInfo `json:"sizes"`
}

// ExtractImage normalizes uploaded image bytes and sends the result in
// one engine call.
func (s *Service) ExtractImage(ctx context.Context, raw domain.RawInput) (domain.ExtractionResult, error) {
	if raw.Kind != domain.KindImage {
		return domain.ExtractionResult{}, domain.ValidationError(
			fmt.Sprintf("expected an image input, got %q", raw.Kind), nil)
	}

	payload, err := imaging.Normalize(raw.Data, s.quality)
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	return s.request(ctx, payload)
}

// ExtractPDFPage rasterizes the document, validates the page index, and
// sends only the selected page. Non-selected pages are never
// transmitted.
func (s *Service) ExtractPDFPage(ctx context.Context, raw domain.RawInput, pageIndex int) (domain.ExtractionResult, error) {
	page, err := s.selectPage(ctx, raw, pageIndex)
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	payload, err := imaging.EncodePage(page, s.quality)
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	return s.request(ctx, payload)
}

// ExtractURL fetches the remote image and sends the bytes verbatim.
// URL-fetched bytes skip the decode and re-encode applied to uploads;
// the payload is labeled image/jpeg whatever the bytes contain.
func (s *Service) ExtractURL(ctx context.Context, rawURL string) (domain.ExtractionResult, error) {
	raw, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	return s.request(ctx, domain.NewPayload(raw.Data))
}

// InspectPDF rasterizes the document and reports its page inventory.
func (s *Service) InspectPDF(ctx context.Context, raw domain.RawInput) (PDFInfo, error) {
	if raw.Kind != domain.KindPDF {
		return PDFInfo{}, domain.ValidationError(
			fmt.Sprintf("expected a PDF input, got %q", raw.Kind), nil)
	}

	set, err := s.rasterizer.Rasterize(ctx, raw.Data)
	if err != nil {
		return PDFInfo{}, err
	}

	info := PDFInfo{Pages: len(set), Sizes: make([]PageInfo, 0, len(set))}
	for _, page := range set {
		info.Sizes = append(info.Sizes, PageInfo{Index: page.Index, Width: page.Width, Height: page.Height})
	}

	return info, nil
}

// PreviewPage encodes one rasterized page for display without calling
// the extraction service.
func (s *Service) PreviewPage(ctx context.Context, raw domain.RawInput, pageIndex int) (domain.EncodedImagePayload, error) {
	page, err := s.selectPage(ctx, raw, pageIndex)
	if err != nil {
		return domain.EncodedImagePayload{}, err
	}

	return imaging.EncodePage(page, s.quality)
}

func (s *Service) selectPage(ctx context.Context, raw domain.RawInput, pageIndex int) (domain.PageImage, error) {
	if raw.Kind != domain.KindPDF {
		return domain.PageImage{}, domain.ValidationError(
			fmt.Sprintf("expected a PDF input, got %q", raw.Kind), nil)
	}

	set, err := s.rasterizer.Rasterize(ctx, raw.Data)
	if err != nil {
		return domain.PageImage{}, err
	}

	if err := pdf.ValidatePageIndex(set, pageIndex); err != nil {
		return domain.PageImage{}, err
	}

	return set[pageIndex], nil
}

// request performs the single engine call for one payload and stamps
// the result. On failure no result exists.
func (s *Service) request(ctx context.Context, payload domain.EncodedImagePayload) (domain.ExtractionResult, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.engine.Extract(ctx, payload)
	if err != nil {
		s.logger.Error().Err(err).Str("engine", s.engine.Name()).Msg("Extraction failed")
		return domain.ExtractionResult{}, err
	}

	result := domain.NewExtractionResult(uuid.New().String(), s.engine.Model(), text)

	s.logger.Info().
		Str("id", result.ID).
		Str("engine", s.engine.Name()).
		Str("display", string(result.Display)).
		Dur("took", time.Since(start)).
		Msg("Extraction complete")

	return result, nil
}
