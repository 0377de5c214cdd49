package pdf

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"

	"github.com/docsnap/doc-extractor/internal/domain"
)

// Rasterizer implements PDF page rasterization using go-fitz
type Rasterizer struct {
	// OnPage, when set, is called after each page renders with the
	// zero-based index and the total page count
	OnPage func(index, total int)
}

// NewRasterizer creates a new rasterizer instance
func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

// Rasterize renders every page of the document into memory at the
// library's default resolution. Pages keep document order; index 0 is
// the first page.
func (r *Rasterizer) Rasterize(ctx context.Context, pdfData []byte) (domain.PageSet, error) {
	if len(pdfData) == 0 {
		return nil, domain.ValidationError("PDF input is empty", nil)
	}

	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, domain.ConversionError("failed to open PDF", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if pageCount == 0 {
		return nil, domain.ConversionError("PDF has no pages", nil)
	}

	pages := make(domain.PageSet, 0, pageCount)

	for pageNum := 0; pageNum < pageCount; pageNum++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, err := doc.Image(pageNum)
		if err != nil {
			return nil, domain.ConversionError(fmt.Sprintf("failed to rasterize page %d", pageNum), err)
		}

		bounds := img.Bounds()
		pages = append(pages, domain.PageImage{
			Index:  pageNum,
			Bitmap: img,
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
		})

		if r.OnPage != nil {
			r.OnPage(pageNum, pageCount)
		}
	}

	return pages, nil
}
