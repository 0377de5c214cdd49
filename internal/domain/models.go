package domain

import (
	"image"
	"strings"
)

// InputKind tags the source of a RawInput.
type InputKind string

const (
	KindImage InputKind = "image"
	KindPDF   InputKind = "pdf"
	KindURL   InputKind = "url-fetched"
)

// AllowedExtensions maps the accepted upload extensions (lowercase, with
// leading dot) to the input kind they produce. Everything else is rejected
// at the upload boundary.
var AllowedExtensions = map[string]InputKind{
	".jpg":  KindImage,
	".jpeg": KindImage,
	".png":  KindImage,
	".pdf":  KindPDF,
}

// PayloadMIME is the MIME type of every EncodedImagePayload. Upload paths
// re-encode to JPEG; URL-fetched bytes are labeled with it verbatim.
const PayloadMIME = "image/jpeg"

// Download artifact attributes, applied whether or not the extracted text
// parses as JSON.
const (
	ArtifactFilename    = "extracted_data.json"
	ArtifactContentType = "application/json"
)

// RawInput is an acquired byte sequence plus its declared kind. Created at
// acquisition, consumed by normalization, then discarded.
type RawInput struct {
	Kind      InputKind
	Data      []byte
	Filename  string // uploads: original file name
	SourceURL string // url-fetched: the validated source URL
}

// PageImage is one decoded bitmap: the whole of an image upload, or one
// page of a rasterized PDF.
type PageImage struct {
	Index  int
	Bitmap image.Image
	Width  int
	Height int
}

// PageSet is the ordered page sequence rasterized from a PDF. Index 0 is
// the first page of the document.
type PageSet []PageImage

// EncodedImagePayload is the single encoded buffer transmitted to the
// extraction service.
type EncodedImagePayload struct {
	Data []byte
	MIME string
}

// NewPayload wraps encoded bytes with the fixed payload MIME type.
func NewPayload(data []byte) EncodedImagePayload {
	return EncodedImagePayload{Data: data, MIME: PayloadMIME}
}

// DisplayMode selects how an extraction result is rendered.
type DisplayMode string

const (
	DisplayStructured DisplayMode = "json"
	DisplayPlain      DisplayMode = "text"
)

// DetectDisplayMode routes text whose leading non-whitespace character is
// '{' or '[' to the structured view. It is a heuristic, not a parse:
// malformed JSON-looking text still renders as structured.
func DetectDisplayMode(text string) DisplayMode {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return DisplayStructured
	}
	return DisplayPlain
}

// ExtractionResult is the raw text returned by the extraction service for
// one payload, with the display route already decided.
type ExtractionResult struct {
	ID      string      `json:"id"`
	Model   string      `json:"model"`
	Text    string      `json:"data"`
	Display DisplayMode `json:"display"`
}

// NewExtractionResult stamps the result with its display mode.
func NewExtractionResult(id, model, text string) ExtractionResult {
	return ExtractionResult{
		ID:      id,
		Model:   model,
		Text:    text,
		Display: DetectDisplayMode(text),
	}
}
