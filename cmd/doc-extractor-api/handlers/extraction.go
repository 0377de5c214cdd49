// Package handlers provides HTTP handlers for the doc-extractor API.
package handlers

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/docsnap/doc-extractor/internal/acquire"
	"github.com/docsnap/doc-extractor/internal/domain"
	"github.com/docsnap/doc-extractor/internal/extract"
	"github.com/docsnap/doc-extractor/internal/observability"
)

// ExtractionHandler handles document extraction requests.
type ExtractionHandler struct {
	logger         *observability.Logger
	service        *extract.Service
	maxUploadBytes int64
}

// NewExtractionHandler creates a new extraction handler.
func NewExtractionHandler(logger *observability.Logger, service *extract.Service, maxUploadBytes int64) *ExtractionHandler {
	return &ExtractionHandler{
		logger:         logger,
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// URLRequestDTO is the JSON body for URL extractions.
type URLRequestDTO struct {
	URL string `json:"url"`
}

// Extract handles POST /api/v1/extract. A multipart body carries an
// uploaded file plus an optional zero-based page field; a JSON body
// carries an image URL. With ?download=1 the raw result text is returned
// as the download artifact instead of the JSON envelope.
func (h *ExtractionHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var result domain.ExtractionResult
	var err error

	if isMultipart(r) {
		result, err = h.extractUpload(w, r)
	} else {
		result, err = h.extractURL(r)
	}
	if err != nil {
		// Error responses never carry the attachment headers.
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("download") == "1" {
		w.Header().Set("Content-Type", domain.ArtifactContentType)
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", domain.ArtifactFilename))
		_, _ = w.Write([]byte(result.Text))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *ExtractionHandler) extractUpload(w http.ResponseWriter, r *http.Request) (domain.ExtractionResult, error) {
	raw, err := h.readUpload(w, r)
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	switch raw.Kind {
	case domain.KindPDF:
		page, err := pageField(r)
		if err != nil {
			return domain.ExtractionResult{}, err
		}
		return h.service.ExtractPDFPage(r.Context(), raw, page)
	default:
		return h.service.ExtractImage(r.Context(), raw)
	}
}

func (h *ExtractionHandler) extractURL(r *http.Request) (domain.ExtractionResult, error) {
	var dto URLRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return domain.ExtractionResult{}, domain.ValidationError("invalid request body", err)
	}

	if _, err := acquire.ValidateURL(dto.URL); err != nil {
		return domain.ExtractionResult{}, err
	}

	h.logger.WithContext(r.Context()).Info().Str("url", dto.URL).Msg("Extracting from URL")

	return h.service.ExtractURL(r.Context(), dto.URL)
}

// readUpload parses the multipart form and runs the file through the
// upload boundary checks.
func (h *ExtractionHandler) readUpload(w http.ResponseWriter, r *http.Request) (domain.RawInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return domain.RawInput{}, domain.ValidationError("could not parse multipart form", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return domain.RawInput{}, domain.ValidationError("missing file field", err)
	}
	defer file.Close()

	raw, err := acquire.FromUpload(header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		return domain.RawInput{}, err
	}

	h.logger.WithContext(r.Context()).Info().
		Str("filename", header.Filename).
		Str("kind", string(raw.Kind)).
		Int("bytes", len(raw.Data)).
		Msg("Upload accepted")

	return raw, nil
}

// pageField reads the optional zero-based page index from the form.
func pageField(r *http.Request) (int, error) {
	v := r.FormValue("page")
	if v == "" {
		return 0, nil
	}

	page, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.ValidationError(fmt.Sprintf("invalid page index %q", v), err)
	}
	return page, nil
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "multipart/form-data"
}
