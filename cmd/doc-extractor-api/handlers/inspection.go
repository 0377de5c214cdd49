package handlers

import (
	"net/http"

	"github.com/docsnap/doc-extractor/internal/acquire"
	"github.com/docsnap/doc-extractor/internal/domain"
	"github.com/docsnap/doc-extractor/internal/extract"
	"github.com/docsnap/doc-extractor/internal/observability"
)

// InspectionHandler handles PDF page inventory and preview requests.
type InspectionHandler struct {
	logger         *observability.Logger
	service        *extract.Service
	maxUploadBytes int64
}

// NewInspectionHandler creates a new inspection handler.
func NewInspectionHandler(logger *observability.Logger, service *extract.Service, maxUploadBytes int64) *InspectionHandler {
	return &InspectionHandler{
		logger:         logger,
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// Inspect handles POST /api/v1/inspect. It rasterizes an uploaded PDF
// and reports its page count and per-page dimensions for the page
// picker.
func (h *InspectionHandler) Inspect(w http.ResponseWriter, r *http.Request) {
	raw, err := h.readPDF(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	info, err := h.service.InspectPDF(r.Context(), raw)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// Preview handles POST /api/v1/preview. It returns one rendered page as
// a JPEG body for display.
func (h *InspectionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	raw, err := h.readPDF(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := pageField(r)
	if err != nil {
		writeError(w, err)
		return
	}

	payload, err := h.service.PreviewPage(r.Context(), raw, page)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", payload.MIME)
	_, _ = w.Write(payload.Data)
}

func (h *InspectionHandler) readPDF(w http.ResponseWriter, r *http.Request) (domain.RawInput, error) {
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
	if raw.Kind != domain.KindPDF {
		return domain.RawInput{}, domain.ValidationError("inspection requires a PDF upload", nil)
	}

	return raw, nil
}
