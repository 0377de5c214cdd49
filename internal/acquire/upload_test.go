package acquire

import (
	"bytes"
	"strings"
	"testing"

	"github.com/docsnap/doc-extractor/internal/domain"
)

func TestFromUpload(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		declaredType string
		data         string
		wantKind     domain.InputKind
		wantErr      bool
	}{
		{
			name:         "jpeg upload",
			filename:     "receipt.jpg",
			declaredType: "image/jpeg",
			data:         "jpeg-bytes",
			wantKind:     domain.KindImage,
		},
		{
			name:         "png upload",
			filename:     "receipt.PNG",
			declaredType: "image/png",
			data:         "png-bytes",
			wantKind:     domain.KindImage,
		},
		{
			name:         "pdf upload",
			filename:     "invoice.pdf",
			declaredType: "application/pdf",
			data:         "%PDF-1.4",
			wantKind:     domain.KindPDF,
		},
		{
			name:     "no declared type falls back to extension",
			filename: "receipt.jpeg",
			data:     "jpeg-bytes",
			wantKind: domain.KindImage,
		},
		{
			name:         "content type with parameters",
			filename:     "scan.png",
			declaredType: "image/png; charset=binary",
			data:         "png-bytes",
			wantKind:     domain.KindImage,
		},
		{
			name:         "disallowed extension",
			filename:     "animation.gif",
			declaredType: "image/gif",
			data:         "gif-bytes",
			wantErr:      true,
		},
		{
			name:     "no extension",
			filename: "receipt",
			data:     "bytes",
			wantErr:  true,
		},
		{
			name:         "kind mismatch",
			filename:     "receipt.jpg",
			declaredType: "application/pdf",
			data:         "bytes",
			wantErr:      true,
		},
		{
			name:         "unsupported declared type",
			filename:     "notes.pdf",
			declaredType: "text/plain",
			data:         "bytes",
			wantErr:      true,
		},
		{
			name:         "empty file",
			filename:     "receipt.jpg",
			declaredType: "image/jpeg",
			data:         "",
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := FromUpload(tt.filename, tt.declaredType, strings.NewReader(tt.data))

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
			if raw.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", raw.Kind, tt.wantKind)
			}
			if !bytes.Equal(raw.Data, []byte(tt.data)) {
				t.Error("Upload bytes not preserved")
			}
			if raw.Filename != tt.filename {
				t.Errorf("Filename = %q, want %q", raw.Filename, tt.filename)
			}
		})
	}
}
