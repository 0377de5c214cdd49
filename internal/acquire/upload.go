// Package acquire obtains raw input bytes from uploads and remote URLs.
package acquire

import (
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/docsnap/doc-extractor/internal/domain"
)

// FromUpload reads an uploaded file into a RawInput. The file name must
// carry an allow-listed extension (jpg, jpeg, png, pdf); when a content
// type is declared it must agree with the extension-derived kind.
func FromUpload(filename, declaredType string, r io.Reader) (domain.RawInput, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	kind, ok := domain.AllowedExtensions[ext]
	if !ok {
		return domain.RawInput{}, domain.ValidationError(
			fmt.Sprintf("unsupported file type %q (allowed: jpg, jpeg, png, pdf)", ext), nil)
	}

	if declaredType != "" {
		declared, err := kindFromContentType(declaredType)
		if err != nil {
			return domain.RawInput{}, err
		}
		if declared != kind {
			return domain.RawInput{}, domain.ValidationError(
				fmt.Sprintf("content type %q does not match file extension %q", declaredType, ext), nil)
		}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return domain.RawInput{}, domain.ValidationError("could not read upload", err)
	}
	if len(data) == 0 {
		return domain.RawInput{}, domain.ValidationError("uploaded file is empty", nil)
	}

	return domain.RawInput{Kind: kind, Data: data, Filename: filename}, nil
}

// kindFromContentType maps a declared MIME type onto an input kind.
func kindFromContentType(contentType string) (domain.InputKind, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", domain.ValidationError(fmt.Sprintf("malformed content type %q", contentType), err)
	}

	switch {
	case mediaType == "application/pdf":
		return domain.KindPDF, nil
	case strings.HasPrefix(mediaType, "image/"):
		return domain.KindImage, nil
	default:
		return "", domain.ValidationError(fmt.Sprintf("unsupported content type %q", mediaType), nil)
	}
}
