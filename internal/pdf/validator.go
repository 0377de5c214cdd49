package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docsnap/doc-extractor/internal/domain"
)

// ValidatePageIndex checks that index names a page inside the set. The
// index is zero-based; anything outside [0, len) is a validation error.
func ValidatePageIndex(set domain.PageSet, index int) error {
	if index < 0 || index >= len(set) {
		return domain.ValidationError(
			fmt.Sprintf("page index %d out of range (document has %d pages)", index, len(set)), nil)
	}
	return nil
}

// ValidateInputPath checks that a CLI-supplied path exists, is a regular
// file, and carries an allow-listed extension. The returned kind tells
// the caller which pipeline the file enters.
func ValidateInputPath(path string) (domain.InputKind, error) {
	if strings.TrimSpace(path) == "" {
		return "", domain.ValidationError("file path cannot be empty", nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ValidationError(fmt.Sprintf("file does not exist: %s", path), err)
		}
		return "", domain.ValidationError(fmt.Sprintf("cannot access file: %s", path), err)
	}
	if info.IsDir() {
		return "", domain.ValidationError(fmt.Sprintf("path is a directory, not a file: %s", path), nil)
	}

	ext := strings.ToLower(filepath.Ext(path))
	kind, ok := domain.AllowedExtensions[ext]
	if !ok {
		return "", domain.ValidationError(
			fmt.Sprintf("unsupported file type %q (allowed: jpg, jpeg, png, pdf)", ext), nil)
	}

	return kind, nil
}
