// Package fileutil writes exported book lists to disk.
package fileutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lepinkainen/bookfinder/internal/book"
	"github.com/lepinkainen/bookfinder/internal/render"
)

// FileExists checks if a regular file exists at the given path
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// WriteFileWithOverwrite writes data to a file, respecting the overwrite flag
// Returns true if the file was written, false if it was skipped
func WriteFileWithOverwrite(filePath string, data []byte, perm os.FileMode, overwrite bool) (bool, error) {
	if FileExists(filePath) && !overwrite {
		return false, nil
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filePath, data, perm); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", filePath, err)
	}
	return true, nil
}

// FormatForPath picks the export format from the file extension.
func FormatForPath(filePath string) (render.Format, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json":
		return render.FormatJSON, nil
	case ".yaml", ".yml":
		return render.FormatYAML, nil
	default:
		return "", fmt.Errorf("cannot infer export format from %q (use .json, .yaml or .yml)", filePath)
	}
}

// ExportBooks writes books to filePath in the format implied by its
// extension. Returns true if the file was written, false if an existing
// file was kept because overwrite is false.
func ExportBooks(filePath string, books []book.Book, overwrite bool) (bool, error) {
	format, err := FormatForPath(filePath)
	if err != nil {
		return false, err
	}

	if FileExists(filePath) && !overwrite {
		slog.Info("Export file already exists, skipping", "filename", filePath, "overwrite", overwrite)
		return false, nil
	}

	data, err := render.Encode(books, format)
	if err != nil {
		return false, err
	}

	slog.Info("Writing export file", "filename", filePath, "format", format, "count", len(books))
	return WriteFileWithOverwrite(filePath, data, 0o644, overwrite)
}
