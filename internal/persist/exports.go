// Package persist stores exported schedules in the exports directory.
package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danieljhkim/shiftgrid/internal/fsops"
	"github.com/danieljhkim/shiftgrid/internal/hash"
)

// ErrExportNotFound is returned when a named export does not exist.
var ErrExportNotFound = errors.New("export not found")

// ErrChecksumMismatch is returned by Verify when the file changed on disk.
var ErrChecksumMismatch = errors.New("export checksum mismatch")

// SavedExport describes a file written by ExportWriter.
type SavedExport struct {
	// Path is the absolute location of the file
	Path string `json:"path"`

	// Size in bytes
	Size int `json:"size"`

	// Checksum is the SHA-256 of the content
	Checksum string `json:"checksum"`
}

// ExportWriter writes export byte streams under a single directory.
type ExportWriter struct {
	fs     fsops.FS
	hasher hash.Hasher
	dir    string
}

// NewExportWriter creates a new ExportWriter rooted at dir.
func NewExportWriter(fs fsops.FS, hasher hash.Hasher, dir string) *ExportWriter {
	return &ExportWriter{fs: fs, hasher: hasher, dir: dir}
}

// Dir returns the exports directory.
func (w *ExportWriter) Dir() string {
	return w.dir
}

// Write stores data as name, replacing an older export of the same name.
func (w *ExportWriter) Write(name string, data []byte) (*SavedExport, error) {
	if err := w.fs.ValidateFileName(name); err != nil {
		return nil, fmt.Errorf("invalid export name: %w", err)
	}

	path := filepath.Join(w.dir, name)
	if err := w.fs.AtomicWrite(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write export: %w", err)
	}

	return &SavedExport{
		Path:     path,
		Size:     len(data),
		Checksum: w.hasher.HashBytes(data),
	}, nil
}

// Path resolves name inside the exports directory.
func (w *ExportWriter) Path(name string) (string, error) {
	if err := w.fs.ValidateFileName(name); err != nil {
		return "", fmt.Errorf("invalid export name: %w", err)
	}
	path := filepath.Join(w.dir, name)
	exists, err := w.fs.Exists(path)
	if err != nil {
		return "", fmt.Errorf("failed to check export: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrExportNotFound, name)
	}
	return path, nil
}

// Verify compares the file on disk against checksum.
func (w *ExportWriter) Verify(name, checksum string) error {
	path, err := w.Path(name)
	if err != nil {
		return err
	}
	got, err := w.hasher.HashFile(path)
	if err != nil {
		return fmt.Errorf("failed to hash export: %w", err)
	}
	if got != checksum {
		return fmt.Errorf("%w: %s has %s", ErrChecksumMismatch, name, got)
	}
	return nil
}

// List returns the export files in the directory, sorted by name.
func (w *ExportWriter) List(exts ...string) ([]string, error) {
	names, err := w.fs.ListFiles(w.dir, exts...)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Remove deletes the named export.
func (w *ExportWriter) Remove(name string) error {
	path, err := w.Path(name)
	if err != nil {
		return err
	}
	if err := w.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove export: %w", err)
	}
	return nil
}
