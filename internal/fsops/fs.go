// Package fsops provides the filesystem operations shiftgrid relies on.
//
// Every write to the data directory goes through the FS interface so that
// a crash mid-write never leaves a truncated grid, rules or export file.
//
// Key features:
//   - Atomic writes using temp file + rename
//   - Size-bounded reads for imported files
//   - File name validation for export targets
//   - Testable via the FS interface
package fsops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrTooLarge is returned by ReadFileLimit when a file exceeds the limit.
var ErrTooLarge = errors.New("file too large")

// FS provides an abstraction for filesystem operations.
type FS interface {
	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm os.FileMode) error

	// Remove removes a file. Removing a missing file is not an error.
	Remove(path string) error

	// AtomicWrite writes data to path atomically using temp file + rename.
	AtomicWrite(path string, data []byte, perm os.FileMode) error

	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// ReadFileLimit reads a file but fails with ErrTooLarge past limit bytes.
	ReadFileLimit(path string, limit int64) ([]byte, error)

	// Exists checks if a path exists.
	Exists(path string) (bool, error)

	// ListFiles returns the regular files in dir with one of the given
	// extensions, sorted by name. A missing dir yields an empty list.
	ListFiles(dir string, exts ...string) ([]string, error)

	// ValidateFileName validates a bare file name for safety.
	ValidateFileName(name string) error
}

// RealFS implements FS using actual OS operations.
type RealFS struct{}

// NewRealFS creates a new RealFS.
func NewRealFS() *RealFS {
	return &RealFS{}
}

// MkdirAll creates a directory and all parent directories.
func (fs *RealFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Remove removes a file, ignoring a missing one.
func (fs *RealFS) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// AtomicWrite writes data to path atomically using temp file + rename.
func (fs *RealFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	// Temp file lives next to the target so the rename stays on one volume
	tmpFile, err := os.CreateTemp(dir, ".shiftgrid-tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	tmpFile = nil
	return nil
}

// ReadFile reads the entire contents of a file.
func (fs *RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ReadFileLimit reads at most limit bytes. A file that is larger, or that
// grows past the limit while being read, fails with ErrTooLarge.
func (fs *RealFS) ReadFileLimit(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrTooLarge, filepath.Base(path), info.Size(), limit)
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, filepath.Base(path), limit)
	}
	return data, nil
}

// Exists checks if a path exists.
func (fs *RealFS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ListFiles returns regular files in dir matching exts (case-insensitive).
// With no exts every regular file is listed. Temp files are skipped.
func (fs *RealFS) ListFiles(dir string, exts ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".shiftgrid-tmp-") {
			continue
		}
		if len(exts) > 0 && !hasExt(entry.Name(), exts) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// ValidateFileName validates a file name (e.g. an export name) for safety.
// Returns an error if the name is empty, contains path separators or is a
// traversal element.
func (fs *RealFS) ValidateFileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("invalid file name: empty")
	}

	if strings.Contains(name, string(filepath.Separator)) || strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf("invalid file name: must not contain path separators")
	}

	if name == "." || name == ".." || strings.HasPrefix(name, "..") {
		return fmt.Errorf("invalid file name: path traversal not allowed")
	}

	return nil
}
