package persist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/shiftgrid/internal/fsops"
	"github.com/danieljhkim/shiftgrid/internal/hash"
)

// setupTestEnv creates an exports directory and a writer over it.
func setupTestEnv(t *testing.T) (dir string, w *ExportWriter) {
	t.Helper()
	dir = filepath.Join(t.TempDir(), "exports")
	return dir, NewExportWriter(fsops.NewRealFS(), hash.NewSHA256Hasher(), dir)
}

func TestExportWriter_Write(t *testing.T) {
	dir, w := setupTestEnv(t)

	saved, err := w.Write("2026-10_schedule_20261019.csv", []byte("Name\n"))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if saved.Path != filepath.Join(dir, "2026-10_schedule_20261019.csv") {
		t.Errorf("Path = %s", saved.Path)
	}
	if saved.Size != 5 {
		t.Errorf("Size = %d, want 5", saved.Size)
	}
	if saved.Checksum != hash.NewSHA256Hasher().HashBytes([]byte("Name\n")) {
		t.Errorf("Checksum = %s", saved.Checksum)
	}

	data, err := os.ReadFile(saved.Path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if string(data) != "Name\n" {
		t.Errorf("content = %q", data)
	}

	if err := w.Verify("2026-10_schedule_20261019.csv", saved.Checksum); err != nil {
		t.Errorf("Verify failed: %v", err)
	}
}

func TestExportWriter_RejectsUnsafeNames(t *testing.T) {
	_, w := setupTestEnv(t)

	for _, name := range []string{"", "../escape.csv", "sub/dir.csv", ".."} {
		if _, err := w.Write(name, []byte("x")); err == nil {
			t.Errorf("Write(%q) should fail", name)
		}
	}
}

func TestExportWriter_VerifyDetectsChange(t *testing.T) {
	_, w := setupTestEnv(t)

	saved, err := w.Write("a.csv", []byte("one"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(saved.Path, []byte("two"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := w.Verify("a.csv", saved.Checksum); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestExportWriter_ListAndRemove(t *testing.T) {
	_, w := setupTestEnv(t)

	names, err := w.List()
	if err != nil {
		t.Fatalf("List on missing dir failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no exports, got %v", names)
	}

	for _, name := range []string{"b.xlsx", "a.csv"} {
		if _, err := w.Write(name, []byte("x")); err != nil {
			t.Fatal(err)
		}
	}

	names, err = w.List(".xlsx", ".csv")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 2 || names[0] != "a.csv" || names[1] != "b.xlsx" {
		t.Errorf("List = %v", names)
	}

	if err := w.Remove("a.csv"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := w.Remove("a.csv"); !errors.Is(err, ErrExportNotFound) {
		t.Errorf("expected ErrExportNotFound, got %v", err)
	}
	if _, err := w.Path("a.csv"); !errors.Is(err, ErrExportNotFound) {
		t.Errorf("expected ErrExportNotFound, got %v", err)
	}
}
