package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/danieljhkim/shiftgrid/internal/config"
	"github.com/danieljhkim/shiftgrid/internal/engine"
	"github.com/danieljhkim/shiftgrid/internal/fsops"
	"github.com/danieljhkim/shiftgrid/internal/grid"
	"github.com/danieljhkim/shiftgrid/internal/hash"
	"github.com/danieljhkim/shiftgrid/internal/period"
	"github.com/danieljhkim/shiftgrid/internal/persist"
	"github.com/danieljhkim/shiftgrid/internal/state"
)

// testFS is a filesystem implementation that tracks files in memory for testing
type testFS struct {
	files map[string][]byte
	dirs  map[string]bool

	// writes counts AtomicWrite calls per path
	writes map[string]int
}

func newTestFS() *testFS {
	return &testFS{
		files:  make(map[string][]byte),
		dirs:   make(map[string]bool),
		writes: make(map[string]int),
	}
}

func (fs *testFS) MkdirAll(path string, perm os.FileMode) error {
	for p := path; p != "." && p != string(filepath.Separator); p = filepath.Dir(p) {
		fs.dirs[p] = true
	}
	return nil
}

func (fs *testFS) Remove(path string) error {
	delete(fs.files, path)
	delete(fs.dirs, path)
	return nil
}

func (fs *testFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	fs.files[path] = append([]byte(nil), data...)
	fs.writes[path]++
	return nil
}

func (fs *testFS) ReadFile(path string) ([]byte, error) {
	if content, ok := fs.files[path]; ok {
		return append([]byte(nil), content...), nil
	}
	return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
}

func (fs *testFS) ReadFileLimit(path string, limit int64) ([]byte, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s is %d bytes", fsops.ErrTooLarge, path, len(data))
	}
	return data, nil
}

func (fs *testFS) Exists(path string) (bool, error) {
	_, hasFile := fs.files[path]
	return hasFile || fs.dirs[path], nil
}

func (fs *testFS) ListFiles(dir string, exts ...string) ([]string, error) {
	var names []string
	for p := range fs.files {
		if filepath.Dir(p) != dir {
			continue
		}
		name := filepath.Base(p)
		if len(exts) > 0 && !hasExt(name, exts) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func (fs *testFS) ValidateFileName(name string) error {
	return fsops.NewRealFS().ValidateFileName(name)
}

// testStateStore is an in-memory state store for testing
type testStateStore struct {
	grid  *state.GridRecord
	rules *state.RulesRecord
}

func newTestStateStore() *testStateStore {
	return &testStateStore{}
}

func (s *testStateStore) LoadGrid() (*state.GridRecord, error) {
	if s.grid == nil {
		return nil, os.ErrNotExist
	}
	// Return a copy
	rec := *s.grid
	rec.Rows = cloneRows(s.grid)
	return &rec, nil
}

func (s *testStateStore) SaveGrid(rec *state.GridRecord) error {
	// Save a copy
	cp := *rec
	cp.Rows = cloneRows(rec)
	s.grid = &cp
	return nil
}

func (s *testStateStore) LoadRules() (*state.RulesRecord, error) {
	if s.rules == nil {
		return nil, os.ErrNotExist
	}
	rec := *s.rules
	return &rec, nil
}

func (s *testStateStore) SaveRules(rec *state.RulesRecord) error {
	cp := *rec
	s.rules = &cp
	return nil
}

func (s *testStateStore) Wipe() error {
	s.grid, s.rules = nil, nil
	return nil
}

func cloneRows(rec *state.GridRecord) []grid.EmployeeRow {
	rows := make([]grid.EmployeeRow, len(rec.Rows))
	for i, r := range rec.Rows {
		rows[i] = r.Clone()
	}
	return rows
}

// testEnv bundles an engine with its in-memory dependencies.
type testEnv struct {
	eng   *engine.Engine
	fs    *testFS
	store *testStateStore
	clock *period.FakeClock
	paths *config.Paths
}

func setupTestEngine(t *testing.T) *testEnv {
	t.Helper()
	fs := newTestFS()
	store := newTestStateStore()
	clk := period.NewFakeClock(time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC))
	paths := config.PathsAt("/test")

	eng := engine.New(
		store,
		persist.NewExportWriter(fs, hash.NewFakeHasher(), paths.Exports),
		fs,
		clk,
		zap.NewNop(),
		engine.DefaultSettings(),
	)
	return &testEnv{eng: eng, fs: fs, store: store, clock: clk, paths: paths}
}
