package state

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danieljhkim/shiftgrid/internal/fsops"
)

// StateStore provides an interface for persisting the schedule and its rules.
type StateStore interface {
	// LoadGrid loads the grid record.
	// Returns os.ErrNotExist if no grid has been saved.
	LoadGrid() (*GridRecord, error)

	// SaveGrid saves the grid record atomically.
	SaveGrid(rec *GridRecord) error

	// LoadRules loads the rules record.
	// Returns os.ErrNotExist if no rules have been saved.
	LoadRules() (*RulesRecord, error)

	// SaveRules saves the rules record atomically.
	SaveRules(rec *RulesRecord) error

	// Wipe deletes both records.
	Wipe() error
}

// FileStateStore implements StateStore using JSON files on disk.
type FileStateStore struct {
	fs        fsops.FS
	gridPath  string
	rulesPath string
}

// NewFileStateStore creates a new FileStateStore.
func NewFileStateStore(fs fsops.FS, gridPath, rulesPath string) *FileStateStore {
	return &FileStateStore{
		fs:        fs,
		gridPath:  gridPath,
		rulesPath: rulesPath,
	}
}

// LoadGrid loads the grid record.
func (s *FileStateStore) LoadGrid() (*GridRecord, error) {
	var rec GridRecord
	if err := s.load(s.gridPath, "grid", &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// SaveGrid saves the grid record atomically.
func (s *FileStateStore) SaveGrid(rec *GridRecord) error {
	return s.save(s.gridPath, "grid", rec)
}

// LoadRules loads the rules record.
func (s *FileStateStore) LoadRules() (*RulesRecord, error) {
	var rec RulesRecord
	if err := s.load(s.rulesPath, "rules", &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// SaveRules saves the rules record atomically.
func (s *FileStateStore) SaveRules(rec *RulesRecord) error {
	return s.save(s.rulesPath, "rules", rec)
}

// Wipe deletes both records. Missing records are ignored.
func (s *FileStateStore) Wipe() error {
	for _, path := range []string{s.gridPath, s.rulesPath} {
		if err := s.fs.Remove(path); err != nil {
			return fmt.Errorf("failed to delete %s: %w", path, err)
		}
	}
	return nil
}

func (s *FileStateStore) load(path, what string, v any) error {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return os.ErrNotExist
		}
		return fmt.Errorf("failed to read %s state: %w", what, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s state: %w", what, err)
	}
	return nil
}

func (s *FileStateStore) save(path, what string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s state: %w", what, err)
	}

	if err := s.fs.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s state: %w", what, err)
	}
	return nil
}
