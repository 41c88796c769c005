// Package engine provides the operations behind every shiftgrid command.
//
// The engine acts as the orchestration layer between CLI commands and the
// schedule packages. Each operation loads the saved schedule, works on a
// copy, checks edits against the work rules, and saves only when the whole
// operation succeeded, so a rejected or failed command never leaves partial
// changes on disk.
//
// Key components:
//   - Engine: Main orchestrator called by the CLI
//   - Grid edits: add, rename, select, set, delete, reset
//   - Import/Export: tabular files through the tabular codecs
//   - Rules: daily caps, calculation method, conflict pairs
package engine

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/danieljhkim/shiftgrid/internal/fsops"
	"github.com/danieljhkim/shiftgrid/internal/grid"
	"github.com/danieljhkim/shiftgrid/internal/period"
	"github.com/danieljhkim/shiftgrid/internal/persist"
	"github.com/danieljhkim/shiftgrid/internal/rules"
	"github.com/danieljhkim/shiftgrid/internal/source"
	"github.com/danieljhkim/shiftgrid/internal/state"
	"github.com/danieljhkim/shiftgrid/internal/tabular"
)

// Settings are the tunables the engine takes from configuration.
type Settings struct {
	// ExportFormat is used when an export request names none
	ExportFormat tabular.Format

	// CancelWait is the grace period after a file prompt is dismissed
	CancelWait time.Duration

	// MaxImportBytes is the largest accepted import
	MaxImportBytes int64
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		ExportFormat:   tabular.FormatXLSX,
		CancelWait:     source.DefaultCancelWait,
		MaxImportBytes: source.DefaultMaxBytes,
	}
}

// Engine orchestrates all shiftgrid operations.
// It is the main API surface called by the CLI.
type Engine struct {
	stateStore state.StateStore
	exports    *persist.ExportWriter
	fs         fsops.FS
	clock      period.Clock
	logger     *zap.Logger
	settings   Settings
}

// New creates a new Engine with the given dependencies.
func New(
	stateStore state.StateStore,
	exports *persist.ExportWriter,
	fs fsops.FS,
	clk period.Clock,
	logger *zap.Logger,
	settings Settings,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		stateStore: stateStore,
		exports:    exports,
		fs:         fs,
		clock:      clk,
		logger:     logger,
		settings:   settings,
	}
}

// session is the loaded schedule an operation works on.
type session struct {
	period period.Period
	grid   *grid.Grid
	rules  rules.WorkRules

	// saved is false when no grid record exists yet
	saved bool
}

// load reads the saved grid and rules, falling back to a one-row grid for
// the current month and the default rules.
func (e *Engine) load() (*session, error) {
	s := &session{}

	rec, err := e.stateStore.LoadGrid()
	switch {
	case err == nil:
		p, err := rec.Period()
		if err != nil {
			return nil, fmt.Errorf("failed to load grid: %w", err)
		}
		g, err := rec.Grid()
		if err != nil {
			return nil, fmt.Errorf("failed to load grid: %w", err)
		}
		s.period, s.grid, s.saved = p, g, true
	case errors.Is(err, os.ErrNotExist):
		s.period = period.Current(e.clock)
		g, err := grid.New(s.period.DaysInMonth())
		if err != nil {
			return nil, err
		}
		s.grid = g
	default:
		return nil, fmt.Errorf("failed to load grid: %w", err)
	}

	rulesRec, err := e.stateStore.LoadRules()
	switch {
	case err == nil:
		wr, err := rulesRec.Rules()
		if err != nil {
			return nil, fmt.Errorf("failed to load rules: %w", err)
		}
		s.rules = wr
	case errors.Is(err, os.ErrNotExist):
		s.rules = rules.Default()
	default:
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	return s, nil
}

// saveGrid persists g for p.
func (e *Engine) saveGrid(p period.Period, g *grid.Grid) error {
	if err := e.stateStore.SaveGrid(state.NewGridRecord(p, g)); err != nil {
		return err
	}
	e.logger.Debug("grid saved", zap.String("period", p.String()), zap.Int("rows", g.Len()))
	return nil
}

// saveRules persists wr.
func (e *Engine) saveRules(wr rules.WorkRules) error {
	if err := e.stateStore.SaveRules(state.NewRulesRecord(wr)); err != nil {
		return err
	}
	e.logger.Debug("rules saved",
		zap.Bool("limitsEnabled", wr.DailyLimits.Enabled),
		zap.String("method", string(wr.CalculationMethod)),
		zap.Int("conflictRules", len(wr.ConflictRules)))
	return nil
}

// checkRow validates a row index against g.
func checkRow(g *grid.Grid, index int) error {
	if _, err := g.Row(index); err != nil {
		return fmt.Errorf("%w: row %d does not exist (rows 0-%d)", ErrValidation, index, g.Len()-1)
	}
	return nil
}
