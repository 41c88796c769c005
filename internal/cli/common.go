package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/danieljhkim/shiftgrid/internal/config"
	"github.com/danieljhkim/shiftgrid/internal/engine"
	"github.com/danieljhkim/shiftgrid/internal/fsops"
	"github.com/danieljhkim/shiftgrid/internal/hash"
	"github.com/danieljhkim/shiftgrid/internal/period"
	"github.com/danieljhkim/shiftgrid/internal/persist"
	"github.com/danieljhkim/shiftgrid/internal/source"
	"github.com/danieljhkim/shiftgrid/internal/state"
	"github.com/danieljhkim/shiftgrid/internal/tabular"
)

// stdout is where command output goes; tests swap it.
var stdout io.Writer = os.Stdout

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, *config.Paths, error) {
	conf := cfg
	if conf == nil {
		conf = config.DefaultConfig()
	}
	log := logger
	if log == nil {
		log = zap.NewNop()
	}

	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config paths: %w", err)
	}
	paths = paths.WithExportsDir(conf.ExportsDir)

	if err := paths.EnsureDirectories(); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	fs := fsops.NewRealFS()
	hasher := hash.NewSHA256Hasher()
	clk := &period.RealClock{}
	stateStore := state.NewFileStateStore(fs, paths.Grid, paths.Rules)
	exports := persist.NewExportWriter(fs, hasher, paths.Exports)

	format, err := tabular.ParseFormat(conf.ExportFormat)
	if err != nil {
		return nil, nil, err
	}
	settings := engine.Settings{
		ExportFormat:   format,
		CancelWait:     conf.CancelWait,
		MaxImportBytes: conf.MaxImportBytes,
	}

	return engine.New(stateStore, exports, fs, clk, log, settings), paths, nil
}

// parseRows reads zero-based row indexes from args.
func parseRows(args []string) ([]int, error) {
	rows := make([]int, 0, len(args))
	for _, arg := range args {
		idx, err := strconv.Atoi(arg)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("%w: %q is not a row number", engine.ErrValidation, arg)
		}
		rows = append(rows, idx)
	}
	return rows, nil
}

// parseDays reads day numbers and inclusive ranges such as 3-7.
func parseDays(spec string) ([]int, error) {
	var days []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		from, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a day", engine.ErrValidation, part)
		}
		to := from
		if isRange {
			if to, err = strconv.Atoi(hi); err != nil || to < from {
				return nil, fmt.Errorf("%w: %q is not a day range", engine.ErrValidation, part)
			}
		}
		for d := from; d <= to; d++ {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: no days given", engine.ErrValidation)
	}
	return days, nil
}

// formatJSON formats a value as JSON.
func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatError formats an error for display, with a hint for errors the
// user can act on.
func FormatError(err error) string {
	initColors()
	msg := errorColor.Sprintf("Error: %v", err)
	switch {
	case errors.Is(err, engine.ErrConfirmRequired):
		msg += "\n" + dimColor.Sprint("Rerun with --yes to continue.")
	case errors.Is(err, source.ErrCancelled):
		msg = warningColor.Sprint("Import cancelled.")
	}
	return msg
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// commandContext is cancelled on Ctrl-C, which abandons a pending file
// prompt.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
