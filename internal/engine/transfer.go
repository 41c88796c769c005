package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/danieljhkim/shiftgrid/internal/persist"
	"github.com/danieljhkim/shiftgrid/internal/planner"
	"github.com/danieljhkim/shiftgrid/internal/source"
	"github.com/danieljhkim/shiftgrid/internal/tabular"
)

// Export serializes the schedule. The file name embeds the period and
// today's date. With Save the bytes are also written to the exports dir.
func (e *Engine) Export(ctx context.Context, req *ExportRequest) (*ExportResult, error) {
	format := e.settings.ExportFormat
	if req.Format != "" {
		f, err := tabular.ParseFormat(req.Format)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		format = f
	}
	codec, err := tabular.CodecFor(format)
	if err != nil {
		return nil, err
	}

	s, err := e.load()
	if err != nil {
		return nil, err
	}

	table := tabular.Serialize(s.grid, s.grid.DaysInMonth, s.period.Label(), s.rules.CalculationMethod)
	var buf bytes.Buffer
	if err := codec.Encode(&buf, table); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}

	result := &ExportResult{
		FileName: tabular.ExportFileName(s.period, e.clock.Now(), format),
		Data:     buf.Bytes(),
		Format:   format,
		RowCount: s.grid.Len(),
	}

	if req.Save {
		saved, err := e.exports.Write(result.FileName, result.Data)
		if err != nil {
			return nil, err
		}
		result.Path = saved.Path
		result.Checksum = saved.Checksum
		e.logger.Debug("export written", zap.String("path", saved.Path), zap.Int("bytes", saved.Size))
	}
	return result, nil
}

// ListExports returns the files in the exports directory.
func (e *Engine) ListExports(ctx context.Context) (*ExportsResult, error) {
	files, err := e.exports.List(tabular.AllowedExtensions...)
	if err != nil {
		return nil, err
	}
	return &ExportsResult{Dir: e.exports.Dir(), Files: files}, nil
}

// PathPicker returns a picker for a file path, bounded by the import limit.
func (e *Engine) PathPicker(path string) source.Picker {
	return &source.PathPicker{FS: e.fs, Path: path, Limit: e.settings.MaxImportBytes}
}

// ExportPicker returns a picker for a file in the exports directory.
func (e *Engine) ExportPicker(name string) (source.Picker, error) {
	path, err := e.exports.Path(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return e.PathPicker(path), nil
}

// PromptPicker returns a picker that asks for a path on out and reads the
// answer from in.
func (e *Engine) PromptPicker(in io.Reader, out io.Writer) source.Picker {
	return &source.PromptPicker{
		In:     in,
		Out:    out,
		Prompt: "File to import (.xlsx or .csv, empty to cancel): ",
		FS:     e.fs,
		Limit:  e.settings.MaxImportBytes,
	}
}

// RemoveExport deletes a saved export.
func (e *Engine) RemoveExport(ctx context.Context, name string) error {
	if err := e.exports.Remove(name); err != nil {
		if errors.Is(err, persist.ErrExportNotFound) {
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return err
	}
	e.logger.Debug("export removed", zap.String("name", name))
	return nil
}

// VerifyExport checks a saved export against the checksum reported when it
// was written.
func (e *Engine) VerifyExport(ctx context.Context, name, checksum string) error {
	if err := e.exports.Verify(name, checksum); err != nil {
		if errors.Is(err, persist.ErrExportNotFound) {
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return err
	}
	return nil
}

// Import replaces the schedule with rows read from a file. The file is
// acquired, decoded and parsed against the saved period before anything
// changes; a schedule with content is only replaced with Force. Cancelling
// the file choice returns an error matching source.ErrCancelled.
func (e *Engine) Import(ctx context.Context, req *ImportRequest) (*ImportResult, error) {
	if req.Picker == nil {
		return nil, fmt.Errorf("%w: no file source", ErrValidation)
	}

	file, err := source.Acquire(ctx, req.Picker, source.Options{
		CancelWait:        e.settings.CancelWait,
		MaxBytes:          e.settings.MaxImportBytes,
		AllowedExtensions: tabular.AllowedExtensions,
	})
	if err != nil {
		if errors.Is(err, source.ErrCancelled) {
			e.logger.Debug("import cancelled", zap.Error(err))
		}
		return nil, err
	}

	result := &ImportResult{FileName: file.Name, Warnings: []tabular.Warning{}}
	fail := func(err error) (*ImportResult, error) {
		result.Error = err.Error()
		e.logger.Debug("import failed", zap.String("file", file.Name), zap.Error(err))
		return result, err
	}

	format, err := tabular.FormatForFileName(file.Name)
	if err != nil {
		return fail(err)
	}
	codec, err := tabular.CodecFor(format)
	if err != nil {
		return fail(err)
	}
	table, err := codec.Decode(bytes.NewReader(file.Data))
	if err != nil {
		return fail(err)
	}

	s, err := e.load()
	if err != nil {
		return nil, err
	}

	parsed, err := tabular.Parse(table, s.grid.DaysInMonth, s.period.Label())
	if err != nil {
		return fail(err)
	}
	result.Warnings = append(result.Warnings, parsed.Warnings...)
	result.Skipped = parsed.Skipped
	result.RowCount = len(parsed.Rows)
	for _, w := range parsed.Warnings {
		e.logger.Warn("invalid shift code ignored",
			zap.String("file", file.Name),
			zap.Int("line", w.Line),
			zap.String("name", w.Name),
			zap.Int("day", w.Day),
			zap.String("value", w.Value))
	}

	plan, err := planner.PlanImport(s.grid, parsed.Rows, s.rules)
	if err != nil {
		return fail(err)
	}
	result.Plan = plan

	if req.DryRun {
		result.Success = true
		return result, nil
	}
	if plan.DataLoss && !req.Force {
		return result, fmt.Errorf("%w: importing %s replaces the current schedule", ErrConfirmRequired, file.Name)
	}

	g := s.grid.Clone()
	if err := g.Replace(parsed.Rows); err != nil {
		return fail(err)
	}
	if err := e.saveGrid(s.period, g); err != nil {
		return fail(err)
	}

	result.Success = true
	result.Applied = true
	result.Rows = parsed.Rows
	e.logger.Info("schedule imported",
		zap.String("file", file.Name),
		zap.Int("rows", result.RowCount),
		zap.Int("warnings", len(result.Warnings)),
		zap.Int("violations", len(plan.Violations)))
	return result, nil
}
