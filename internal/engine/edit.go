package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/danieljhkim/shiftgrid/internal/grid"
	"github.com/danieljhkim/shiftgrid/internal/rules"
	"github.com/danieljhkim/shiftgrid/internal/workday"
)

// AddRow appends rows, one per name (or a single blank row).
func (e *Engine) AddRow(ctx context.Context, req *AddRowRequest) (*AddRowResult, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}

	g := s.grid.Clone()
	names := req.Names
	if len(names) == 0 {
		names = []string{""}
	}

	result := &AddRowResult{Indexes: make([]int, 0, len(names))}
	for _, name := range names {
		idx := g.AddRow()
		if err := g.SetName(idx, strings.TrimSpace(name)); err != nil {
			return nil, err
		}
		result.Indexes = append(result.Indexes, idx)
	}

	if err := e.saveGrid(s.period, g); err != nil {
		return nil, err
	}
	return result, nil
}

// Rename sets the name of one row. Conflict rules match on the trimmed
// name, so renaming can bring a row into or out of a rule.
func (e *Engine) Rename(ctx context.Context, req *RenameRequest) error {
	s, err := e.load()
	if err != nil {
		return err
	}
	if err := checkRow(s.grid, req.Row); err != nil {
		return err
	}

	g := s.grid.Clone()
	if err := g.SetName(req.Row, strings.TrimSpace(req.Name)); err != nil {
		return err
	}
	return e.saveGrid(s.period, g)
}

// Select changes the selection of some or all rows.
func (e *Engine) Select(ctx context.Context, req *SelectRequest) (*SelectResult, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}

	g := s.grid.Clone()
	if req.All {
		g.SelectAll(req.Selected)
	} else {
		if len(req.Rows) == 0 {
			return nil, fmt.Errorf("%w: no rows given", ErrValidation)
		}
		for _, idx := range req.Rows {
			if err := checkRow(g, idx); err != nil {
				return nil, err
			}
			if err := g.SetSelected(idx, req.Selected); err != nil {
				return nil, err
			}
		}
	}

	if err := e.saveGrid(s.period, g); err != nil {
		return nil, err
	}
	return &SelectResult{Selected: g.SelectedCount(), Total: g.Len()}, nil
}

// ParseCode reads a code as typed by a user: D, E, N, / or OFF in any case;
// "" or "-" clears the cell.
func ParseCode(s string) (grid.ShiftCode, error) {
	switch tok := strings.ToUpper(strings.TrimSpace(s)); tok {
	case "", "-":
		return grid.Unset, nil
	case "OFF":
		return grid.Off, nil
	default:
		code, err := grid.ParseShiftCode(tok)
		if err != nil {
			return grid.Unset, fmt.Errorf("%w: %q is not a shift code (use D, E, N, / or OFF; - clears)", ErrValidation, s)
		}
		return code, nil
	}
}

// SetCell assigns a code to days of a row. Every day is checked against the
// daily caps and then the conflict pairs. A rejection returns a
// *RejectedError and nothing is saved.
func (e *Engine) SetCell(ctx context.Context, req *SetCellRequest) (*SetCellResult, error) {
	code, err := ParseCode(req.Code)
	if err != nil {
		return nil, err
	}
	if len(req.Days) == 0 {
		return nil, fmt.Errorf("%w: no days given", ErrValidation)
	}

	s, err := e.load()
	if err != nil {
		return nil, err
	}
	if err := checkRow(s.grid, req.Row); err != nil {
		return nil, err
	}

	g := s.grid.Clone()
	acting := g.Rows[req.Row].Name
	for _, day := range req.Days {
		if err := g.CheckDay(day); err != nil {
			return nil, fmt.Errorf("%w: day %d is outside %s (1-%d)", ErrValidation, day, s.period.Label(), g.DaysInMonth)
		}
		verdict, err := rules.Evaluate(g, s.rules, req.Row, day, code)
		if err != nil {
			return nil, err
		}
		if !verdict.Allowed {
			msg := verdict.Message(displayName(acting))
			e.logger.Debug("edit rejected",
				zap.Int("row", req.Row),
				zap.Int("day", day),
				zap.String("code", string(code)),
				zap.String("reason", string(verdict.Reason)))
			return nil, &RejectedError{Verdict: verdict, Message: msg}
		}
		if err := g.SetCell(req.Row, day, code); err != nil {
			return nil, err
		}
	}

	if err := e.saveGrid(s.period, g); err != nil {
		return nil, err
	}

	row := g.Rows[req.Row]
	return &SetCellResult{
		Row:      req.Row,
		Name:     row.Name,
		Days:     req.Days,
		Code:     code,
		Counts:   row.Counts(),
		WorkDays: workday.ForRow(row, g.DaysInMonth, s.rules.CalculationMethod),
	}, nil
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "(unnamed)"
	}
	return strings.TrimSpace(name)
}

// DeleteSelected removes the selected rows. Removing every row needs Force;
// the grid is then refilled with one blank row.
func (e *Engine) DeleteSelected(ctx context.Context, req *DeleteRequest) (*DeleteResult, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	if s.grid.SelectedCount() == 0 {
		return nil, fmt.Errorf("%w: no rows are selected", ErrValidation)
	}
	if s.grid.WouldEmptyGrid() && !req.Force {
		return nil, fmt.Errorf("%w: every row is selected; deleting leaves a single blank row", ErrConfirmRequired)
	}

	g := s.grid.Clone()
	refilled := g.WouldEmptyGrid()
	removed := g.DeleteSelected()

	if err := e.saveGrid(s.period, g); err != nil {
		return nil, err
	}
	e.logger.Info("rows deleted", zap.Int("removed", removed), zap.Bool("refilled", refilled))
	return &DeleteResult{Removed: removed, Refilled: refilled}, nil
}

// ResetSelected clears name and days of the selected rows, keeping the rows.
func (e *Engine) ResetSelected(ctx context.Context) (*ResetResult, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	if s.grid.SelectedCount() == 0 {
		return nil, fmt.Errorf("%w: no rows are selected", ErrValidation)
	}

	g := s.grid.Clone()
	n := g.ResetSelected()

	if err := e.saveGrid(s.period, g); err != nil {
		return nil, err
	}
	return &ResetResult{Reset: n}, nil
}
