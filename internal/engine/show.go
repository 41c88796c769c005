package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/danieljhkim/shiftgrid/internal/grid"
	"github.com/danieljhkim/shiftgrid/internal/period"
	"github.com/danieljhkim/shiftgrid/internal/planner"
	"github.com/danieljhkim/shiftgrid/internal/workday"
)

// Show returns the saved schedule with per-row totals.
func (e *Engine) Show(ctx context.Context) (*ShowResult, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	return buildShow(s), nil
}

func buildShow(s *session) *ShowResult {
	days := s.grid.DaysInMonth
	result := &ShowResult{
		Period:      s.period.String(),
		Label:       s.period.Label(),
		DaysInMonth: days,
		Rows:        make([]RowView, 0, s.grid.Len()),
		Rules:       s.rules,
		Saved:       s.saved,
	}
	for i, row := range s.grid.Rows {
		view := RowView{
			Index:    i,
			ID:       row.ID,
			Name:     row.Name,
			Selected: row.Selected,
			Days:     make([]grid.ShiftCode, days),
			Counts:   row.Counts(),
			WorkDays: workday.ForRow(row, days, s.rules.CalculationMethod),
		}
		for d := 1; d <= days; d++ {
			view.Days[d-1] = row.Days[d]
		}
		result.Rows = append(result.Rows, view)
	}
	return result
}

// Init starts a new schedule for a period, replacing the saved grid. The
// work rules are kept.
func (e *Engine) Init(ctx context.Context, req *InitRequest) (*ShowResult, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}

	p := period.Current(e.clock)
	if strings.TrimSpace(req.Period) != "" {
		p, err = period.Parse(strings.TrimSpace(req.Period))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	if s.saved && s.grid.HasUnsavedContent() && !req.Force {
		return nil, fmt.Errorf("%w: the saved schedule for %s has names or shifts that would be discarded", ErrConfirmRequired, s.period.Label())
	}

	g, err := grid.New(p.DaysInMonth())
	if err != nil {
		return nil, err
	}
	for i := 1; i < req.Rows; i++ {
		g.AddRow()
	}

	if err := e.saveGrid(p, g); err != nil {
		return nil, err
	}
	e.logger.Info("schedule initialized", zap.String("period", p.String()), zap.Int("rows", g.Len()))

	s.period, s.grid, s.saved = p, g, true
	return buildShow(s), nil
}

// Check audits the saved schedule against the work rules.
func (e *Engine) Check(ctx context.Context) (*CheckResult, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	return &CheckResult{Violations: planner.Audit(s.grid, s.rules)}, nil
}
