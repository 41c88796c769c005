package planner

import (
	"fmt"

	"github.com/danieljhkim/shiftgrid/internal/grid"
	"github.com/danieljhkim/shiftgrid/internal/rules"
)

// PlanImport compares the current grid with incoming rows. Rows are matched
// by trimmed name in order; unnamed rows never match. incoming must already
// fit current.DaysInMonth.
func PlanImport(current *grid.Grid, incoming []grid.EmployeeRow, wr rules.WorkRules) (*ImportPlan, error) {
	next, err := grid.FromRows(current.DaysInMonth, incoming)
	if err != nil {
		return nil, fmt.Errorf("incoming rows do not fit the grid: %w", err)
	}

	plan := NewImportPlan()
	plan.DataLoss = current.HasUnsavedContent()

	// name -> indexes of current rows not yet matched
	unmatched := make(map[string][]int)
	for i, row := range current.Rows {
		if name := row.TrimmedName(); name != "" {
			unmatched[name] = append(unmatched[name], i)
		}
	}
	matched := make(map[int]bool)

	for _, row := range next.Rows {
		op := Operation{Type: OpAdd, Name: row.Name, Assigned: assigned(row)}
		name := row.TrimmedName()
		if idx := unmatched[name]; name != "" && len(idx) > 0 {
			op.Type = OpReplace
			op.Previous = assigned(current.Rows[idx[0]])
			matched[idx[0]] = true
			unmatched[name] = idx[1:]
		}
		plan.AddOperation(op)
	}

	for i, row := range current.Rows {
		if matched[i] || !row.HasContent() {
			continue
		}
		plan.AddOperation(Operation{Type: OpDrop, Name: row.Name, Assigned: assigned(row)})
	}

	plan.Violations = Audit(next, wr)
	return plan, nil
}

func assigned(row grid.EmployeeRow) int {
	c := row.Counts()
	return c.D + c.E + c.N + c.Off
}

// Audit lists every rule breach in g, ordered by day. Within a day cap
// breaches come first (in D, E, N, Off order), then conflicts in row order.
// Disabled limits are not audited.
func Audit(g *grid.Grid, wr rules.WorkRules) []Violation {
	violations := []Violation{}

	for day := 1; day <= g.DaysInMonth; day++ {
		if wr.DailyLimits.Enabled {
			for _, code := range grid.Codes {
				count := rules.Occupancy(g, -1, day, code)
				limit := wr.DailyLimits.Caps.Of(code)
				if count <= limit {
					continue
				}
				violations = append(violations, Violation{
					Reason: rules.ReasonLimitExceeded,
					Day:    day,
					Code:   code,
					Names:  holders(g, day, code),
					Count:  count,
					Cap:    limit,
				})
			}
		}

		for i, row := range g.Rows {
			code := row.Days[day]
			if !code.IsWork() || row.TrimmedName() == "" {
				continue
			}
			partners := wr.PartnersOf(row.TrimmedName())
			for j := i + 1; j < len(g.Rows); j++ {
				other := g.Rows[j]
				if other.Days[day] != code || !contains(partners, other.TrimmedName()) {
					continue
				}
				violations = append(violations, Violation{
					Reason: rules.ReasonConflict,
					Day:    day,
					Code:   code,
					Names:  []string{row.TrimmedName(), other.TrimmedName()},
				})
			}
		}
	}
	return violations
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func holders(g *grid.Grid, day int, code grid.ShiftCode) []string {
	var names []string
	for _, row := range g.Rows {
		if row.Days[day] == code {
			name := row.TrimmedName()
			if name == "" {
				name = "(unnamed)"
			}
			names = append(names, name)
		}
	}
	return names
}

// Describe renders a violation for the operator.
func (v Violation) Describe() string {
	switch v.Reason {
	case rules.ReasonLimitExceeded:
		return fmt.Sprintf("day %d: %d employees on %s, cap is %d (%v)", v.Day, v.Count, v.Code.Label(), v.Cap, v.Names)
	case rules.ReasonConflict:
		return fmt.Sprintf("day %d: %s and %s both on %s", v.Day, v.Names[0], v.Names[1], v.Code.Label())
	default:
		return fmt.Sprintf("day %d: %s", v.Day, v.Reason)
	}
}
