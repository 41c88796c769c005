package grid

import "fmt"

// Grid is the ordered set of rows for one month.
// DaysInMonth is fixed when the grid is created and shared by every row.
type Grid struct {
	DaysInMonth int           `json:"daysInMonth"`
	Rows        []EmployeeRow `json:"rows"`
}

// New creates a grid holding a single empty row.
func New(daysInMonth int) (*Grid, error) {
	if err := checkDaysInMonth(daysInMonth); err != nil {
		return nil, err
	}
	return &Grid{
		DaysInMonth: daysInMonth,
		Rows:        []EmployeeRow{NewRow(daysInMonth)},
	}, nil
}

// FromRows builds a grid around rows produced elsewhere (an import, a
// persisted record). Every row must carry exactly the days 1..daysInMonth.
func FromRows(daysInMonth int, rows []EmployeeRow) (*Grid, error) {
	g := &Grid{DaysInMonth: daysInMonth, Rows: rows}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func checkDaysInMonth(daysInMonth int) error {
	if daysInMonth < 1 || daysInMonth > MaxDaysInMonth {
		return fmt.Errorf("%w: daysInMonth %d not in 1..%d", ErrOutOfRange, daysInMonth, MaxDaysInMonth)
	}
	return nil
}

// Validate checks the grid invariants.
func (g *Grid) Validate() error {
	if err := checkDaysInMonth(g.DaysInMonth); err != nil {
		return err
	}
	for _, row := range g.Rows {
		if err := row.validateDays(g.DaysInMonth); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of rows.
func (g *Grid) Len() int {
	return len(g.Rows)
}

// Row returns a pointer to the row at index.
func (g *Grid) Row(index int) (*EmployeeRow, error) {
	if index < 0 || index >= len(g.Rows) {
		return nil, fmt.Errorf("%w: row %d not in 0..%d", ErrOutOfRange, index, len(g.Rows)-1)
	}
	return &g.Rows[index], nil
}

// CheckDay returns ErrOutOfRange unless day is in 1..DaysInMonth.
func (g *Grid) CheckDay(day int) error {
	if day < 1 || day > g.DaysInMonth {
		return fmt.Errorf("%w: day %d not in 1..%d", ErrOutOfRange, day, g.DaysInMonth)
	}
	return nil
}

// SetCell writes code into the given row and day.
func (g *Grid) SetCell(rowIndex, day int, code ShiftCode) error {
	if err := g.CheckDay(day); err != nil {
		return err
	}
	row, err := g.Row(rowIndex)
	if err != nil {
		return err
	}
	return row.SetCell(day, code)
}

// AddRow appends a fresh row and returns its index.
func (g *Grid) AddRow() int {
	g.Rows = append(g.Rows, NewRow(g.DaysInMonth))
	return len(g.Rows) - 1
}

// SetName renames the row at index.
func (g *Grid) SetName(index int, name string) error {
	row, err := g.Row(index)
	if err != nil {
		return err
	}
	row.Name = name
	return nil
}

// SetSelected toggles the selection flag of one row.
func (g *Grid) SetSelected(index int, selected bool) error {
	row, err := g.Row(index)
	if err != nil {
		return err
	}
	row.Selected = selected
	return nil
}

// SelectAll sets the selection flag on every row.
func (g *Grid) SelectAll(selected bool) {
	for i := range g.Rows {
		g.Rows[i].Selected = selected
	}
}

// AllSelected reports whether the grid is non-empty and every row is selected.
func (g *Grid) AllSelected() bool {
	return len(g.Rows) > 0 && g.SelectedCount() == len(g.Rows)
}

// SelectedCount returns how many rows are selected.
func (g *Grid) SelectedCount() int {
	n := 0
	for _, row := range g.Rows {
		if row.Selected {
			n++
		}
	}
	return n
}

// WouldEmptyGrid reports whether DeleteSelected would remove every row, in
// which case the grid refills itself with one blank row.
func (g *Grid) WouldEmptyGrid() bool {
	return g.AllSelected()
}

// HasUnsavedContent reports whether replacing the grid would discard data:
// any row with a name or an assigned code.
func (g *Grid) HasUnsavedContent() bool {
	for _, row := range g.Rows {
		if row.HasContent() {
			return true
		}
	}
	return false
}

// DeleteSelected removes every selected row and returns how many were
// removed. The grid is never left empty.
func (g *Grid) DeleteSelected() int {
	kept := make([]EmployeeRow, 0, len(g.Rows))
	for _, row := range g.Rows {
		if !row.Selected {
			kept = append(kept, row)
		}
	}
	removed := len(g.Rows) - len(kept)
	if len(kept) == 0 {
		kept = append(kept, NewRow(g.DaysInMonth))
	}
	g.Rows = kept
	return removed
}

// ResetSelected blanks every selected row in place, keeping its id, and
// clears the selection. It returns how many rows were reset.
func (g *Grid) ResetSelected() int {
	n := 0
	for i, row := range g.Rows {
		if !row.Selected {
			continue
		}
		fresh := NewRow(g.DaysInMonth)
		fresh.ID = row.ID
		g.Rows[i] = fresh
		n++
	}
	return n
}

// Replace swaps in a new row set. Rows must already match DaysInMonth.
func (g *Grid) Replace(rows []EmployeeRow) error {
	next := &Grid{DaysInMonth: g.DaysInMonth, Rows: rows}
	if err := next.Validate(); err != nil {
		return err
	}
	if len(rows) == 0 {
		rows = []EmployeeRow{NewRow(g.DaysInMonth)}
	}
	g.Rows = rows
	return nil
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{DaysInMonth: g.DaysInMonth, Rows: make([]EmployeeRow, len(g.Rows))}
	for i, row := range g.Rows {
		out.Rows[i] = row.Clone()
	}
	return out
}
