package grid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MaxDaysInMonth is the longest month a grid can represent.
const MaxDaysInMonth = 31

// newID generates row ids. Tests replace it for stable output.
var newID = uuid.NewString

// EmployeeRow is one employee's line in the grid.
type EmployeeRow struct {
	// ID is assigned once when the row is created and never changes
	ID string `json:"id"`

	// Name is free text and may be empty
	Name string `json:"name"`

	// Selected is transient UI state; exports never include it
	Selected bool `json:"selected"`

	// Days maps every day 1..daysInMonth to its code
	Days map[int]ShiftCode `json:"days"`
}

// Counts holds per-code totals for one row.
type Counts struct {
	D   int `json:"d"`
	E   int `json:"e"`
	N   int `json:"n"`
	Off int `json:"off"`
}

// Of returns the count for a single code. Unset always yields 0.
func (c Counts) Of(code ShiftCode) int {
	switch code {
	case Day:
		return c.D
	case Evening:
		return c.E
	case Night:
		return c.N
	case Off:
		return c.Off
	default:
		return 0
	}
}

// Worked returns D+E+N.
func (c Counts) Worked() int {
	return c.D + c.E + c.N
}

// NewRow creates an unnamed, unselected row with every day Unset.
func NewRow(daysInMonth int) EmployeeRow {
	return EmployeeRow{
		ID:   newID(),
		Days: emptyDays(daysInMonth),
	}
}

func emptyDays(daysInMonth int) map[int]ShiftCode {
	days := make(map[int]ShiftCode, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		days[d] = Unset
	}
	return days
}

// DaysInMonth returns the number of day entries the row carries.
func (r EmployeeRow) DaysInMonth() int {
	return len(r.Days)
}

// Cell returns the code at day, or ErrOutOfRange.
func (r EmployeeRow) Cell(day int) (ShiftCode, error) {
	code, ok := r.Days[day]
	if !ok {
		return Unset, fmt.Errorf("%w: day %d not in 1..%d", ErrOutOfRange, day, len(r.Days))
	}
	return code, nil
}

// SetCell writes code at day. It never consults scheduling rules.
func (r *EmployeeRow) SetCell(day int, code ShiftCode) error {
	if _, ok := r.Days[day]; !ok {
		return fmt.Errorf("%w: day %d not in 1..%d", ErrOutOfRange, day, len(r.Days))
	}
	if !code.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCode, string(code))
	}
	r.Days[day] = code
	return nil
}

// Counts tallies D, E, N and Off across the row.
func (r EmployeeRow) Counts() Counts {
	var c Counts
	for _, code := range r.Days {
		switch code {
		case Day:
			c.D++
		case Evening:
			c.E++
		case Night:
			c.N++
		case Off:
			c.Off++
		}
	}
	return c
}

// TrimmedName is the name as used for conflict matching.
func (r EmployeeRow) TrimmedName() string {
	return strings.TrimSpace(r.Name)
}

// HasContent reports whether the row carries a name or any assigned code.
func (r EmployeeRow) HasContent() bool {
	if r.TrimmedName() != "" {
		return true
	}
	for _, code := range r.Days {
		if code != Unset {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the row.
func (r EmployeeRow) Clone() EmployeeRow {
	out := r
	out.Days = make(map[int]ShiftCode, len(r.Days))
	for d, code := range r.Days {
		out.Days[d] = code
	}
	return out
}

// validateDays checks the day-key invariant against daysInMonth.
func (r EmployeeRow) validateDays(daysInMonth int) error {
	if len(r.Days) != daysInMonth {
		return fmt.Errorf("%w: row %s has %d days, want %d", ErrDayKeys, r.ID, len(r.Days), daysInMonth)
	}
	for d := 1; d <= daysInMonth; d++ {
		code, ok := r.Days[d]
		if !ok {
			return fmt.Errorf("%w: row %s is missing day %d", ErrDayKeys, r.ID, d)
		}
		if !code.Valid() {
			return fmt.Errorf("%w: row %s day %d: %q", ErrInvalidCode, r.ID, d, string(code))
		}
	}
	return nil
}
