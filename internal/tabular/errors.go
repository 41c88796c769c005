package tabular

import (
	"errors"
	"fmt"
)

var (
	// ErrSchema indicates a table whose shape does not fit the period.
	ErrSchema = errors.New("table does not match the schedule layout")

	// ErrNoValidRows indicates an import in which no row survived.
	ErrNoValidRows = errors.New("no valid data rows found")

	// ErrUnsupportedFormat indicates a file type with no codec.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrDecode indicates bytes the codec could not read.
	ErrDecode = errors.New("failed to decode file")
)

// SchemaError describes a table too small for the active period.
type SchemaError struct {
	// Period is the label of the period the table was checked against
	Period string

	// DaysInMonth is the length of that period
	DaysInMonth int

	// ExpectedColumns is 6 + DaysInMonth
	ExpectedColumns int

	// ActualColumns is the header width found (0 when missing)
	ActualColumns int

	// Rows is the number of rows in the table
	Rows int
}

func (e *SchemaError) Error() string {
	if e.Rows < 2 {
		return fmt.Sprintf("%v: a header row and at least one data row are required (found %d rows)", ErrSchema, e.Rows)
	}
	return fmt.Sprintf("%v: %s (%d days) needs at least %d columns, file has %d; expected [Name, D, E, N, OFF, WorkDays, 1, 2, ..., %d]",
		ErrSchema, e.Period, e.DaysInMonth, e.ExpectedColumns, e.ActualColumns, e.DaysInMonth)
}

// Is lets errors.Is(err, ErrSchema) match a *SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

const noValidRowsHelp = `check that:
  1. the first column holds employee names
  2. the day columns (from the 7th column on) hold D, E, N or /
  3. a header row is followed by real data rows
  4. the layout has no extra leading column such as a checkbox`

func noValidRows() error {
	return fmt.Errorf("%w\n%s", ErrNoValidRows, noValidRowsHelp)
}
