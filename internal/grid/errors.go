package grid

import "errors"

var (
	// ErrOutOfRange indicates a day or row index outside the grid.
	ErrOutOfRange = errors.New("out of range")

	// ErrInvalidCode indicates a value outside the closed ShiftCode set.
	ErrInvalidCode = errors.New("invalid shift code")

	// ErrDayKeys indicates a row whose day keys differ from 1..daysInMonth.
	ErrDayKeys = errors.New("row day keys do not match the period")
)
