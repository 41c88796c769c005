package grid

import (
	"encoding/json"
	"fmt"
)

// ShiftCode is the value of a single grid cell.
type ShiftCode string

// Shift codes. The string values are the symbols used on screen and in
// exported files.
const (
	Unset   ShiftCode = ""
	Day     ShiftCode = "D"
	Evening ShiftCode = "E"
	Night   ShiftCode = "N"
	Off     ShiftCode = "/"
)

// Codes lists the assignable codes in display order (D, E, N, OFF).
var Codes = []ShiftCode{Day, Evening, Night, Off}

// ParseShiftCode maps a symbol to its ShiftCode. The empty string is Unset.
func ParseShiftCode(s string) (ShiftCode, error) {
	switch ShiftCode(s) {
	case Unset, Day, Evening, Night, Off:
		return ShiftCode(s), nil
	default:
		return Unset, fmt.Errorf("%w: %q", ErrInvalidCode, s)
	}
}

// Valid reports whether c is one of the five known states.
func (c ShiftCode) Valid() bool {
	_, err := ParseShiftCode(string(c))
	return err == nil
}

// IsWork reports whether c is a worked shift (D, E or N).
func (c ShiftCode) IsWork() bool {
	return c == Day || c == Evening || c == Night
}

// Label returns the column heading used for the code (OFF for "/").
func (c ShiftCode) Label() string {
	switch c {
	case Off:
		return "OFF"
	case Unset:
		return "-"
	default:
		return string(c)
	}
}

func (c ShiftCode) String() string {
	return c.Label()
}

// UnmarshalJSON rejects symbols outside the closed set so persisted records
// can't smuggle free text into the grid.
func (c *ShiftCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseShiftCode(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
