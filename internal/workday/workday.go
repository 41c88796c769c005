// Package workday computes the effective workday count shown next to each
// employee and written to the WorkDays export column.
package workday

import (
	"fmt"

	"github.com/danieljhkim/shiftgrid/internal/grid"
)

// Method selects how workdays are counted.
type Method string

const (
	// SumWorked counts D + E + N.
	SumWorked Method = "sum"

	// TotalMinusOff counts daysInMonth minus OFF days. Unset days count as
	// worked under this policy.
	TotalMinusOff Method = "exclude_off"
)

// Methods lists the accepted methods.
var Methods = []Method{SumWorked, TotalMinusOff}

// ParseMethod validates a user-supplied method name.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case SumWorked, TotalMinusOff:
		return Method(s), nil
	default:
		return "", fmt.Errorf("unknown calculation method %q (want %q or %q)", s, SumWorked, TotalMinusOff)
	}
}

// Describe returns a short human description of the method.
func (m Method) Describe() string {
	switch m {
	case TotalMinusOff:
		return "days in month - OFF"
	default:
		return "D + E + N"
	}
}

// Count applies method to precomputed counts. Unknown methods fall back to
// SumWorked.
func Count(counts grid.Counts, daysInMonth int, method Method) int {
	if method == TotalMinusOff {
		return daysInMonth - counts.Off
	}
	return counts.Worked()
}

// ForRow counts the workdays of a single row.
func ForRow(row grid.EmployeeRow, daysInMonth int, method Method) int {
	return Count(row.Counts(), daysInMonth, method)
}
