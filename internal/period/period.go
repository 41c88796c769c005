// Package period identifies the month a schedule covers and derives its
// length.
package period

import (
	"fmt"
	"time"
)

// Period is a calendar month.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// New validates year and month.
func New(year int, month time.Month) (Period, error) {
	if month < time.January || month > time.December {
		return Period{}, fmt.Errorf("invalid month %d", month)
	}
	if year < 1 || year > 9999 {
		return Period{}, fmt.Errorf("invalid year %d", year)
	}
	return Period{Year: year, Month: month}, nil
}

// Parse reads a "YYYY-MM" string.
func Parse(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q, use YYYY-MM", s)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// Current returns the month containing clk.Now().
func Current(clk Clock) Period {
	now := clk.Now()
	return Period{Year: now.Year(), Month: now.Month()}
}

// DaysInMonth returns the number of days in the period.
func (p Period) DaysInMonth() int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// String formats the period as YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Label is the human title used in sheet names and messages.
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// IsZero reports whether p was never set.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}
