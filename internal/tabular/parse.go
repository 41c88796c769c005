package tabular

import (
	"fmt"
	"strings"

	"github.com/danieljhkim/shiftgrid/internal/grid"
)

// Warning records a day cell that was ignored because its value is not a
// shift code. Import continues past it.
type Warning struct {
	// Line is the 1-based line of the table, header included
	Line int `json:"line"`

	// Name is the employee name on that line (may be empty)
	Name string `json:"name"`

	// Day is the calendar day of the cell
	Day int `json:"day"`

	// Value is the cell content as read
	Value string `json:"value"`
}

func (w Warning) String() string {
	name := w.Name
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("line %d, %s, day %d: %q is not a shift code (ignored)", w.Line, name, w.Day, w.Value)
}

// ParseResult holds the rows recovered from a table.
type ParseResult struct {
	Rows     []grid.EmployeeRow
	Warnings []Warning

	// Skipped counts data lines dropped for being blank or carrying neither
	// a name nor a valid code
	Skipped int
}

// Parse reads rows for a period of daysInMonth days out of t. It fails with
// a *SchemaError when the table is too small and with ErrNoValidRows when
// nothing usable remains. Unknown day values are recorded as warnings.
func Parse(t Table, daysInMonth int, periodLabel string) (*ParseResult, error) {
	expected := Width(daysInMonth)
	if len(t.Rows) < 2 {
		actual := 0
		if len(t.Rows) == 1 {
			actual = len(t.Rows[0])
		}
		return nil, &SchemaError{
			Period: periodLabel, DaysInMonth: daysInMonth,
			ExpectedColumns: expected, ActualColumns: actual, Rows: len(t.Rows),
		}
	}
	if header := t.Rows[0]; len(header) < expected {
		return nil, &SchemaError{
			Period: periodLabel, DaysInMonth: daysInMonth,
			ExpectedColumns: expected, ActualColumns: len(header), Rows: len(t.Rows),
		}
	}

	result := &ParseResult{}
	for i, cells := range t.Rows[1:] {
		line := i + 2
		if isBlankRow(cells) {
			result.Skipped++
			continue
		}

		row := grid.NewRow(daysInMonth)
		if len(cells) > ColName {
			row.Name = strings.TrimSpace(cells[ColName])
		}

		hasCode := false
		for day := 1; day <= daysInMonth; day++ {
			col := DayColumn(day)
			if col >= len(cells) || strings.TrimSpace(cells[col]) == "" {
				continue
			}
			code, ok := parseToken(cells[col])
			if !ok {
				result.Warnings = append(result.Warnings, Warning{
					Line: line, Name: row.Name, Day: day, Value: strings.TrimSpace(cells[col]),
				})
				continue
			}
			row.Days[day] = code
			hasCode = true
		}

		if row.Name == "" && !hasCode {
			result.Skipped++
			continue
		}
		result.Rows = append(result.Rows, row)
	}

	if len(result.Rows) == 0 {
		return nil, noValidRows()
	}
	return result, nil
}
