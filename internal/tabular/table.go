package tabular

import (
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/danieljhkim/shiftgrid/internal/grid"
	"github.com/danieljhkim/shiftgrid/internal/workday"
)

// Fixed columns preceding the day columns.
const (
	ColName = iota
	ColD
	ColE
	ColN
	ColOff
	ColWorkDays

	// FixedColumns is the number of columns before day 1.
	FixedColumns
)

// Table is a sheet of string cells, header first.
type Table struct {
	SheetName string
	Rows      [][]string
}

// Width returns the number of columns the layout needs for daysInMonth.
func Width(daysInMonth int) int {
	return FixedColumns + daysInMonth
}

// DayColumn returns the zero-based column index holding day.
func DayColumn(day int) int {
	return FixedColumns - 1 + day
}

// Header builds the header row for daysInMonth.
func Header(daysInMonth int) []string {
	header := make([]string, 0, Width(daysInMonth))
	header = append(header, "Name", "D", "E", "N", "OFF", "WorkDays")
	for d := 1; d <= daysInMonth; d++ {
		header = append(header, strconv.Itoa(d))
	}
	return header
}

// SheetName returns the sheet title for a period label.
func SheetName(periodLabel string) string {
	if periodLabel == "" {
		return "schedule"
	}
	return periodLabel + " schedule"
}

// Serialize lays the grid out as a table: header, then one line per row in
// grid order. Unset days become empty cells and Selected is never written.
func Serialize(g *grid.Grid, daysInMonth int, periodLabel string, method workday.Method) Table {
	rows := make([][]string, 0, len(g.Rows)+1)
	rows = append(rows, Header(daysInMonth))

	for _, row := range g.Rows {
		counts := row.Counts()
		line := make([]string, 0, Width(daysInMonth))
		line = append(line,
			row.Name,
			strconv.Itoa(counts.D),
			strconv.Itoa(counts.E),
			strconv.Itoa(counts.N),
			strconv.Itoa(counts.Off),
			strconv.Itoa(workday.Count(counts, daysInMonth, method)),
		)
		for d := 1; d <= daysInMonth; d++ {
			line = append(line, string(row.Days[d]))
		}
		rows = append(rows, line)
	}

	return Table{SheetName: SheetName(periodLabel), Rows: rows}
}

// normalizeToken prepares a day cell for matching: trimmed, full-width
// characters folded to ASCII, upper-cased.
func normalizeToken(s string) string {
	return strings.ToUpper(width.Fold.String(strings.TrimSpace(s)))
}

// parseToken maps an import cell to a code. ok is false for anything outside
// D, E, N and /.
func parseToken(s string) (code grid.ShiftCode, ok bool) {
	switch tok := normalizeToken(s); tok {
	case "D":
		return grid.Day, true
	case "E":
		return grid.Evening, true
	case "N":
		return grid.Night, true
	case "/":
		return grid.Off, true
	default:
		return grid.Unset, false
	}
}

func isBlankRow(cells []string) bool {
	for _, cell := range cells {
		if cell != "" {
			return false
		}
	}
	return true
}
