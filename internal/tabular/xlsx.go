package tabular

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const maxSheetNameLen = 31

// XLSX encodes tables as a single-sheet Excel workbook.
type XLSX struct{}

// Format returns FormatXLSX.
func (XLSX) Format() Format { return FormatXLSX }

// Encode writes t to a workbook with a styled header row. Count and
// WorkDays cells of data rows are written as numbers.
func (XLSX) Encode(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := sanitizeSheetName(t.SheetName)
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("failed to drop default sheet: %w", err)
		}
	}

	width := 0
	for i, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
		values := make([]interface{}, len(row))
		for j, cell := range row {
			values[j] = cell
			if i > 0 && j >= ColD && j <= ColWorkDays {
				if n, err := strconv.Atoi(cell); err == nil {
					values[j] = n
				}
			}
		}
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if width > 0 {
		if err := styleSheet(f, sheet, width, len(t.Rows)); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func styleSheet(f *excelize.File, sheet string, width, height int) error {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F46E5"}, Pattern: 1},
		Alignment: center,
		Border:    border,
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{Alignment: center, Border: border})
	if err != nil {
		return fmt.Errorf("failed to create body style: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(width)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}
	if height > 1 {
		if err := f.SetCellStyle(sheet, "A2", lastCol+strconv.Itoa(height), bodyStyle); err != nil {
			return err
		}
	}

	widths := map[string]float64{"A": 15, "B": 5, "C": 5, "D": 5, "E": 6, "F": 8}
	for col, w := range widths {
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	if width > FixedColumns {
		first, _ := excelize.ColumnNumberToName(FixedColumns + 1)
		if err := f.SetColWidth(sheet, first, lastCol, 5); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads the first sheet of a workbook.
func (XLSX) Decode(r io.Reader) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, fmt.Errorf("%w: workbook has no sheets", ErrDecode)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("%w: sheet %q: %v", ErrDecode, sheets[0], err)
	}
	return Table{SheetName: sheets[0], Rows: rows}, nil
}

func sanitizeSheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		return "Sheet1"
	}
	if runes := []rune(name); len(runes) > maxSheetNameLen {
		name = string(runes[:maxSheetNameLen])
	}
	return name
}
