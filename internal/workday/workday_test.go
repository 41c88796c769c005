package workday

import (
	"testing"

	"github.com/danieljhkim/shiftgrid/internal/grid"
)

func rowWith(t *testing.T, days int, codes map[int]grid.ShiftCode) grid.EmployeeRow {
	t.Helper()
	row := grid.NewRow(days)
	for d, code := range codes {
		if err := row.SetCell(d, code); err != nil {
			t.Fatalf("SetCell(%d): %v", d, err)
		}
	}
	return row
}

func TestForRow(t *testing.T) {
	mixed := map[int]grid.ShiftCode{1: grid.Day, 2: grid.Evening, 3: grid.Night, 4: grid.Off, 5: grid.Off, 6: grid.Day}

	tests := []struct {
		name   string
		days   int
		codes  map[int]grid.ShiftCode
		method Method
		want   int
	}{
		{name: "sum on mixed row", days: 30, codes: mixed, method: SumWorked, want: 4},
		{name: "exclude off on mixed row", days: 30, codes: mixed, method: TotalMinusOff, want: 28},
		{name: "sum on blank row", days: 31, method: SumWorked, want: 0},
		{name: "exclude off on blank row counts unset as worked", days: 31, method: TotalMinusOff, want: 31},
		{name: "unknown method falls back to sum", days: 30, codes: mixed, method: Method("weird"), want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := rowWith(t, tt.days, tt.codes)
			if got := ForRow(row, tt.days, tt.method); got != tt.want {
				t.Errorf("ForRow() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range Methods {
		got, err := ParseMethod(string(m))
		if err != nil || got != m {
			t.Errorf("ParseMethod(%q) = %q, %v", m, got, err)
		}
	}
	if _, err := ParseMethod("average"); err == nil {
		t.Error("ParseMethod(average) should fail")
	}
}
