package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/danieljhkim/shiftgrid/internal/engine"
	"github.com/danieljhkim/shiftgrid/internal/source"
)

func TestFormatJSON(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{name: "simple map", input: map[string]string{"key": "value"}},
		{name: "empty map", input: map[string]string{}},
		{name: "array", input: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatJSON(tt.input)
			if err != nil {
				t.Fatalf("formatJSON() error = %v", err)
			}

			var v interface{}
			if err := json.Unmarshal([]byte(got), &v); err != nil {
				t.Errorf("formatJSON() produced invalid JSON: %v", err)
			}
		})
	}
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "plain", err: os.ErrNotExist, want: "Error:"},
		{name: "needs confirmation", err: fmt.Errorf("%w: rows would be lost", engine.ErrConfirmRequired), want: "--yes"},
		{name: "cancelled", err: fmt.Errorf("%w: no file", source.ErrCancelled), want: "Import cancelled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatError(tt.err)
			if !strings.Contains(got, tt.want) {
				t.Errorf("FormatError() = %q, expected to contain %q", got, tt.want)
			}
		})
	}
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	oldStdout := stdout
	stdout = &buf
	defer func() { stdout = oldStdout }()

	if err := outputJSON(map[string]string{"test": "value"}); err != nil {
		t.Fatalf("outputJSON() error = %v", err)
	}

	var v map[string]string
	if err := json.Unmarshal(buf.Bytes(), &v); err != nil {
		t.Errorf("outputJSON() produced invalid JSON: %v", err)
	}
	if v["test"] != "value" {
		t.Errorf("outputJSON() = %v", v)
	}
}

func TestParseDays(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{in: "5", want: []int{5}},
		{in: "1,3,5", want: []int{1, 3, 5}},
		{in: "10-13", want: []int{10, 11, 12, 13}},
		{in: "1, 4-5", want: []int{1, 4, 5}},
		{in: "", wantErr: true},
		{in: "x", wantErr: true},
		{in: "7-3", wantErr: true},
		{in: "3-", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDays(tt.in)
			if tt.wantErr {
				if !errors.Is(err, engine.ErrValidation) {
					t.Errorf("parseDays(%q) error = %v, want ErrValidation", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDays(%q) error = %v", tt.in, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseDays(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseRows(t *testing.T) {
	got, err := parseRows([]string{"0", "2"})
	if err != nil {
		t.Fatalf("parseRows() error = %v", err)
	}
	if !reflect.DeepEqual(got, []int{0, 2}) {
		t.Errorf("parseRows() = %v", got)
	}

	for _, bad := range []string{"-1", "one"} {
		if _, err := parseRows([]string{bad}); !errors.Is(err, engine.ErrValidation) {
			t.Errorf("parseRows(%q) error = %v, want ErrValidation", bad, err)
		}
	}
}

func TestPrintFunctions(t *testing.T) {
	var buf bytes.Buffer
	oldStdout := stdout
	stdout = &buf
	defer func() { stdout = oldStdout }()

	PrintSuccess("Success message")
	PrintWarning("Warning message")
	PrintInfo("Info message")
	PrintTable([]string{"A", "B"}, [][]string{{"1", "2"}})

	for _, want := range []string{"Success message", "Warning message", "Info message", "A", "-"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q: %q", want, buf.String())
		}
	}

	if got := PrintCount(1, "row", "rows"); got != "1 row" {
		t.Errorf("PrintCount(1) = %q", got)
	}
	if got := PrintCount(3, "row", "rows"); got != "3 rows" {
		t.Errorf("PrintCount(3) = %q", got)
	}
}
