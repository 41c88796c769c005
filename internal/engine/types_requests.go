package engine

import "github.com/danieljhkim/shiftgrid/internal/source"

// InitRequest represents a request to start a new schedule.
type InitRequest struct {
	// Period is "YYYY-MM"; empty means the current month
	Period string

	// Rows is the number of blank rows to start with (minimum 1)
	Rows int

	// Force discards an existing schedule with content
	Force bool
}

// AddRowRequest represents a request to append employee rows.
type AddRowRequest struct {
	// Names of the new rows; one blank row is added when empty
	Names []string
}

// RenameRequest represents a request to rename a row.
type RenameRequest struct {
	// Row is the zero-based row index
	Row int

	// Name is the new employee name
	Name string
}

// SelectRequest represents a request to change row selection.
type SelectRequest struct {
	// Rows are zero-based row indexes; ignored when All is set
	Rows []int

	// All applies Selected to every row
	All bool

	// Selected is the new selection state
	Selected bool
}

// SetCellRequest represents a request to assign a code to one or more days
// of a row. Each day is checked against the work rules before it is applied;
// the first rejected day stops the request and nothing is saved.
type SetCellRequest struct {
	// Row is the zero-based row index
	Row int

	// Days are the calendar days to set
	Days []int

	// Code is D, E, N, / (or OFF); "" or "-" clears the cell
	Code string
}

// DeleteRequest represents a request to delete the selected rows.
type DeleteRequest struct {
	// Force allows deleting every row (the grid then refills with one
	// blank row)
	Force bool
}

// ExportRequest represents a request to export the schedule.
type ExportRequest struct {
	// Format is "xlsx" or "csv"; empty uses the configured default
	Format string

	// Save writes the file into the exports directory
	Save bool
}

// ImportRequest represents a request to replace the schedule from a file.
type ImportRequest struct {
	// Picker supplies the file
	Picker source.Picker

	// Force replaces a schedule that has content without asking
	Force bool

	// DryRun plans the import without changing anything
	DryRun bool
}

// RulesRequest represents a change to the work rules. Only set fields are
// applied.
type RulesRequest struct {
	// Limits maps a code (D, E, N, /) to its new daily cap
	Limits map[string]int

	// LimitsEnabled turns the daily cap check on or off
	LimitsEnabled *bool

	// Method is "sum" or "exclude_off"
	Method string

	// AddConflict is a pair of names that may not share a shift
	AddConflict []string

	// RemoveConflict is a pair to delete
	RemoveConflict []string
}

// WipeRequest represents a request to delete all saved data.
type WipeRequest struct {
	// Force is required when saved data exists
	Force bool
}
