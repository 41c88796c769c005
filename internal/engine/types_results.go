package engine

import (
	"github.com/danieljhkim/shiftgrid/internal/grid"
	"github.com/danieljhkim/shiftgrid/internal/planner"
	"github.com/danieljhkim/shiftgrid/internal/rules"
	"github.com/danieljhkim/shiftgrid/internal/tabular"
)

// RowView is one row as displayed.
type RowView struct {
	// Index is the zero-based row index used by other commands
	Index int `json:"index"`

	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Selected bool             `json:"selected"`
	Days     []grid.ShiftCode `json:"days"`
	Counts   grid.Counts      `json:"counts"`
	WorkDays int              `json:"workDays"`
}

// ShowResult represents the current schedule.
type ShowResult struct {
	// Period is "YYYY-MM"
	Period string `json:"period"`

	// Label is the human-readable month, e.g. "October 2026"
	Label string `json:"label"`

	DaysInMonth int             `json:"daysInMonth"`
	Rows        []RowView       `json:"rows"`
	Rules       rules.WorkRules `json:"rules"`

	// Saved is false when nothing has been saved yet
	Saved bool `json:"saved"`
}

// AddRowResult represents the rows appended.
type AddRowResult struct {
	// Indexes of the new rows
	Indexes []int `json:"indexes"`
}

// SelectResult represents the selection after a change.
type SelectResult struct {
	Selected int `json:"selected"`
	Total    int `json:"total"`
}

// SetCellResult represents an accepted edit.
type SetCellResult struct {
	Row  int            `json:"row"`
	Name string         `json:"name"`
	Days []int          `json:"days"`
	Code grid.ShiftCode `json:"code"`

	// Counts and WorkDays are the row totals after the edit
	Counts   grid.Counts `json:"counts"`
	WorkDays int         `json:"workDays"`
}

// DeleteResult represents rows removed.
type DeleteResult struct {
	Removed int `json:"removed"`

	// Refilled is true when every row was removed and a blank row added
	Refilled bool `json:"refilled"`
}

// ResetResult represents rows cleared.
type ResetResult struct {
	Reset int `json:"reset"`
}

// ExportResult represents a named export byte stream.
type ExportResult struct {
	FileName string         `json:"fileName"`
	Data     []byte         `json:"-"`
	Format   tabular.Format `json:"format"`
	RowCount int            `json:"rowCount"`

	// Path and Checksum are set when the export was saved
	Path     string `json:"path,omitempty"`
	Checksum string `json:"checksum,omitempty"`
}

// ImportResult represents the outcome of an import.
type ImportResult struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	FileName string `json:"fileName"`
	RowCount int    `json:"rowCount"`

	// Rows are the imported rows (nil on failure)
	Rows []grid.EmployeeRow `json:"-"`

	// Warnings lists day cells that were ignored
	Warnings []tabular.Warning `json:"warnings"`

	// Skipped counts blank or empty lines that were dropped
	Skipped int `json:"skipped"`

	// Plan describes the replacement; set once the file parsed
	Plan *planner.ImportPlan `json:"plan,omitempty"`

	// Applied is false for a dry run
	Applied bool `json:"applied"`
}

// RulesResult represents the work rules after a change.
type RulesResult struct {
	Rules rules.WorkRules `json:"rules"`

	// Changed lists what was updated, in order
	Changed []string `json:"changed"`
}

// CheckResult represents an audit of the saved schedule.
type CheckResult struct {
	Violations []planner.Violation `json:"violations"`
}

// ExportsResult lists saved exports.
type ExportsResult struct {
	Dir   string   `json:"dir"`
	Files []string `json:"files"`
}

// WipeResult represents the outcome of a wipe.
type WipeResult struct {
	// HadData is true when saved data was removed
	HadData bool `json:"hadData"`
}
