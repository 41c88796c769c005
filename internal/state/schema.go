package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/danieljhkim/shiftgrid/internal/grid"
	"github.com/danieljhkim/shiftgrid/internal/period"
	"github.com/danieljhkim/shiftgrid/internal/rules"
	"github.com/danieljhkim/shiftgrid/internal/workday"
)

// SchemaVersion is the version written into every record.
const SchemaVersion = 1

// GridRecord is the on-disk form of the schedule.
type GridRecord struct {
	// SchemaVersion of the record (0 is read as 1)
	SchemaVersion int `json:"schemaVersion"`

	// Year and Month identify the period the grid was built for
	Year  int `json:"year"`
	Month int `json:"month"`

	// DaysInMonth must agree with Year and Month
	DaysInMonth int `json:"daysInMonth"`

	// Rows in display order, including the UI-only selected flag
	Rows []grid.EmployeeRow `json:"rows"`
}

// NewGridRecord captures g for period p.
func NewGridRecord(p period.Period, g *grid.Grid) *GridRecord {
	rows := make([]grid.EmployeeRow, len(g.Rows))
	for i, row := range g.Rows {
		rows[i] = row.Clone()
	}
	return &GridRecord{
		SchemaVersion: SchemaVersion,
		Year:          p.Year,
		Month:         int(p.Month),
		DaysInMonth:   g.DaysInMonth,
		Rows:          rows,
	}
}

// Period returns the period the record was written for.
func (r *GridRecord) Period() (period.Period, error) {
	p, err := period.New(r.Year, time.Month(r.Month))
	if err != nil {
		return period.Period{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if p.DaysInMonth() != r.DaysInMonth {
		return period.Period{}, fmt.Errorf("%w: %s has %d days, record says %d", ErrCorrupt, p, p.DaysInMonth(), r.DaysInMonth)
	}
	return p, nil
}

// Grid rebuilds the grid, checking that every row covers exactly the days
// of the period.
func (r *GridRecord) Grid() (*grid.Grid, error) {
	if err := checkVersion(r.SchemaVersion); err != nil {
		return nil, err
	}
	if _, err := r.Period(); err != nil {
		return nil, err
	}
	rows := r.Rows
	if len(rows) == 0 {
		rows = []grid.EmployeeRow{grid.NewRow(r.DaysInMonth)}
	}
	g, err := grid.FromRows(r.DaysInMonth, rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return g, nil
}

// RulesRecord is the on-disk form of WorkRules. The layout is flat: caps
// and the enable flag sit side by side at the top level.
type RulesRecord struct {
	SchemaVersion     int                  `json:"schemaVersion"`
	DailyLimits       rules.Caps           `json:"dailyLimits"`
	EnableDailyLimit  bool                 `json:"enableDailyLimit"`
	CalculationMethod workday.Method       `json:"calculationMethod"`
	ConflictRules     []rules.ConflictRule `json:"conflictRules"`
}

// NewRulesRecord captures wr.
func NewRulesRecord(wr rules.WorkRules) *RulesRecord {
	conflicts := append([]rules.ConflictRule{}, wr.ConflictRules...)
	return &RulesRecord{
		SchemaVersion:     SchemaVersion,
		DailyLimits:       wr.DailyLimits.Caps,
		EnableDailyLimit:  wr.DailyLimits.Enabled,
		CalculationMethod: wr.CalculationMethod,
		ConflictRules:     conflicts,
	}
}

// Rules rebuilds and validates the WorkRules. An unknown or missing
// calculation method falls back to the default. Conflict names are trimmed
// and pairs with a blank side are dropped, since they can never match.
func (r *RulesRecord) Rules() (rules.WorkRules, error) {
	if err := checkVersion(r.SchemaVersion); err != nil {
		return rules.WorkRules{}, err
	}
	wr := rules.WorkRules{
		DailyLimits: rules.DailyLimitRule{
			Caps:    r.DailyLimits,
			Enabled: r.EnableDailyLimit,
		},
		CalculationMethod: r.CalculationMethod,
		ConflictRules:     make([]rules.ConflictRule, 0, len(r.ConflictRules)),
	}
	if _, err := workday.ParseMethod(string(wr.CalculationMethod)); err != nil {
		wr.CalculationMethod = rules.Default().CalculationMethod
	}
	for _, cr := range r.ConflictRules {
		cr.A, cr.B = strings.TrimSpace(cr.A), strings.TrimSpace(cr.B)
		if cr.A == "" || cr.B == "" {
			continue
		}
		wr.ConflictRules = append(wr.ConflictRules, cr)
	}
	if err := wr.Validate(); err != nil {
		return rules.WorkRules{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return wr, nil
}

func checkVersion(v int) error {
	if v > SchemaVersion {
		return fmt.Errorf("%w: %d (this build reads up to %d)", ErrUnsupportedSchema, v, SchemaVersion)
	}
	return nil
}
