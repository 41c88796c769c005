package planner

import (
	"github.com/danieljhkim/shiftgrid/internal/grid"
	"github.com/danieljhkim/shiftgrid/internal/rules"
)

// ImportPlan represents the effect of replacing the grid with imported rows.
type ImportPlan struct {
	// Operations lists one entry per incoming row, then one per dropped row
	Operations []Operation `json:"operations"`

	// Violations lists rule breaches present in the incoming rows
	Violations []Violation `json:"violations"`

	// DataLoss is true when the current grid has content the import discards
	DataLoss bool `json:"dataLoss"`
}

// Operation describes what happens to one employee row.
type Operation struct {
	// Type is the operation type: "add", "replace", "drop"
	Type string `json:"type"`

	// Name is the employee name (may be empty)
	Name string `json:"name"`

	// Assigned is the number of days with a code after the import (for
	// add and replace) or before it (for drop)
	Assigned int `json:"assigned"`

	// Previous is the number of assigned days the replaced row had
	Previous int `json:"previous,omitempty"`
}

// Violation is one breach of the work rules found in a grid.
type Violation struct {
	// Reason is rules.ReasonLimitExceeded or rules.ReasonConflict
	Reason rules.Reason `json:"reason"`

	// Day of the month
	Day int `json:"day"`

	// Code involved
	Code grid.ShiftCode `json:"code"`

	// Names of the employees involved (every holder for a cap breach, the
	// pair for a conflict)
	Names []string `json:"names"`

	// Count and Cap are set for cap breaches
	Count int `json:"count,omitempty"`
	Cap   int `json:"cap,omitempty"`
}

// Operation type constants
const (
	OpAdd     = "add"
	OpReplace = "replace"
	OpDrop    = "drop"
)

// NewImportPlan creates a new empty ImportPlan.
func NewImportPlan() *ImportPlan {
	return &ImportPlan{
		Operations: []Operation{},
		Violations: []Violation{},
	}
}

// HasViolations returns true if the incoming rows break any rule.
func (p *ImportPlan) HasViolations() bool {
	return len(p.Violations) > 0
}

// AddOperation adds an operation to the plan.
func (p *ImportPlan) AddOperation(op Operation) {
	p.Operations = append(p.Operations, op)
}

// Count returns how many operations have the given type.
func (p *ImportPlan) Count(opType string) int {
	n := 0
	for _, op := range p.Operations {
		if op.Type == opType {
			n++
		}
	}
	return n
}
