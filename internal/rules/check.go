package rules

import (
	"fmt"

	"github.com/danieljhkim/shiftgrid/internal/grid"
)

// CanPlace reports whether putting code on day for the target row keeps the
// day within its cap. Rows other than the target are counted as they stand
// now, plus one for the proposed placement.
func CanPlace(g *grid.Grid, rules WorkRules, targetRow, day int, code grid.ShiftCode) bool {
	if code == grid.Unset || !rules.DailyLimits.Enabled {
		return true
	}
	return Occupancy(g, targetRow, day, code)+1 <= rules.DailyLimits.Caps.Of(code)
}

// Occupancy counts rows other than excludeRow holding code on day. Pass -1
// to count every row.
func Occupancy(g *grid.Grid, excludeRow, day int, code grid.ShiftCode) int {
	n := 0
	for i, row := range g.Rows {
		if i == excludeRow {
			continue
		}
		if row.Days[day] == code {
			n++
		}
	}
	return n
}

// Conflict describes the outcome of CheckConflict.
type Conflict struct {
	// Detected is true when a paired employee already holds the code
	Detected bool `json:"detected"`

	// WithEmployee is the other employee's display name
	WithEmployee string `json:"withEmployee,omitempty"`

	// TheirCode is the code the other employee holds on that day
	TheirCode grid.ShiftCode `json:"theirCode,omitempty"`

	// WithRow is the other employee's row index
	WithRow int `json:"withRow,omitempty"`
}

// CheckConflict reports whether giving the target row code on day would put
// it on the same shift as an employee it is paired with. Unset and Off never
// conflict and unnamed rows are never the subject of a rule. When several
// rows collide the first in grid order is reported.
func CheckConflict(g *grid.Grid, rules WorkRules, targetRow, day int, code grid.ShiftCode) Conflict {
	if code == grid.Unset || code == grid.Off || len(rules.ConflictRules) == 0 {
		return Conflict{}
	}
	if targetRow < 0 || targetRow >= len(g.Rows) {
		return Conflict{}
	}
	acting := g.Rows[targetRow].TrimmedName()
	if acting == "" {
		return Conflict{}
	}

	partners := make(map[string]bool)
	for _, name := range rules.PartnersOf(acting) {
		partners[name] = true
	}
	if len(partners) == 0 {
		return Conflict{}
	}

	for i, row := range g.Rows {
		if i == targetRow {
			continue
		}
		if partners[row.TrimmedName()] && row.Days[day] == code {
			return Conflict{
				Detected:     true,
				WithEmployee: row.Name,
				TheirCode:    row.Days[day],
				WithRow:      i,
			}
		}
	}
	return Conflict{}
}

// Reason classifies a rejected change.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonLimitExceeded Reason = "limit_exceeded"
	ReasonConflict      Reason = "conflict_detected"
)

// Verdict is the combined result of both checks for one proposed change.
type Verdict struct {
	Allowed  bool           `json:"allowed"`
	Reason   Reason         `json:"reason,omitempty"`
	Day      int            `json:"day"`
	Code     grid.ShiftCode `json:"code"`
	Cap      int            `json:"cap,omitempty"`
	Conflict Conflict       `json:"conflict"`
}

// Evaluate runs the limit check and then the conflict check for a proposed
// change. Only an out-of-range row or day is an error; rejections are
// reported in the Verdict.
func Evaluate(g *grid.Grid, rules WorkRules, targetRow, day int, code grid.ShiftCode) (Verdict, error) {
	if _, err := g.Row(targetRow); err != nil {
		return Verdict{}, err
	}
	if err := g.CheckDay(day); err != nil {
		return Verdict{}, err
	}
	if !code.Valid() {
		return Verdict{}, fmt.Errorf("%w: %q", grid.ErrInvalidCode, string(code))
	}

	v := Verdict{Allowed: true, Day: day, Code: code}
	if !CanPlace(g, rules, targetRow, day, code) {
		v.Allowed = false
		v.Reason = ReasonLimitExceeded
		v.Cap = rules.DailyLimits.Caps.Of(code)
		return v, nil
	}
	if c := CheckConflict(g, rules, targetRow, day, code); c.Detected {
		v.Allowed = false
		v.Reason = ReasonConflict
		v.Conflict = c
	}
	return v, nil
}

// Message renders a rejected verdict for the operator. actingName is the
// name of the row being edited.
func (v Verdict) Message(actingName string) string {
	switch v.Reason {
	case ReasonLimitExceeded:
		return fmt.Sprintf("day %d: at most %d %s per day", v.Day, v.Cap, plural(v.Cap, "employee may take "+v.Code.Label(), "employees may take "+v.Code.Label()))
	case ReasonConflict:
		return fmt.Sprintf("day %d: %s and %s cannot work the same shift (%s already has %s)",
			v.Day, actingName, v.Conflict.WithEmployee, v.Conflict.WithEmployee, v.Conflict.TheirCode.Label())
	default:
		return ""
	}
}

func plural(n int, singular, many string) string {
	if n == 1 {
		return singular
	}
	return many
}
