package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/danieljhkim/shiftgrid/internal/grid"
	"github.com/danieljhkim/shiftgrid/internal/workday"
)

// Caps holds the per-day headcount limit of each assignable code.
type Caps struct {
	D   int `json:"D" validate:"gte=0"`
	E   int `json:"E" validate:"gte=0"`
	N   int `json:"N" validate:"gte=0"`
	Off int `json:"/" validate:"gte=0"`
}

// Of returns the cap for code. Unset has no cap and reports 0.
func (c Caps) Of(code grid.ShiftCode) int {
	switch code {
	case grid.Day:
		return c.D
	case grid.Evening:
		return c.E
	case grid.Night:
		return c.N
	case grid.Off:
		return c.Off
	default:
		return 0
	}
}

func (c *Caps) set(code grid.ShiftCode, limit int) error {
	switch code {
	case grid.Day:
		c.D = limit
	case grid.Evening:
		c.E = limit
	case grid.Night:
		c.N = limit
	case grid.Off:
		c.Off = limit
	default:
		return fmt.Errorf("%w: no limit applies to %q", ErrInvalidRules, string(code))
	}
	return nil
}

// DailyLimitRule caps headcount per code per day. Disabled rules are not
// enforced but keep their caps.
type DailyLimitRule struct {
	Caps    Caps `json:"caps"`
	Enabled bool `json:"enabled"`
}

// ConflictRule names two employees who may not hold the same code on the
// same day. The pair is unordered.
type ConflictRule struct {
	A string `json:"employee1" validate:"notblank,nefield=B"`
	B string `json:"employee2" validate:"notblank"`
}

// Involves reports whether name is either side of the rule.
func (r ConflictRule) Involves(name string) bool {
	return r.A == name || r.B == name
}

// Matches reports whether the rule pairs a and b in either order.
func (r ConflictRule) Matches(a, b string) bool {
	return (r.A == a && r.B == b) || (r.A == b && r.B == a)
}

// WorkRules is the configuration consulted on every edit. Treat it as an
// immutable value: the With* methods return modified copies.
type WorkRules struct {
	DailyLimits       DailyLimitRule `json:"dailyLimits"`
	CalculationMethod workday.Method `json:"calculationMethod" validate:"oneof=sum exclude_off"`
	ConflictRules     []ConflictRule `json:"conflictRules" validate:"dive"`
}

// Default returns the rules a new schedule starts with: one employee per
// code per day, limits enforced, workdays counted as D+E+N.
func Default() WorkRules {
	return WorkRules{
		DailyLimits: DailyLimitRule{
			Caps:    Caps{D: 1, E: 1, N: 1, Off: 1},
			Enabled: true,
		},
		CalculationMethod: workday.SumWorked,
		ConflictRules:     []ConflictRule{},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Validate checks caps, the calculation method and every conflict pair.
func (r WorkRules) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidRules, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}
	return nil
}

func (r WorkRules) clone() WorkRules {
	out := r
	out.ConflictRules = append([]ConflictRule(nil), r.ConflictRules...)
	return out
}

// WithLimit returns a copy with the cap for code set to limit.
func (r WorkRules) WithLimit(code grid.ShiftCode, limit int) (WorkRules, error) {
	if limit < 0 {
		return r, fmt.Errorf("%w: limit for %s must be >= 0, got %d", ErrInvalidRules, code.Label(), limit)
	}
	out := r.clone()
	if err := out.DailyLimits.Caps.set(code, limit); err != nil {
		return r, err
	}
	return out, nil
}

// WithLimitsEnabled returns a copy with daily limits switched on or off.
func (r WorkRules) WithLimitsEnabled(enabled bool) WorkRules {
	out := r.clone()
	out.DailyLimits.Enabled = enabled
	return out
}

// WithMethod returns a copy using the given workday calculation method.
func (r WorkRules) WithMethod(m workday.Method) (WorkRules, error) {
	if _, err := workday.ParseMethod(string(m)); err != nil {
		return r, fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}
	out := r.clone()
	out.CalculationMethod = m
	return out, nil
}

// WithConflictRule returns a copy with the pair (a, b) added. Like the
// settings screen, it refuses a name that is already part of a rule. The
// checks themselves do not rely on that.
func (r WorkRules) WithConflictRule(a, b string) (WorkRules, error) {
	rule := ConflictRule{A: strings.TrimSpace(a), B: strings.TrimSpace(b)}
	if err := validate.Struct(rule); err != nil {
		return r, fmt.Errorf("%w: conflict rule needs two different non-empty names", ErrInvalidRules)
	}
	for _, existing := range r.ConflictRules {
		for _, name := range []string{rule.A, rule.B} {
			if existing.Involves(name) {
				return r, fmt.Errorf("%w: %s (with %s)", ErrNameAlreadyPaired, name, existing.partner(name))
			}
		}
	}
	out := r.clone()
	out.ConflictRules = append(out.ConflictRules, rule)
	return out, nil
}

// WithoutConflictRule returns a copy with the pair (a, b) removed.
func (r WorkRules) WithoutConflictRule(a, b string) (WorkRules, error) {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	out := r.clone()
	for i, rule := range out.ConflictRules {
		if rule.Matches(a, b) {
			out.ConflictRules = append(out.ConflictRules[:i], out.ConflictRules[i+1:]...)
			return out, nil
		}
	}
	return r, fmt.Errorf("%w: %s / %s", ErrRuleNotFound, a, b)
}

func (r ConflictRule) partner(name string) string {
	if r.A == name {
		return r.B
	}
	return r.A
}

// PartnersOf returns every name paired with name across all rules, in rule
// order, without duplicates. Names are compared trimmed.
func (r WorkRules) PartnersOf(name string) []string {
	var partners []string
	seen := make(map[string]bool)
	name = strings.TrimSpace(name)
	for _, rule := range r.ConflictRules {
		a, b := strings.TrimSpace(rule.A), strings.TrimSpace(rule.B)
		var other string
		switch {
		case a == name && b != "":
			other = b
		case b == name && a != "":
			other = a
		default:
			continue
		}
		if !seen[other] {
			seen[other] = true
			partners = append(partners, other)
		}
	}
	return partners
}
