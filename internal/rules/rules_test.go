package rules

import (
	"errors"
	"testing"

	"github.com/danieljhkim/shiftgrid/internal/grid"
	"github.com/danieljhkim/shiftgrid/internal/workday"
)

func TestDefault(t *testing.T) {
	r := Default()

	if !r.DailyLimits.Enabled {
		t.Error("daily limits should be enabled by default")
	}
	for _, code := range grid.Codes {
		if got := r.DailyLimits.Caps.Of(code); got != 1 {
			t.Errorf("default cap for %s = %d, want 1", code, got)
		}
	}
	if r.CalculationMethod != workday.SumWorked {
		t.Errorf("CalculationMethod = %q, want %q", r.CalculationMethod, workday.SumWorked)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *WorkRules)
	}{
		{name: "negative cap", mutate: func(r *WorkRules) { r.DailyLimits.Caps.N = -1 }},
		{name: "unknown method", mutate: func(r *WorkRules) { r.CalculationMethod = "avg" }},
		{name: "blank name", mutate: func(r *WorkRules) { r.ConflictRules = []ConflictRule{{A: " ", B: "Lee"}} }},
		{name: "self pair", mutate: func(r *WorkRules) { r.ConflictRules = []ConflictRule{{A: "Kim", B: "Kim"}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Default()
			tt.mutate(&r)
			if err := r.Validate(); !errors.Is(err, ErrInvalidRules) {
				t.Errorf("Validate() = %v, want ErrInvalidRules", err)
			}
		})
	}

	t.Run("repeated names are valid input", func(t *testing.T) {
		r := Default()
		r.ConflictRules = []ConflictRule{{A: "Kim", B: "Lee"}, {A: "Kim", B: "Park"}}
		if err := r.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	})
}

func TestWithConflictRule(t *testing.T) {
	base := Default()

	r, err := base.WithConflictRule(" Kim ", "Lee")
	if err != nil {
		t.Fatalf("WithConflictRule: %v", err)
	}
	if len(r.ConflictRules) != 1 || r.ConflictRules[0] != (ConflictRule{A: "Kim", B: "Lee"}) {
		t.Errorf("unexpected rules: %+v", r.ConflictRules)
	}
	if len(base.ConflictRules) != 0 {
		t.Error("WithConflictRule modified the receiver")
	}

	if _, err := r.WithConflictRule("Park", "Lee"); !errors.Is(err, ErrNameAlreadyPaired) {
		t.Errorf("pairing Lee twice: error = %v, want ErrNameAlreadyPaired", err)
	}
	if _, err := r.WithConflictRule("Park", "Park"); !errors.Is(err, ErrInvalidRules) {
		t.Errorf("self pair: error = %v, want ErrInvalidRules", err)
	}
	if _, err := r.WithConflictRule("", "Choi"); !errors.Is(err, ErrInvalidRules) {
		t.Errorf("blank name: error = %v, want ErrInvalidRules", err)
	}
}

func TestWithoutConflictRule(t *testing.T) {
	r, _ := Default().WithConflictRule("Kim", "Lee")

	out, err := r.WithoutConflictRule("Lee", "Kim")
	if err != nil {
		t.Fatalf("WithoutConflictRule: %v", err)
	}
	if len(out.ConflictRules) != 0 {
		t.Errorf("rule not removed: %+v", out.ConflictRules)
	}
	if len(r.ConflictRules) != 1 {
		t.Error("WithoutConflictRule modified the receiver")
	}

	if _, err := out.WithoutConflictRule("Kim", "Lee"); !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("error = %v, want ErrRuleNotFound", err)
	}
}

func TestWithLimit(t *testing.T) {
	r, err := Default().WithLimit(grid.Evening, 3)
	if err != nil {
		t.Fatalf("WithLimit: %v", err)
	}
	if r.DailyLimits.Caps.E != 3 {
		t.Errorf("E cap = %d, want 3", r.DailyLimits.Caps.E)
	}
	if _, err := r.WithLimit(grid.Unset, 2); !errors.Is(err, ErrInvalidRules) {
		t.Errorf("Unset limit: error = %v, want ErrInvalidRules", err)
	}
	if _, err := r.WithLimit(grid.Day, -2); !errors.Is(err, ErrInvalidRules) {
		t.Errorf("negative limit: error = %v, want ErrInvalidRules", err)
	}
}

func TestPartnersOf(t *testing.T) {
	r := Default()
	r.ConflictRules = []ConflictRule{{A: "Kim", B: "Lee"}, {A: "Park", B: "Kim"}, {A: "Lee", B: "Kim"}}

	got := r.PartnersOf("Kim")
	if len(got) != 2 || got[0] != "Lee" || got[1] != "Park" {
		t.Errorf("PartnersOf(Kim) = %v, want [Lee Park]", got)
	}
	if got := r.PartnersOf("Choi"); len(got) != 0 {
		t.Errorf("PartnersOf(Choi) = %v, want none", got)
	}

	padded := Default()
	padded.ConflictRules = []ConflictRule{{A: "Kim ", B: " Lee"}, {A: "Park", B: ""}}
	if got := padded.PartnersOf(" Kim"); len(got) != 1 || got[0] != "Lee" {
		t.Errorf("PartnersOf(Kim) with padded rule = %v, want [Lee]", got)
	}
	if got := padded.PartnersOf("Park"); len(got) != 0 {
		t.Errorf("PartnersOf(Park) = %v, want none", got)
	}
}
