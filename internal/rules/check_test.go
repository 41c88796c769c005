package rules

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/danieljhkim/shiftgrid/internal/grid"
)

// newGrid builds a grid with one row per name.
func newGrid(t *testing.T, days int, names ...string) *grid.Grid {
	t.Helper()
	rows := make([]grid.EmployeeRow, len(names))
	for i, name := range names {
		rows[i] = grid.NewRow(days)
		rows[i].Name = name
	}
	g, err := grid.FromRows(days, rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	return g
}

func mustSet(t *testing.T, g *grid.Grid, row, day int, code grid.ShiftCode) {
	t.Helper()
	if err := g.SetCell(row, day, code); err != nil {
		t.Fatalf("SetCell(%d, %d, %s): %v", row, day, code, err)
	}
}

func TestCanPlace(t *testing.T) {
	r := Default()

	tests := []struct {
		name  string
		rules WorkRules
		setup func(g *grid.Grid)
		row   int
		code  grid.ShiftCode
		want  bool
	}{
		{
			name: "empty day allows one",
			rules: r,
			row:  0, code: grid.Day, want: true,
		},
		{
			name:  "cap reached by another row",
			rules: r,
			setup: func(g *grid.Grid) { g.Rows[1].Days[1] = grid.Day },
			row:   0, code: grid.Day, want: false,
		},
		{
			name:  "own existing value is not counted",
			rules: r,
			setup: func(g *grid.Grid) { g.Rows[0].Days[1] = grid.Day },
			row:   0, code: grid.Day, want: true,
		},
		{
			name:  "other code is not counted",
			rules: r,
			setup: func(g *grid.Grid) { g.Rows[1].Days[1] = grid.Night },
			row:   0, code: grid.Day, want: true,
		},
		{
			name:  "unset always allowed",
			rules: r,
			setup: func(g *grid.Grid) { g.Rows[1].Days[1] = grid.Day },
			row:   0, code: grid.Unset, want: true,
		},
		{
			name:  "disabled limits ignore caps",
			rules: r.WithLimitsEnabled(false),
			setup: func(g *grid.Grid) { g.Rows[1].Days[1] = grid.Day },
			row:   0, code: grid.Day, want: true,
		},
		{
			name: "zero cap forbids the code",
			rules: func() WorkRules {
				z, _ := r.WithLimit(grid.Off, 0)
				return z
			}(),
			row: 0, code: grid.Off, want: false,
		},
		{
			name: "cap of two",
			rules: func() WorkRules {
				z, _ := r.WithLimit(grid.Evening, 2)
				return z
			}(),
			setup: func(g *grid.Grid) { g.Rows[1].Days[1] = grid.Evening },
			row:   0, code: grid.Evening, want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGrid(t, 30, "Kim", "Lee", "Park")
			if tt.setup != nil {
				tt.setup(g)
			}
			if got := CanPlace(g, tt.rules, tt.row, 1, tt.code); got != tt.want {
				t.Errorf("CanPlace() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanPlace_DeleteFreesCapacity(t *testing.T) {
	g := newGrid(t, 30, "Kim", "")
	mustSet(t, g, 0, 1, grid.Day)
	r, err := Default().WithLimit(grid.Day, 1)
	if err != nil {
		t.Fatalf("WithLimit: %v", err)
	}

	if CanPlace(g, r, 1, 1, grid.Day) {
		t.Fatal("second D on day 1 should be rejected while Kim holds it")
	}

	g.Rows[0].Selected = true
	g.DeleteSelected()

	if !CanPlace(g, r, 0, 1, grid.Day) {
		t.Error("D on day 1 should be allowed once Kim's row is deleted")
	}
}

// Gated mutations never push a day over its cap, whatever order they come in.
func TestCanPlace_GatedMutationsRespectCaps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	r := Default()
	r, _ = r.WithLimit(grid.Day, 2)
	r, _ = r.WithLimit(grid.Night, 1)
	r, _ = r.WithLimit(grid.Evening, 3)
	r, _ = r.WithLimit(grid.Off, 0)

	g := newGrid(t, 7, "a", "b", "c", "d", "e", "f")
	all := []grid.ShiftCode{grid.Unset, grid.Day, grid.Evening, grid.Night, grid.Off}

	for i := 0; i < 2000; i++ {
		row := rng.Intn(g.Len())
		day := rng.Intn(7) + 1
		code := all[rng.Intn(len(all))]
		if CanPlace(g, r, row, day, code) {
			mustSet(t, g, row, day, code)
		}
	}

	for day := 1; day <= 7; day++ {
		for _, code := range grid.Codes {
			if n := Occupancy(g, -1, day, code); n > r.DailyLimits.Caps.Of(code) {
				t.Errorf("day %d has %d x %s, cap %d", day, n, code, r.DailyLimits.Caps.Of(code))
			}
		}
	}
}

func TestCheckConflict_KimLee(t *testing.T) {
	r, err := Default().WithConflictRule("Kim", "Lee")
	if err != nil {
		t.Fatalf("WithConflictRule: %v", err)
	}
	g := newGrid(t, 30, "Kim", "Lee")
	mustSet(t, g, 0, 5, grid.Night)

	c := CheckConflict(g, r, 1, 5, grid.Night)
	if !c.Detected || c.WithEmployee != "Kim" || c.TheirCode != grid.Night || c.WithRow != 0 {
		t.Errorf("CheckConflict(Lee, N) = %+v, want conflict with Kim on N", c)
	}

	if c := CheckConflict(g, r, 1, 5, grid.Day); c.Detected {
		t.Errorf("different code should not conflict, got %+v", c)
	}
	if c := CheckConflict(g, r, 1, 6, grid.Night); c.Detected {
		t.Errorf("different day should not conflict, got %+v", c)
	}
}

func TestCheckConflict_Symmetric(t *testing.T) {
	r, _ := Default().WithConflictRule("Kim", "Lee")

	for _, code := range []grid.ShiftCode{grid.Day, grid.Evening, grid.Night} {
		forward := newGrid(t, 10, "Kim", "Lee")
		mustSet(t, forward, 1, 3, code)
		reverse := newGrid(t, 10, "Kim", "Lee")
		mustSet(t, reverse, 0, 3, code)

		a := CheckConflict(forward, r, 0, 3, code)
		b := CheckConflict(reverse, r, 1, 3, code)
		if !a.Detected || !b.Detected {
			t.Errorf("code %s: forward=%v reverse=%v, want both detected", code, a.Detected, b.Detected)
		}
	}
}

func TestCheckConflict_OffAndUnsetNeverConflict(t *testing.T) {
	r, _ := Default().WithConflictRule("Kim", "Lee")
	g := newGrid(t, 10, "Kim", "Lee")
	mustSet(t, g, 0, 1, grid.Off)

	for _, code := range []grid.ShiftCode{grid.Off, grid.Unset} {
		if c := CheckConflict(g, r, 1, 1, code); c.Detected {
			t.Errorf("code %q reported a conflict: %+v", code, c)
		}
	}
}

func TestCheckConflict_NameHandling(t *testing.T) {
	r, _ := Default().WithConflictRule("Kim", "Lee")

	t.Run("unnamed acting row", func(t *testing.T) {
		g := newGrid(t, 10, "", "Lee")
		mustSet(t, g, 1, 1, grid.Day)
		if c := CheckConflict(g, r, 0, 1, grid.Day); c.Detected {
			t.Errorf("unnamed row conflicted: %+v", c)
		}
	})

	t.Run("names are trimmed", func(t *testing.T) {
		g := newGrid(t, 10, "  Kim ", " Lee")
		mustSet(t, g, 1, 1, grid.Day)
		c := CheckConflict(g, r, 0, 1, grid.Day)
		if !c.Detected || c.WithEmployee != " Lee" {
			t.Errorf("trimmed names should match, got %+v", c)
		}
	})

	t.Run("padded rule names still match", func(t *testing.T) {
		padded := Default()
		padded.ConflictRules = []ConflictRule{{A: "Kim ", B: " Lee"}}
		if err := padded.Validate(); err != nil {
			t.Fatalf("Validate: %v", err)
		}
		g := newGrid(t, 10, "Kim", "Lee")
		mustSet(t, g, 0, 3, grid.Night)
		if c := CheckConflict(g, padded, 1, 3, grid.Night); !c.Detected || c.WithEmployee != "Kim" {
			t.Errorf("expected conflict with Kim, got %+v", c)
		}
	})

	t.Run("matching is case sensitive", func(t *testing.T) {
		g := newGrid(t, 10, "kim", "Lee")
		mustSet(t, g, 1, 1, grid.Day)
		if c := CheckConflict(g, r, 0, 1, grid.Day); c.Detected {
			t.Errorf("exact match only, got %+v", c)
		}
	})
}

func TestCheckConflict_NameInSeveralRules(t *testing.T) {
	// The settings surface prevents this, but stored rules may still carry it.
	r := Default()
	r.ConflictRules = []ConflictRule{{A: "Kim", B: "Lee"}, {A: "Park", B: "Kim"}}

	g := newGrid(t, 10, "Kim", "Lee", "Park")
	mustSet(t, g, 2, 4, grid.Evening)

	c := CheckConflict(g, r, 0, 4, grid.Evening)
	if !c.Detected || c.WithEmployee != "Park" {
		t.Errorf("union of partners should include Park, got %+v", c)
	}

	mustSet(t, g, 1, 4, grid.Evening)
	c = CheckConflict(g, r, 0, 4, grid.Evening)
	if c.WithEmployee != "Lee" || c.WithRow != 1 {
		t.Errorf("first row in grid order should be reported, got %+v", c)
	}
}

func TestEvaluate(t *testing.T) {
	r, _ := Default().WithConflictRule("Kim", "Lee")
	r, _ = r.WithLimit(grid.Night, 5)
	g := newGrid(t, 30, "Kim", "Lee", "Park")
	mustSet(t, g, 0, 5, grid.Night)
	mustSet(t, g, 2, 5, grid.Day)

	t.Run("allowed", func(t *testing.T) {
		v, err := Evaluate(g, r, 1, 6, grid.Night)
		if err != nil || !v.Allowed {
			t.Fatalf("Evaluate() = %+v, %v", v, err)
		}
	})

	t.Run("limit checked first", func(t *testing.T) {
		v, err := Evaluate(g, r, 1, 5, grid.Day)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if v.Allowed || v.Reason != ReasonLimitExceeded || v.Cap != 1 {
			t.Errorf("Evaluate() = %+v, want limit rejection with cap 1", v)
		}
		if msg := v.Message("Lee"); msg != "day 5: at most 1 employee may take D per day" {
			t.Errorf("Message() = %q", msg)
		}
	})

	t.Run("conflict", func(t *testing.T) {
		v, err := Evaluate(g, r, 1, 5, grid.Night)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if v.Allowed || v.Reason != ReasonConflict || v.Conflict.WithEmployee != "Kim" {
			t.Errorf("Evaluate() = %+v, want conflict with Kim", v)
		}
		want := "day 5: Lee and Kim cannot work the same shift (Kim already has N)"
		if msg := v.Message("Lee"); msg != want {
			t.Errorf("Message() = %q, want %q", msg, want)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		if _, err := Evaluate(g, r, 1, 31, grid.Day); !errors.Is(err, grid.ErrOutOfRange) {
			t.Errorf("day 31: error = %v, want ErrOutOfRange", err)
		}
		if _, err := Evaluate(g, r, 9, 1, grid.Day); !errors.Is(err, grid.ErrOutOfRange) {
			t.Errorf("row 9: error = %v, want ErrOutOfRange", err)
		}
	})

	t.Run("does not mutate", func(t *testing.T) {
		before := g.Clone()
		_, _ = Evaluate(g, r, 1, 5, grid.Night)
		for i := range g.Rows {
			for d := 1; d <= g.DaysInMonth; d++ {
				if g.Rows[i].Days[d] != before.Rows[i].Days[d] {
					t.Fatalf("row %d day %d changed", i, d)
				}
			}
		}
	})
}
