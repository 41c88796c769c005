package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/danieljhkim/shiftgrid/internal/rules"
	"github.com/danieljhkim/shiftgrid/internal/workday"
)

// Rules returns the saved work rules (defaults when none are saved).
func (e *Engine) Rules(ctx context.Context) (*RulesResult, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	return &RulesResult{Rules: s.rules, Changed: []string{}}, nil
}

// UpdateRules applies every set field of req to the rules, in the order
// limits, enable flag, method, removed pair, added pair. Any failure leaves
// the saved rules untouched. Existing grid content is not re-checked.
func (e *Engine) UpdateRules(ctx context.Context, req *RulesRequest) (*RulesResult, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}

	wr := s.rules
	changed := []string{}

	codes := make([]string, 0, len(req.Limits))
	for code := range req.Limits {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, raw := range codes {
		code, err := ParseCode(raw)
		if err != nil {
			return nil, err
		}
		wr, err = wr.WithLimit(code, req.Limits[raw])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		changed = append(changed, fmt.Sprintf("limit %s = %d", code.Label(), req.Limits[raw]))
	}

	if req.LimitsEnabled != nil {
		wr = wr.WithLimitsEnabled(*req.LimitsEnabled)
		changed = append(changed, fmt.Sprintf("daily limits enabled = %t", *req.LimitsEnabled))
	}

	if req.Method != "" {
		m, err := workday.ParseMethod(req.Method)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		if wr, err = wr.WithMethod(m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		changed = append(changed, "method = "+string(m))
	}

	if req.RemoveConflict != nil {
		a, b, err := pair(req.RemoveConflict)
		if err != nil {
			return nil, err
		}
		if wr, err = wr.WithoutConflictRule(a, b); err != nil {
			if errors.Is(err, rules.ErrRuleNotFound) {
				return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
			}
			return nil, err
		}
		changed = append(changed, fmt.Sprintf("removed conflict %s / %s", a, b))
	}

	if req.AddConflict != nil {
		a, b, err := pair(req.AddConflict)
		if err != nil {
			return nil, err
		}
		if wr, err = wr.WithConflictRule(a, b); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		changed = append(changed, fmt.Sprintf("added conflict %s / %s", a, b))
	}

	if len(changed) == 0 {
		return nil, fmt.Errorf("%w: nothing to change", ErrValidation)
	}
	if err := wr.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := e.saveRules(wr); err != nil {
		return nil, err
	}
	e.logger.Info("rules updated", zap.Strings("changed", changed))
	return &RulesResult{Rules: wr, Changed: changed}, nil
}

// ResetRules restores the default rules.
func (e *Engine) ResetRules(ctx context.Context) (*RulesResult, error) {
	wr := rules.Default()
	if err := e.saveRules(wr); err != nil {
		return nil, err
	}
	return &RulesResult{Rules: wr, Changed: []string{"rules reset to defaults"}}, nil
}

func pair(names []string) (string, string, error) {
	if len(names) != 2 {
		return "", "", fmt.Errorf("%w: a conflict rule takes exactly two names", ErrValidation)
	}
	return names[0], names[1], nil
}

// Wipe deletes the saved grid and rules, the equivalent of a full reset.
// Exports are kept.
func (e *Engine) Wipe(ctx context.Context, req *WipeRequest) (*WipeResult, error) {
	_, gridErr := e.stateStore.LoadGrid()
	_, rulesErr := e.stateStore.LoadRules()
	hadData := !errors.Is(gridErr, os.ErrNotExist) || !errors.Is(rulesErr, os.ErrNotExist)

	if hadData && !req.Force {
		return nil, fmt.Errorf("%w: this deletes the saved schedule and work rules", ErrConfirmRequired)
	}
	if err := e.stateStore.Wipe(); err != nil {
		return nil, err
	}
	if hadData {
		e.logger.Info("saved data wiped")
	}
	return &WipeResult{HadData: hadData}, nil
}
