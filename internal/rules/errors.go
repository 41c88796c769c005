package rules

import "errors"

var (
	// ErrInvalidRules indicates a WorkRules value that fails validation.
	ErrInvalidRules = errors.New("invalid work rules")

	// ErrNameAlreadyPaired indicates an employee already appears in a
	// conflict rule.
	ErrNameAlreadyPaired = errors.New("employee already appears in a conflict rule")

	// ErrRuleNotFound indicates a conflict rule that does not exist.
	ErrRuleNotFound = errors.New("conflict rule not found")
)
