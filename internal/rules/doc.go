// Package rules decides whether a proposed cell change is allowed.
//
// Two independent checks run before every grid write: the daily limit check
// caps how many employees may hold a code on the same day, and the conflict
// check keeps paired employees off the same shift on the same day. Both are
// pure functions of the committed grid, the WorkRules value and the proposed
// change. Nothing is cached between calls.
//
// Key responsibilities:
//   - WorkRules value with defaults and validation
//   - CanPlace (daily limits) and CheckConflict (pair rules)
//   - Evaluate, which combines both into a Verdict for the host to render
package rules
