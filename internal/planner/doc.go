// Package planner works out what an import would do before it happens.
//
// An import replaces the whole grid, so the host first builds an ImportPlan:
// which employees are added, replaced or dropped, whether unsaved work would
// be lost, and which daily caps or conflict pairs the incoming schedule
// already breaks. Nothing in this package mutates a grid.
//
// Key responsibilities:
//   - Match incoming rows to current rows by employee name
//   - Flag data loss so the caller can ask for confirmation
//   - Audit a grid against WorkRules and list every violation
package planner
