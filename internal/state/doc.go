// Package state persists the schedule between runs.
//
// Two flat JSON records live in the data directory:
//   - grid.json: the period and every employee row with its day codes
//   - rules.json: daily caps, the calculation method and conflict pairs
//
// Both carry a schemaVersion. Writes are atomic through fsops, and a missing
// record is reported as os.ErrNotExist so callers can start from defaults.
package state
