// Package grid holds the monthly shift grid: one EmployeeRow per employee,
// one ShiftCode per calendar day.
//
// The grid never checks scheduling rules. Callers consult package rules
// before calling SetCell, so a write here is unconditional apart from range
// checks.
//
// Key concepts:
//   - ShiftCode: closed set of cell values (D, E, N, / and blank)
//   - EmployeeRow: stable id, editable name, transient selection flag
//   - Grid: ordered rows sharing a fixed daysInMonth
package grid
