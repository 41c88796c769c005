// Package tabular converts between the grid and the flat table used for
// spreadsheet export and import.
//
// The table layout is fixed:
//
//	Name | D | E | N | OFF | WorkDays | 1 | 2 | ... | daysInMonth
//
// Count and WorkDays columns are informational. Import recomputes them and
// reads only the name and the per-day codes. Byte-level encodings (XLSX and
// CSV) live behind the Encoder and Decoder interfaces so the table logic
// never touches a file format directly.
package tabular
