package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// CSV encodes tables as comma-separated text.
type CSV struct{}

// Format returns FormatCSV.
func (CSV) Format() Format { return FormatCSV }

// Encode writes every row of t. The sheet name is not stored.
func (CSV) Encode(w io.Writer, t Table) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Decode reads all records. Ragged rows are kept as-is and a leading byte
// order mark from spreadsheet exports is dropped.
func (CSV) Decode(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], utf8BOM)
	}
	return Table{Rows: records}, nil
}
