package tabular

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/danieljhkim/shiftgrid/internal/period"
)

// Format names a byte encoding for tables.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q (want xlsx or csv)", ErrUnsupportedFormat, s)
	}
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Encoder writes a table as bytes.
type Encoder interface {
	Encode(w io.Writer, t Table) error
}

// Decoder reads a table from bytes. Only the first sheet is read.
type Decoder interface {
	Decode(r io.Reader) (Table, error)
}

// Codec is an Encoder and Decoder for a single format.
type Codec interface {
	Encoder
	Decoder
	Format() Format
}

// CodecFor returns the codec for f.
func CodecFor(f Format) (Codec, error) {
	switch f {
	case FormatXLSX:
		return XLSX{}, nil
	case FormatCSV:
		return CSV{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// FormatForFileName picks a format from a file extension. Legacy binary
// .xls workbooks are refused rather than misread.
func FormatForFileName(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	case ".xls":
		return "", fmt.Errorf("%w: legacy .xls workbooks are not supported, save the file as .xlsx", ErrUnsupportedFormat)
	default:
		return "", fmt.Errorf("%w: %q (allowed: .xlsx, .csv)", ErrUnsupportedFormat, ext)
	}
}

// AllowedExtensions lists the extensions FormatForFileName accepts.
var AllowedExtensions = []string{".xlsx", ".csv"}

// ExportFileName returns the suggested name for an export of p made on
// exportDate, for example 2026-10_schedule_20261019.xlsx.
func ExportFileName(p period.Period, exportDate time.Time, f Format) string {
	return fmt.Sprintf("%s_schedule_%s%s", p.String(), exportDate.Format("20060102"), f.Extension())
}
