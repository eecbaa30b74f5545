package export

import (
	"fmt"
	"strings"
)

// Format enumerates the supported download formats.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ParseFormat accepts "csv" or "pdf" in any case; empty defaults to csv.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/csv"
}

// Filename builds "<base>.<ext>".
func (f Format) Filename(base string) string {
	return base + "." + string(f)
}

// Table is the renderer-neutral export document. Meta lines are printed
// above the table in PDFs and omitted from CSV.
type Table struct {
	Title   string
	Meta    []string
	Columns []string
	Rows    [][]string
	Footer  []string
}

func (t Table) validate() error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("export requires at least one column")
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(t.Columns))
		}
	}
	if len(t.Footer) > 0 && len(t.Footer) != len(t.Columns) {
		return fmt.Errorf("footer has %d cells, want %d", len(t.Footer), len(t.Columns))
	}
	return nil
}

// Renderer turns a table into file bytes.
type Renderer interface {
	Render(Table) ([]byte, error)
}

// Render dispatches to the renderer for format.
func Render(format Format, table Table) ([]byte, error) {
	switch format {
	case FormatPDF:
		return NewPDFRenderer().Render(table)
	case FormatCSV:
		return NewCSVRenderer().Render(table)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}
