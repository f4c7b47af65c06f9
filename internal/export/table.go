// Package export writes assembled statements as terminal text, CSV or XLSX.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/statements/internal/columns"
	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/report"
)

// Label is one caption line printed above the table, e.g. "Property: Elm St".
type Label struct {
	Name  string
	Value string
}

// Column is a visible column at its current width.
type Column struct {
	model.ColumnSpec
	Width int
}

// Table is everything a writer needs: the visible columns and the rows.
type Table struct {
	Title   string
	Labels  []Label
	Columns []Column
	Rows    []report.Row
}

// NewTable captures the visible columns of view in schema order.
func NewTable(title string, view columns.View, rows []report.Row) Table {
	t := Table{Title: title, Rows: rows}
	if view == nil {
		return t
	}
	for _, c := range view.Schema().Columns {
		if view.Visible(c.Key) {
			t.Columns = append(t.Columns, Column{ColumnSpec: c, Width: view.Width(c.Key)})
		}
	}
	return t
}

// Format names an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, csv or xlsx)", s)
	}
}

// Write encodes t to w in the given format.
func Write(w io.Writer, format Format, t Table) error {
	switch format {
	case FormatText:
		return NewTextWriter(w).Write(t)
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// stripIndent removes a label cell's depth indent.
func stripIndent(s string, depth int) string {
	return strings.TrimPrefix(s, strings.Repeat(report.IndentUnit, depth))
}
