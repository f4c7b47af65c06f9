package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/cleared-dev/statements/internal/model"
)

// PixelsPerChar converts column widths in px to terminal cells.
const PixelsPerChar = 8

const gutter = "  "

// TextWriter renders a table as aligned terminal text.
type TextWriter struct {
	w    io.Writer
	bold lipgloss.Style
	// Plain disables styling, for output that is not a terminal.
	Plain bool
}

// NewTextWriter returns a writer that bolds header, subtotal and total cells.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w, bold: lipgloss.NewStyle().Bold(true)}
}

// Write renders the title, caption labels, column headers and rows.
func (tw *TextWriter) Write(t Table) error {
	var b strings.Builder

	if t.Title != "" {
		b.WriteString(tw.style(t.Title, true))
		b.WriteByte('\n')
	}
	for _, l := range t.Labels {
		fmt.Fprintf(&b, "%s: %s\n", l.Name, l.Value)
	}
	if t.Title != "" || len(t.Labels) > 0 {
		b.WriteByte('\n')
	}

	if len(t.Columns) > 0 {
		header := make([]string, len(t.Columns))
		rule := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			n := chars(c.Width)
			header[i] = tw.style(fit(c.Label, n, c.Align), true)
			rule[i] = strings.Repeat("-", n)
		}
		writeLine(&b, header)
		writeLine(&b, rule)
	}

	for _, row := range t.Rows {
		line := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			cell, _ := row.Cell(c.Key)
			line[i] = tw.style(fit(cell.Text, chars(c.Width), c.Align), cell.Bold)
		}
		writeLine(&b, line)
	}

	if _, err := io.WriteString(tw.w, b.String()); err != nil {
		return fmt.Errorf("writing text table: %w", err)
	}
	return nil
}

func (tw *TextWriter) style(s string, bold bool) string {
	if !bold || tw.Plain {
		return s
	}
	return tw.bold.Render(s)
}

func writeLine(b *strings.Builder, cells []string) {
	b.WriteString(strings.TrimRight(strings.Join(cells, gutter), " "))
	b.WriteByte('\n')
}

func chars(px int) int {
	return max(px/PixelsPerChar, 1)
}

// fit truncates s to n cells and pads it to exactly n cells.
func fit(s string, n int, align model.Align) string {
	s = runewidth.Truncate(s, n, "…")
	switch align {
	case model.AlignRight:
		return runewidth.FillLeft(s, n)
	case model.AlignCenter:
		pad := n - runewidth.StringWidth(s)
		return runewidth.FillRight(strings.Repeat(" ", pad/2)+s, n)
	default:
		return runewidth.FillRight(s, n)
	}
}
