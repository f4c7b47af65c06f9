package export

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/statements/internal/model"
)

// Excel column width units are roughly 7 px.
const pixelsPerExcelUnit = 7

// numFmtAmount is the built-in "#,##0.00" format.
const numFmtAmount = 4

const maxSheetName = 31

type styleKey struct {
	bold    bool
	align   model.Align
	amount  bool
	indent  int
	caption bool
}

// WriteXLSX writes the table as a single-sheet workbook. Currency cells are
// stored as numbers; label indentation becomes cell indent.
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(t.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	x := &xlsxWriter{f: f, sheet: sheet, styles: make(map[styleKey]int)}

	row := 1
	if t.Title != "" {
		if err := x.set(1, row, t.Title, styleKey{bold: true, caption: true}); err != nil {
			return err
		}
		row++
	}
	for _, l := range t.Labels {
		if err := x.set(1, row, l.Name+": "+l.Value, styleKey{caption: true}); err != nil {
			return err
		}
		row++
	}
	if row > 1 {
		row++
	}

	for i, c := range t.Columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("naming column: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, float64(c.Width)/pixelsPerExcelUnit); err != nil {
			return fmt.Errorf("sizing column %s: %w", c.Key, err)
		}
		if err := x.set(i+1, row, c.Label, styleKey{bold: true, align: c.Align}); err != nil {
			return err
		}
	}
	row++

	label := labelKey(t)
	for _, r := range t.Rows {
		for i, c := range t.Columns {
			cell, ok := r.Cell(c.Key)
			if !ok {
				continue
			}
			key := styleKey{bold: cell.Bold, align: c.Align}
			var value any = cell.Text
			if c.Key == label {
				key.indent = r.Depth
				value = stripIndent(cell.Text, r.Depth)
			} else if c.Kind == model.ColumnCurrency && cell.Text != "" {
				if d, err := decimal.NewFromString(cell.Text); err == nil {
					key.amount = true
					value = d.InexactFloat64()
				}
			}
			if err := x.set(i+1, row, value, key); err != nil {
				return err
			}
		}
		row++
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

type xlsxWriter struct {
	f      *excelize.File
	sheet  string
	styles map[styleKey]int
}

func (x *xlsxWriter) set(col, row int, value any, key styleKey) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("addressing cell: %w", err)
	}
	if err := x.f.SetCellValue(x.sheet, cell, value); err != nil {
		return fmt.Errorf("setting %s: %w", cell, err)
	}
	style, err := x.style(key)
	if err != nil {
		return err
	}
	if err := x.f.SetCellStyle(x.sheet, cell, cell, style); err != nil {
		return fmt.Errorf("styling %s: %w", cell, err)
	}
	return nil
}

func (x *xlsxWriter) style(key styleKey) (int, error) {
	if id, ok := x.styles[key]; ok {
		return id, nil
	}
	horizontal := string(key.align)
	if horizontal == "" || key.caption {
		horizontal = string(model.AlignLeft)
	}
	s := &excelize.Style{
		Font:      &excelize.Font{Bold: key.bold},
		Alignment: &excelize.Alignment{Horizontal: horizontal, Indent: key.indent},
	}
	if key.amount {
		s.NumFmt = numFmtAmount
	}
	id, err := x.f.NewStyle(s)
	if err != nil {
		return 0, fmt.Errorf("creating style: %w", err)
	}
	x.styles[key] = id
	return id, nil
}

func labelKey(t Table) string {
	specs := make([]model.ColumnSpec, len(t.Columns))
	for i, c := range t.Columns {
		specs[i] = c.ColumnSpec
	}
	return model.Schema{Columns: specs}.LabelKey()
}

func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, title)
	if name == "" {
		return "Statement"
	}
	if utf8.RuneCountInString(name) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	return name
}
