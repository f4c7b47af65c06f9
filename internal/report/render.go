package report

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/columns"
	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/tree"
)

// Render walks a forest depth-first and returns one detail row per account,
// followed after each parent's subtree by a subtotal row summing the
// aggregatable columns of its descendants. Only columns visible in view are
// emitted. An empty forest renders no rows.
func Render(f *tree.Forest, view columns.View, startDepth int, totalLabel string) []Row {
	if f.Len() == 0 || view == nil || view.Schema().Empty() {
		return nil
	}
	if totalLabel == "" {
		totalLabel = DefaultTotalLabel
	}
	r := renderer{
		forest:     f,
		view:       view,
		labelKey:   view.Schema().LabelKey(),
		totalLabel: totalLabel,
	}
	for _, root := range f.Roots() {
		r.walk(root, startDepth)
	}
	return r.rows
}

type renderer struct {
	forest     *tree.Forest
	view       columns.View
	labelKey   string
	totalLabel string
	rows       []Row
}

func (r *renderer) walk(n, depth int) {
	acct := r.forest.Node(n).Account
	parent := r.forest.HasChildren(n)

	r.rows = append(r.rows, Row{Depth: depth, Kind: KindDetail, Cells: r.detailCells(acct, depth, parent)})
	if !parent {
		return
	}
	for _, c := range r.forest.Children(n) {
		r.walk(c, depth+1)
	}

	label := r.totalLabel + " " + acct.Field(r.labelKey).Raw()
	r.rows = append(r.rows, TotalRow(r.view, KindSubtotal, depth, label, sumNodes(r.forest, r.forest.Descendants(n), r.view.Schema())))
}

func (r *renderer) detailCells(acct model.Account, depth int, bold bool) []Cell {
	var cells []Cell
	for _, col := range r.view.Schema().Columns {
		if !r.view.Visible(col.Key) {
			continue
		}
		text := FormatterFor(col.Kind)(acct.Field(col.Key))
		isLabel := col.Key == r.labelKey
		if isLabel {
			text = indent(depth) + text
		}
		cells = append(cells, Cell{
			Key:   col.Key,
			Text:  text,
			Align: col.Align,
			Bold:  isLabel && bold,
			Width: r.view.Width(col.Key),
		})
	}
	return cells
}

// TotalRow builds a synthesized row: the label sits in the label column and
// each aggregatable column shows its amount from totals. A nil totals leaves
// the amount cells blank. Other columns are empty.
func TotalRow(view columns.View, kind Kind, depth int, label string, totals Totals) Row {
	schema := view.Schema()
	labelKey := schema.LabelKey()
	var cells []Cell
	for _, col := range schema.Columns {
		if !view.Visible(col.Key) {
			continue
		}
		var text string
		switch {
		case col.Key == labelKey:
			text = indent(depth) + label
		case col.Aggregatable && totals != nil:
			text = FormatAmount(totals.Get(col.Key))
		}
		cells = append(cells, Cell{Key: col.Key, Text: text, Align: col.Align, Bold: true, Width: view.Width(col.Key)})
	}
	return Row{Depth: depth, Kind: kind, Cells: cells}
}

// HeaderRow builds a section heading row carrying text in the label column.
func HeaderRow(view columns.View, depth int, text string) Row {
	return TotalRow(view, KindHeader, depth, text, nil)
}

// Sum totals the aggregatable columns over every account in the forest.
func Sum(f *tree.Forest, schema model.Schema) Totals {
	var all []int
	for _, root := range f.Roots() {
		all = append(all, root)
		all = append(all, f.Descendants(root)...)
	}
	return sumNodes(f, all, schema)
}

func sumNodes(f *tree.Forest, nodes []int, schema model.Schema) Totals {
	keys := schema.Aggregatable()
	totals := make(Totals, len(keys))
	for _, k := range keys {
		sum := decimal.Zero
		for _, n := range nodes {
			sum = sum.Add(f.Node(n).Account.Field(k).Numeric())
		}
		totals[k] = sum
	}
	return totals
}

func indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(IndentUnit, depth)
}
