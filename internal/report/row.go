// Package report walks account forests into ordered display rows.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/model"
)

// Kind tags a display row.
type Kind string

const (
	KindDetail   Kind = "detail"
	KindSubtotal Kind = "subtotal"
	KindHeader   Kind = "header"
	KindTotal    Kind = "total"
)

// IndentUnit is prepended to the label cell once per depth level: four
// non-breaking spaces, so the indent survives whitespace trimming.
const IndentUnit = "\u00a0\u00a0\u00a0\u00a0"

// DefaultTotalLabel prefixes subtotal row labels when none is given.
const DefaultTotalLabel = "Total"

// Cell is one rendered column value.
type Cell struct {
	Key   string
	Text  string
	Align model.Align
	Bold  bool
	Width int
}

// Row is one display row. Rows are never mutated after rendering.
type Row struct {
	Depth int
	Kind  Kind
	Cells []Cell
}

// Cell returns the cell for key, if that column is visible in the row.
func (r Row) Cell(key string) (Cell, bool) {
	for _, c := range r.Cells {
		if c.Key == key {
			return c, true
		}
	}
	return Cell{}, false
}

// Totals holds one amount per aggregatable column key.
type Totals map[string]decimal.Decimal

// Get returns the amount for key, zero when absent.
func (t Totals) Get(key string) decimal.Decimal {
	if d, ok := t[key]; ok {
		return d
	}
	return decimal.Zero
}

// Plus returns a new Totals holding t + other per key.
func (t Totals) Plus(other Totals) Totals {
	return t.combine(other, decimal.Decimal.Add)
}

// Minus returns a new Totals holding t - other per key.
func (t Totals) Minus(other Totals) Totals {
	return t.combine(other, decimal.Decimal.Sub)
}

func (t Totals) combine(other Totals, op func(decimal.Decimal, decimal.Decimal) decimal.Decimal) Totals {
	out := make(Totals, len(t)+len(other))
	for k := range t {
		out[k] = op(t.Get(k), other.Get(k))
	}
	for k := range other {
		if _, done := out[k]; !done {
			out[k] = op(t.Get(k), other.Get(k))
		}
	}
	return out
}

// Equal reports whether both hold the same amount for every key either has.
func (t Totals) Equal(other Totals) bool {
	for k := range t {
		if !t.Get(k).Equal(other.Get(k)) {
			return false
		}
	}
	for k := range other {
		if !t.Get(k).Equal(other.Get(k)) {
			return false
		}
	}
	return true
}
