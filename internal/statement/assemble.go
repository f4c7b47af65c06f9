package statement

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/columns"
	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/report"
	"github.com/cleared-dev/statements/internal/tree"
)

// ErrMissingColumnSchema is recorded when a statement is assembled without columns.
var ErrMissingColumnSchema = errors.New("missing column schema")

// Figures are caller-supplied amounts for Supplied formula lines, by line key.
type Figures map[string]report.Totals

// Uniform returns totals holding amount for every aggregatable column.
func Uniform(schema model.Schema, amount decimal.Decimal) report.Totals {
	t := make(report.Totals)
	for _, k := range schema.Aggregatable() {
		t[k] = amount
	}
	return t
}

// Statement is an assembled statement ready for output.
type Statement struct {
	Title  string
	Rows   []report.Row
	Totals map[string]report.Totals
	Errors []error

	balance [2]string
	failed  map[string]bool
}

// Err joins every error recorded while assembling.
func (s *Statement) Err() error {
	return errors.Join(s.Errors...)
}

// Total returns the totals recorded under key. It reports false when the key
// is unknown or depends on a section that failed to build.
func (s *Statement) Total(key string) (report.Totals, bool) {
	if s.failed[key] {
		return nil, false
	}
	t, ok := s.Totals[key]
	return t, ok
}

// Balanced reports whether the statement's two balancing totals are equal on
// every aggregatable column. Statements without a balance pair, or whose
// balancing totals are unavailable, are not balanced.
func (s *Statement) Balanced() bool {
	if s.balance[0] == "" {
		return false
	}
	a, okA := s.Total(s.balance[0])
	b, okB := s.Total(s.balance[1])
	return okA && okB && a.Equal(b)
}

// AssembleRecords groups records into forests and assembles the layout.
func AssembleRecords(layout Layout, records []model.Account, view columns.View, figures Figures) *Statement {
	forests, errs := tree.BuildByType(records)
	return Assemble(layout, forests, errs, view, figures)
}

// Assemble renders every line of the layout in order. Sections whose bucket
// failed to build render no accounts, and every total depending on them is
// left blank rather than computed from partial data. Assemble never mutates
// the column state.
func Assemble(layout Layout, forests map[model.AccountType]*tree.Forest, buildErrs map[model.AccountType]error, view columns.View, figures Figures) *Statement {
	st := &Statement{
		Title:   layout.Title,
		Totals:  make(map[string]report.Totals),
		balance: layout.Balance,
		failed:  make(map[string]bool),
	}
	if view == nil || view.Schema().Empty() {
		st.Errors = append(st.Errors, fmt.Errorf("assembling %s: %w", layout.Name, ErrMissingColumnSchema))
		return st
	}
	schema := view.Schema()

	for _, line := range layout.Lines {
		switch line.Kind {
		case LineHeader:
			st.Rows = append(st.Rows, report.HeaderRow(view, line.Depth, line.Label))

		case LineSection:
			if line.Label != "" {
				st.Rows = append(st.Rows, report.HeaderRow(view, line.Depth, line.Label))
			}
			if err := buildErrs[line.Bucket]; err != nil {
				st.Errors = append(st.Errors, err)
				st.failed[line.Key] = true
			} else {
				f := forests[line.Bucket]
				st.Rows = append(st.Rows, report.Render(f, view, line.RowDepth, report.DefaultTotalLabel)...)
				st.Totals[line.Key] = report.Sum(f, schema)
			}
			if line.TotalLabel != "" {
				st.Rows = append(st.Rows, report.TotalRow(view, report.KindTotal, line.Depth, line.TotalLabel, st.visibleTotal(line.Key)))
			}

		case LineFormula:
			st.evaluate(line, schema, figures)
			st.Rows = append(st.Rows, report.TotalRow(view, report.KindTotal, line.Depth, line.Label, st.visibleTotal(line.Key)))
		}
	}
	return st
}

func (s *Statement) evaluate(line Line, schema model.Schema, figures Figures) {
	if line.Supplied {
		if fig, ok := figures[line.Key]; ok {
			s.Totals[line.Key] = fig
			return
		}
	}
	sum := Uniform(schema, decimal.Zero)
	for _, term := range line.Terms {
		if s.failed[term.Key] {
			s.failed[line.Key] = true
			return
		}
		if term.Sign < 0 {
			sum = sum.Minus(s.Totals[term.Key])
		} else {
			sum = sum.Plus(s.Totals[term.Key])
		}
	}
	s.Totals[line.Key] = sum
}

// visibleTotal returns nil for failed keys so their rows render blank.
func (s *Statement) visibleTotal(key string) report.Totals {
	t, ok := s.Total(key)
	if !ok {
		return nil
	}
	return t
}
