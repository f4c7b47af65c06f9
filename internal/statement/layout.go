// Package statement assembles rendered account sections into complete
// financial statements with section headers and formula totals.
package statement

import (
	"fmt"

	"github.com/cleared-dev/statements/internal/model"
)

// LineKind tags a layout line.
type LineKind int

const (
	// LineHeader emits a heading row.
	LineHeader LineKind = iota
	// LineSection renders one account-type bucket and records its total.
	LineSection
	// LineFormula emits a total row computed from earlier lines.
	LineFormula
)

// Term is one signed operand of a formula.
type Term struct {
	Key  string
	Sign int // +1 or -1
}

// Plus adds the total recorded under key.
func Plus(key string) Term { return Term{Key: key, Sign: 1} }

// Minus subtracts the total recorded under key.
func Minus(key string) Term { return Term{Key: key, Sign: -1} }

// Line is one step of a statement layout.
type Line struct {
	Kind       LineKind
	Key        string // totals key recorded by sections and formulas
	Label      string // header text, or the heading above a section
	TotalLabel string // label of a section's total row; "" emits none
	Bucket     model.AccountType
	Depth      int // depth of header and total rows
	RowDepth   int // depth of a section's top-level account rows
	Terms      []Term
	Supplied   bool // formula value may be overridden by a caller figure
}

// Layout is the fixed, statement-specific line order.
type Layout struct {
	Name  string
	Title string
	Lines []Line
	// Balance names two keys whose totals must match, if any.
	Balance [2]string
}

// Statement names accepted by Lookup.
const (
	NameBalanceSheet = "balance-sheet"
	NameCashFlow     = "cash-flow"
)

// Keys recorded by the built-in layouts.
const (
	KeyCash                    = "cash"
	KeyAsset                   = "asset"
	KeyAssetsTotal             = "assets_total"
	KeyLiability               = "liability"
	KeyCapital                 = "capital"
	KeyLiabilitiesCapitalTotal = "liabilities_capital_total"

	KeyIncome           = "income"
	KeyExpense          = "expense"
	KeyNOI              = "noi"
	KeyOtherIncome      = "other_income"
	KeyOtherExpense     = "other_expense"
	KeyNetOtherIncome   = "net_other_income"
	KeyTotalIncome      = "total_income"
	KeyTotalExpense     = "total_expense"
	KeyNetIncome        = "net_income"
	KeyCashFlow         = "cash_flow"
	KeyBeginningCash    = "beginning_cash"
	KeyEndingCash       = "ending_cash"
	KeyActualEndingCash = "actual_ending_cash"
)

// BalanceSheet returns the balance sheet layout: assets (cash and other
// assets) against liabilities and capital.
func BalanceSheet() Layout {
	return Layout{
		Name:  NameBalanceSheet,
		Title: "Balance Sheet",
		Lines: []Line{
			{Kind: LineHeader, Label: "ASSETS"},
			{Kind: LineSection, Key: KeyCash, Bucket: model.AccountTypeCash, Label: "Cash", TotalLabel: "Total Cash", RowDepth: 1},
			{Kind: LineSection, Key: KeyAsset, Bucket: model.AccountTypeAsset, RowDepth: 1},
			{Kind: LineFormula, Key: KeyAssetsTotal, Label: "Total ASSETS", Terms: []Term{Plus(KeyCash), Plus(KeyAsset)}},
			{Kind: LineHeader, Label: "LIABILITIES & CAPITAL"},
			{Kind: LineSection, Key: KeyLiability, Bucket: model.AccountTypeLiability, Label: "Liabilities", TotalLabel: "Total Liabilities", RowDepth: 1},
			{Kind: LineSection, Key: KeyCapital, Bucket: model.AccountTypeCapital, Label: "Capital", TotalLabel: "Total Capital", RowDepth: 1},
			{Kind: LineFormula, Key: KeyLiabilitiesCapitalTotal, Label: "Total LIABILITIES & CAPITAL", Terms: []Term{Plus(KeyLiability), Plus(KeyCapital)}},
		},
		Balance: [2]string{KeyAssetsTotal, KeyLiabilitiesCapitalTotal},
	}
}

// CashFlow returns the cash flow layout: operating and other income and
// expense down to net income, then the cash reconciliation.
func CashFlow() Layout {
	return Layout{
		Name:  NameCashFlow,
		Title: "Cash Flow",
		Lines: []Line{
			{Kind: LineHeader, Label: "Operating Income & Expense"},
			{Kind: LineSection, Key: KeyIncome, Bucket: model.AccountTypeIncome, Label: "Income", TotalLabel: "Total Operating Income", Depth: 1, RowDepth: 2},
			{Kind: LineSection, Key: KeyExpense, Bucket: model.AccountTypeExpense, Label: "Expense", TotalLabel: "Total Operating Expense", Depth: 1, RowDepth: 2},
			{Kind: LineFormula, Key: KeyNOI, Label: "NOI - Net Operating Income", Depth: 1, Terms: []Term{Plus(KeyIncome), Minus(KeyExpense)}},
			{Kind: LineHeader, Label: "Other Income & Expense", Depth: 1},
			{Kind: LineSection, Key: KeyOtherIncome, Bucket: model.AccountTypeOtherIncome, Label: "Other Income", TotalLabel: "Total Other Income", Depth: 2, RowDepth: 3},
			{Kind: LineSection, Key: KeyOtherExpense, Bucket: model.AccountTypeOtherExpense, Label: "Other Expense", TotalLabel: "Total Other Expense", Depth: 2, RowDepth: 3},
			{Kind: LineFormula, Key: KeyNetOtherIncome, Label: "Net Other Income", Depth: 2, Terms: []Term{Plus(KeyOtherIncome), Minus(KeyOtherExpense)}},
			{Kind: LineFormula, Key: KeyTotalIncome, Label: "Total Income", Depth: 2, Terms: []Term{Plus(KeyIncome), Plus(KeyOtherIncome)}},
			{Kind: LineFormula, Key: KeyTotalExpense, Label: "Total Expense", Depth: 2, Terms: []Term{Plus(KeyExpense), Plus(KeyOtherExpense)}},
			{Kind: LineFormula, Key: KeyNetIncome, Label: "Net Income", Depth: 2, Terms: []Term{Plus(KeyNOI), Plus(KeyNetOtherIncome)}},
			{Kind: LineFormula, Key: KeyCashFlow, Label: "Cash Flow", Terms: []Term{Plus(KeyNetIncome)}, Supplied: true},
			{Kind: LineFormula, Key: KeyBeginningCash, Label: "Beginning Cash", Supplied: true},
			{Kind: LineFormula, Key: KeyEndingCash, Label: "Beginning Cash + Cash Flow", Terms: []Term{Plus(KeyBeginningCash), Plus(KeyCashFlow)}},
			{Kind: LineFormula, Key: KeyActualEndingCash, Label: "Actual Ending Cash", Terms: []Term{Plus(KeyEndingCash)}, Supplied: true},
		},
	}
}

// Lookup returns the built-in layout with the given name.
func Lookup(name string) (Layout, error) {
	switch name {
	case NameBalanceSheet:
		return BalanceSheet(), nil
	case NameCashFlow:
		return CashFlow(), nil
	default:
		return Layout{}, fmt.Errorf("unknown statement %q (want %s or %s)", name, NameBalanceSheet, NameCashFlow)
	}
}

// Buckets returns the account types the layout renders, in line order.
func (l Layout) Buckets() []model.AccountType {
	var out []model.AccountType
	for _, line := range l.Lines {
		if line.Kind == LineSection {
			out = append(out, line.Bucket)
		}
	}
	return out
}
