package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValueKind tags the variant held by a Value.
type ValueKind string

const (
	ValueEmpty    ValueKind = ""
	ValueText     ValueKind = "text"
	ValueCurrency ValueKind = "currency"
	ValueDate     ValueKind = "date"
	ValueInvalid  ValueKind = "invalid" // raw text that failed to parse for its column kind
)

// DateFormat is the layout used for date fields in every input format.
const DateFormat = "2006-01-02"

// Value is a tagged field value resolved against its column's kind.
type Value struct {
	Kind   ValueKind
	Text   string
	Amount decimal.Decimal
	Date   time.Time
}

// Text returns a text Value.
func Text(s string) Value { return Value{Kind: ValueText, Text: s} }

// Currency returns a currency Value.
func Currency(d decimal.Decimal) Value { return Value{Kind: ValueCurrency, Amount: d} }

// Date returns a date Value.
func Date(t time.Time) Value { return Value{Kind: ValueDate, Date: t} }

// IsEmpty reports whether no value was supplied.
func (v Value) IsEmpty() bool { return v.Kind == ValueEmpty }

// Numeric returns the amount for currency values and zero for anything else.
// Missing and unparsable values contribute nothing to a sum.
func (v Value) Numeric() decimal.Decimal {
	if v.Kind == ValueCurrency {
		return v.Amount
	}
	return decimal.Zero
}

// Raw returns the value in its input representation.
func (v Value) Raw() string {
	switch v.Kind {
	case ValueCurrency:
		return v.Amount.String()
	case ValueDate:
		return v.Date.Format(DateFormat)
	default:
		return v.Text
	}
}

// ParseValue resolves raw input text for a column of the given kind.
// Blank input yields an empty Value; text that does not parse is kept as
// ValueInvalid so it can still be displayed.
func ParseValue(kind ColumnKind, raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Value{}
	}
	switch kind {
	case ColumnCurrency:
		d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
		if err != nil {
			return Value{Kind: ValueInvalid, Text: raw}
		}
		return Currency(d)
	case ColumnDate:
		t, err := time.Parse(DateFormat, s)
		if err != nil {
			return Value{Kind: ValueInvalid, Text: raw}
		}
		return Date(t)
	default:
		return Text(raw)
	}
}
