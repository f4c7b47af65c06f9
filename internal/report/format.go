package report

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/model"
)

// Formatter renders a field value as cell text.
type Formatter func(model.Value) string

var formatters = map[model.ColumnKind]Formatter{
	model.ColumnText:     formatText,
	model.ColumnCurrency: formatCurrency,
	model.ColumnDate:     formatDate,
}

// FormatterFor returns the formatter for a column kind. Undeclared kinds
// format as text.
func FormatterFor(kind model.ColumnKind) Formatter {
	if f, ok := formatters[kind]; ok {
		return f
	}
	return formatText
}

// FormatAmount renders an amount the way currency cells show it.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatText(v model.Value) string {
	return v.Raw()
}

func formatCurrency(v model.Value) string {
	if v.Kind == model.ValueCurrency {
		return FormatAmount(v.Amount)
	}
	return v.Raw()
}

func formatDate(v model.Value) string {
	if v.Kind == model.ValueDate {
		return v.Date.Format(model.DateFormat)
	}
	return v.Raw()
}
