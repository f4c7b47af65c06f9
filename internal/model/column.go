package model

import "fmt"

// Align is a column's horizontal text alignment.
type Align string

const (
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignCenter Align = "center"
)

// ColumnKind selects how a column's values are parsed and formatted.
type ColumnKind string

const (
	ColumnText     ColumnKind = "text"
	ColumnCurrency ColumnKind = "currency"
	ColumnDate     ColumnKind = "date"
)

// ColumnSpec declares one report column. It is immutable once loaded.
type ColumnSpec struct {
	Key          string
	Label        string
	Width        int // default width in px
	Align        Align
	Visible      bool // default visibility
	ResizeLocked bool
	ToggleLocked bool
	Kind         ColumnKind
	Aggregatable bool
	IsLabel      bool
}

// Schema is the ordered column list of one report table.
type Schema struct {
	Columns []ColumnSpec
}

// Validate checks that every column has a key and keys are unique.
func (s Schema) Validate() error {
	seen := make(map[string]bool, len(s.Columns))
	for i, c := range s.Columns {
		if c.Key == "" {
			return fmt.Errorf("column %d: missing key", i)
		}
		if seen[c.Key] {
			return fmt.Errorf("column %d: duplicate key %q", i, c.Key)
		}
		seen[c.Key] = true
	}
	return nil
}

// Empty reports whether the schema has no columns.
func (s Schema) Empty() bool {
	return len(s.Columns) == 0
}

// Column returns the spec for key.
func (s Schema) Column(key string) (ColumnSpec, bool) {
	for _, c := range s.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// LabelKey returns the key of the column carrying account labels: the column
// flagged IsLabel, else the first text column.
func (s Schema) LabelKey() string {
	for _, c := range s.Columns {
		if c.IsLabel {
			return c.Key
		}
	}
	for _, c := range s.Columns {
		if c.Kind == ColumnText || c.Kind == "" {
			return c.Key
		}
	}
	return ""
}

// Aggregatable returns the keys of columns that are summed into totals.
func (s Schema) Aggregatable() []string {
	var keys []string
	for _, c := range s.Columns {
		if c.Aggregatable {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// KindOf returns the kind declared for key. Undeclared keys and columns
// without a kind are text.
func (s Schema) KindOf(key string) ColumnKind {
	if c, ok := s.Column(key); ok && c.Kind != "" {
		return c.Kind
	}
	return ColumnText
}
