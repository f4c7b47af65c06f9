package report

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/statements/internal/columns"
	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/tree"
)

func schema() model.Schema {
	return model.Schema{Columns: []model.ColumnSpec{
		{Key: "accountName", Label: "Account Name", Width: 300, Visible: true, IsLabel: true, Kind: model.ColumnText},
		{Key: "glCode", Label: "GL Code", Width: 100, Visible: false, Kind: model.ColumnText},
		{Key: "balance", Label: "Balance", Width: 180, Align: model.AlignRight, Visible: true, Kind: model.ColumnCurrency, Aggregatable: true},
	}}
}

func account(id, parent, name string, balance model.Value) model.Account {
	return model.Account{
		ID:       id,
		ParentID: parent,
		Type:     model.AccountTypeCash,
		Fields: map[string]model.Value{
			"accountName": model.Text(name),
			"glCode":      model.Text("gl-" + id),
			"balance":     balance,
		},
	}
}

func amount(s string) model.Value {
	return model.Currency(decimal.RequireFromString(s))
}

func build(t *testing.T, records ...model.Account) *tree.Forest {
	t.Helper()
	f, err := tree.Build(records)
	require.NoError(t, err)
	return f
}

func cellText(t *testing.T, row Row, key string) string {
	t.Helper()
	c, ok := row.Cell(key)
	require.True(t, ok, "row has no %s cell", key)
	return c.Text
}

func TestRender_SingleAccount(t *testing.T) {
	f := build(t, account("cash-1", "", "Operating Cash", amount("100")))
	rows := Render(f, columns.NewState(schema()), 0, "")

	require.Len(t, rows, 1)
	assert.Equal(t, KindDetail, rows[0].Kind)
	assert.Equal(t, 0, rows[0].Depth)
	assert.Equal(t, "Operating Cash", cellText(t, rows[0], "accountName"))
	assert.Equal(t, "100.00", cellText(t, rows[0], "balance"))
}

func TestRender_SubtotalSumsChildren(t *testing.T) {
	f := build(t,
		account("p", "", "Parent", model.Value{}),
		account("x", "p", "X", amount("10")),
		account("y", "p", "Y", amount("20")),
	)
	rows := Render(f, columns.NewState(schema()), 0, "Total")

	require.Len(t, rows, 4)
	kinds := []Kind{rows[0].Kind, rows[1].Kind, rows[2].Kind, rows[3].Kind}
	assert.Equal(t, []Kind{KindDetail, KindDetail, KindDetail, KindSubtotal}, kinds)

	sub := rows[3]
	assert.Equal(t, 0, sub.Depth)
	assert.Equal(t, "Total Parent", cellText(t, sub, "accountName"))
	assert.Equal(t, "30.00", cellText(t, sub, "balance"))
}

func TestRender_MissingAndInvalidContributeZero(t *testing.T) {
	f := build(t,
		account("p", "", "Parent", model.Value{}),
		account("x", "p", "X", amount("10")),
		account("y", "p", "Y", model.Value{}),
		account("z", "p", "Z", model.ParseValue(model.ColumnCurrency, "n/a")),
	)
	rows := Render(f, columns.NewState(schema()), 0, "")

	assert.Equal(t, "", cellText(t, rows[2], "balance"))
	assert.Equal(t, "n/a", cellText(t, rows[3], "balance"))
	assert.Equal(t, "10.00", cellText(t, rows[4], "balance"))
}

func TestRender_NestedSubtotalsDoNotDoubleCount(t *testing.T) {
	f := build(t,
		account("a", "", "A", model.Value{}),
		account("b", "a", "B", model.Value{}),
		account("c", "b", "C", amount("5")),
		account("d", "b", "D", amount("7")),
		account("e", "a", "E", amount("3")),
	)
	rows := Render(f, columns.NewState(schema()), 1, "")

	var labels, balances []string
	for _, r := range rows {
		labels = append(labels, strings.TrimLeft(cellText(t, r, "accountName"), "\u00a0"))
		balances = append(balances, cellText(t, r, "balance"))
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "Total B", "E", "Total A"}, labels)
	assert.Equal(t, "12.00", balances[4])
	assert.Equal(t, "15.00", balances[6])

	assert.Equal(t, 1, rows[0].Depth)
	assert.Equal(t, 3, rows[2].Depth)
	assert.Equal(t, 2, rows[4].Depth)
}

func TestRender_IndentAndBold(t *testing.T) {
	f := build(t,
		account("a", "", "A", model.Value{}),
		account("b", "a", "B", amount("1")),
	)
	rows := Render(f, columns.NewState(schema()), 1, "")

	name, _ := rows[0].Cell("accountName")
	assert.Equal(t, IndentUnit+"A", name.Text)
	assert.True(t, name.Bold, "parent label is bold")

	name, _ = rows[1].Cell("accountName")
	assert.Equal(t, IndentUnit+IndentUnit+"B", name.Text)
	assert.False(t, name.Bold)

	bal, _ := rows[1].Cell("balance")
	assert.Equal(t, model.AlignRight, bal.Align)
	assert.Equal(t, 180, bal.Width)
}

func TestRender_HonorsLiveState(t *testing.T) {
	f := build(t, account("a", "", "A", amount("1")))
	state := columns.NewState(schema())

	rows := Render(f, state, 0, "")
	_, ok := rows[0].Cell("glCode")
	assert.False(t, ok, "hidden column is not emitted")

	_, err := columns.NewVisibilityController(state, nil).Toggle("glCode")
	require.NoError(t, err)
	rc := columns.NewResizeController(state, nil)
	sess, err := rc.Begin("balance")
	require.NoError(t, err)
	sess.Move(20)
	sess.End()

	rows = Render(f, state, 0, "")
	require.Len(t, rows[0].Cells, 3)
	assert.Equal(t, []string{"accountName", "glCode", "balance"}, []string{rows[0].Cells[0].Key, rows[0].Cells[1].Key, rows[0].Cells[2].Key})
	assert.Equal(t, "gl-a", cellText(t, rows[0], "glCode"))
	bal, _ := rows[0].Cell("balance")
	assert.Equal(t, 200, bal.Width)
}

func TestRender_SubtotalNonAggregatableCellsEmpty(t *testing.T) {
	f := build(t, account("a", "", "A", model.Value{}), account("b", "a", "B", amount("1")))
	state := columns.NewState(schema())
	_, err := columns.NewVisibilityController(state, nil).Toggle("glCode")
	require.NoError(t, err)

	rows := Render(f, state, 0, "")
	assert.Equal(t, "", cellText(t, rows[2], "glCode"))
}

func TestRender_Empty(t *testing.T) {
	assert.Empty(t, Render(build(t), columns.NewState(schema()), 0, ""))
	assert.Empty(t, Render(nil, columns.NewState(schema()), 0, ""))

	f := build(t, account("a", "", "A", amount("1")))
	assert.Empty(t, Render(f, columns.NewState(model.Schema{}), 0, ""), "no schema renders an empty table")
}

func TestRender_Pure(t *testing.T) {
	f := build(t, account("a", "", "A", model.Value{}), account("b", "a", "B", amount("1")))
	state := columns.NewState(schema())
	assert.Equal(t, Render(f, state, 0, ""), Render(f, state, 0, ""))
}

func TestSum(t *testing.T) {
	f := build(t,
		account("a", "", "A", amount("1.50")),
		account("b", "a", "B", amount("2")),
		account("c", "", "C", amount("-0.25")),
	)
	totals := Sum(f, schema())
	assert.True(t, decimal.RequireFromString("3.25").Equal(totals.Get("balance")))
	assert.True(t, totals.Get("missing").IsZero())
}

func TestTotals(t *testing.T) {
	a := Totals{"x": decimal.NewFromInt(10), "y": decimal.NewFromInt(1)}
	b := Totals{"x": decimal.NewFromInt(4), "z": decimal.NewFromInt(2)}

	sum := a.Plus(b)
	assert.True(t, sum.Get("x").Equal(decimal.NewFromInt(14)))
	assert.True(t, sum.Get("z").Equal(decimal.NewFromInt(2)))

	diff := a.Minus(b)
	assert.True(t, diff.Get("x").Equal(decimal.NewFromInt(6)))
	assert.True(t, diff.Get("z").Equal(decimal.NewFromInt(-2)))

	assert.True(t, a.Equal(Totals{"x": decimal.RequireFromString("10.00"), "y": decimal.NewFromInt(1)}))
	assert.False(t, a.Equal(b))
}

func TestMemo(t *testing.T) {
	f := build(t, account("a", "", "A", amount("1")))
	state := columns.NewState(schema())
	m := NewMemo()

	first := m.Render(f, state.Snapshot(), 0, "")
	second := m.Render(f, state.Snapshot(), 0, "")
	assert.Equal(t, first, second)

	_, err := columns.NewVisibilityController(state, nil).Toggle("glCode")
	require.NoError(t, err)
	third := m.Render(f, state.Snapshot(), 0, "")
	assert.Len(t, third[0].Cells, 3)

	hits, misses := m.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 2, misses)
}

func TestFormatterFor(t *testing.T) {
	tests := []struct {
		kind model.ColumnKind
		raw  string
		want string
	}{
		{model.ColumnCurrency, "1234.5", "1234.50"},
		{model.ColumnCurrency, "1,234.5", "1234.50"},
		{model.ColumnCurrency, "abc", "abc"},
		{model.ColumnDate, "2025-01-31", "2025-01-31"},
		{model.ColumnText, "Petty Cash", "Petty Cash"},
		{"", "plain", "plain"},
		{model.ColumnCurrency, "", ""},
	}
	for _, tt := range tests {
		got := FormatterFor(tt.kind)(model.ParseValue(tt.kind, tt.raw))
		assert.Equal(t, tt.want, got, "%s %q", tt.kind, tt.raw)
	}
}
