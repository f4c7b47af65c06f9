package accounts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/statements/internal/model"
)

func testSchema() model.Schema {
	return model.Schema{Columns: []model.ColumnSpec{
		{Key: "accountName", Kind: model.ColumnText, IsLabel: true},
		{Key: "balance", Kind: model.ColumnCurrency, Aggregatable: true},
	}}
}

func TestRoundTrip(t *testing.T) {
	accounts := []model.Account{
		{ID: "1010", Type: model.AccountTypeCash, Fields: map[string]model.Value{
			"accountName": model.Text("Checking"),
			"balance":     model.Currency(decimal.RequireFromString("100.25")),
		}},
		{ID: "1011", ParentID: "1010", Type: model.AccountTypeCash, Fields: map[string]model.Value{
			"accountName": model.Text("Sweep, overnight"),
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, testSchema(), accounts))

	got, err := ReadAccounts(&buf, testSchema())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "1010", got[0].ID)
	assert.Equal(t, "", got[0].ParentID)
	assert.Equal(t, model.AccountTypeCash, got[0].Type)
	assert.True(t, decimal.RequireFromString("100.25").Equal(got[0].Field("balance").Amount))

	assert.Equal(t, "1010", got[1].ParentID)
	assert.Equal(t, "Sweep, overnight", got[1].Field("accountName").Text)
	assert.True(t, got[1].Field("balance").IsEmpty())
}

func TestReadAccounts_Kinds(t *testing.T) {
	in := "id,parent_id,account_type,accountName,balance,note\n" +
		"a,,asset,Fixtures,\"1,250.00\",kept\n" +
		"b,a,asset,Lamps,n/a,\n"

	got, err := ReadAccounts(strings.NewReader(in), testSchema())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, model.ValueCurrency, got[0].Field("balance").Kind)
	assert.True(t, decimal.RequireFromString("1250").Equal(got[0].Field("balance").Amount))
	assert.Equal(t, model.ValueText, got[0].Field("note").Kind, "undeclared headers are text")

	assert.Equal(t, model.ValueInvalid, got[1].Field("balance").Kind)
	assert.Equal(t, "n/a", got[1].Field("balance").Raw())
}

func TestReadAccounts_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"bad header", "code,parent,type\nx,,cash\n"},
		{"unknown type", "id,parent_id,account_type\nx,,equity\n"},
		{"missing id", "id,parent_id,account_type\n,,cash\n"},
		{"short row", "id,parent_id,account_type,balance\nx,,cash\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadAccounts(strings.NewReader(tt.in), testSchema())
			assert.Error(t, err)
		})
	}
}

func TestReadAccounts_Empty(t *testing.T) {
	got, err := ReadAccounts(strings.NewReader(""), testSchema())
	require.NoError(t, err)
	assert.Empty(t, got)
}
