package accounts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSON(t *testing.T) {
	in := `{"glCodeData": [
		{"id": "1010", "subAccountId": null, "accountType": "cash", "accountName": "Checking", "balance": 100.5},
		{"id": "1011", "subAccountId": "1010", "accountType": "cash", "accountName": "Sweep", "balance": "25"},
		{"id": "1012", "accountType": "cash", "accountName": "Petty", "balance": null}
	]}`

	got, err := ReadJSON(strings.NewReader(in), testSchema())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "", got[0].ParentID)
	assert.True(t, decimal.RequireFromString("100.5").Equal(got[0].Field("balance").Amount))
	assert.Equal(t, "1010", got[1].ParentID)
	assert.True(t, decimal.RequireFromString("25").Equal(got[1].Field("balance").Amount))
	assert.True(t, got[2].Field("balance").IsEmpty())
	_, reserved := got[0].Fields["accountType"]
	assert.False(t, reserved)
}

func TestReadJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"malformed", `{"glCodeData": [`},
		{"missing id", `{"glCodeData": [{"accountType": "cash"}]}`},
		{"unknown type", `{"glCodeData": [{"id": "x", "accountType": "equity"}]}`},
		{"nested value", `{"glCodeData": [{"id": "x", "accountType": "cash", "balance": {"v": 1}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in), testSchema())
			assert.Error(t, err)
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	chart := SampleChart()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, chart))

	got, err := ReadJSON(&buf, testSchema())
	require.NoError(t, err)
	require.Len(t, got, len(chart))
	for i := range chart {
		assert.Equal(t, chart[i].ID, got[i].ID)
		assert.Equal(t, chart[i].ParentID, got[i].ParentID)
		assert.Equal(t, chart[i].Type, got[i].Type)
		assert.True(t, chart[i].Field("balance").Numeric().Equal(got[i].Field("balance").Numeric()), chart[i].ID)
	}
}
