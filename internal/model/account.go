package model

import "fmt"

// AccountType classifies accounts into the buckets a statement is built from.
type AccountType string

const (
	AccountTypeCash         AccountType = "cash"
	AccountTypeAsset        AccountType = "asset"
	AccountTypeLiability    AccountType = "liability"
	AccountTypeCapital      AccountType = "capital"
	AccountTypeIncome       AccountType = "income"
	AccountTypeExpense      AccountType = "expense"
	AccountTypeOtherIncome  AccountType = "other_income"
	AccountTypeOtherExpense AccountType = "other_expense"
)

// AccountTypes lists every known account type in chart order.
var AccountTypes = []AccountType{
	AccountTypeCash,
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeCapital,
	AccountTypeIncome,
	AccountTypeExpense,
	AccountTypeOtherIncome,
	AccountTypeOtherExpense,
}

// ParseAccountType validates s against the known account types.
func ParseAccountType(s string) (AccountType, error) {
	for _, t := range AccountTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

// Account is one flat general-ledger account record.
type Account struct {
	ID       string
	ParentID string // "" = top-level
	Type     AccountType
	Fields   map[string]Value
}

// Field returns the value stored under a column key, or a zero Value.
func (a Account) Field(key string) Value {
	return a.Fields[key]
}
