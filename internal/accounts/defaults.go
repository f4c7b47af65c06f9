package accounts

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/model"
)

type sample struct {
	id, parent string
	typ        model.AccountType
	name       string
	balance    string
	period     string
	ytd        string
}

// SampleChart returns a small property-management chart whose balance sheet
// balances. Field keys match the default report columns.
func SampleChart() []model.Account {
	rows := []sample{
		{"1010", "", model.AccountTypeCash, "Operating Account", "5000", "", ""},
		{"1020", "", model.AccountTypeCash, "Reserve Account", "2000", "", ""},
		{"1200", "", model.AccountTypeAsset, "Accounts Receivable", "1500", "", ""},
		{"1500", "", model.AccountTypeAsset, "Fixed Assets", "", "", ""},
		{"1510", "1500", model.AccountTypeAsset, "Appliances", "3000", "", ""},
		{"1520", "1500", model.AccountTypeAsset, "Furniture", "1000", "", ""},
		{"2010", "", model.AccountTypeLiability, "Accounts Payable", "2500", "", ""},
		{"2100", "", model.AccountTypeLiability, "Security Deposits Held", "1500", "", ""},
		{"3010", "", model.AccountTypeCapital, "Owner Contributions", "6000", "", ""},
		{"3900", "", model.AccountTypeCapital, "Retained Earnings", "2500", "", ""},
		{"4000", "", model.AccountTypeIncome, "Rental Income", "", "", ""},
		{"4010", "4000", model.AccountTypeIncome, "Residential Rent", "", "6000", "60000"},
		{"4020", "4000", model.AccountTypeIncome, "Late Fees", "", "150", "900"},
		{"5000", "", model.AccountTypeExpense, "Operating Expenses", "", "", ""},
		{"5010", "5000", model.AccountTypeExpense, "Repairs", "", "800", "5200"},
		{"5020", "5000", model.AccountTypeExpense, "Utilities", "", "450", "4100"},
		{"5100", "", model.AccountTypeExpense, "Management Fees", "", "600", "6000"},
		{"6010", "", model.AccountTypeOtherIncome, "Interest Income", "", "25", "240"},
		{"7010", "", model.AccountTypeOtherExpense, "Bank Fees", "", "15", "120"},
	}

	out := make([]model.Account, len(rows))
	for i, r := range rows {
		fields := map[string]model.Value{
			"glCode":      model.Text(r.id),
			"accountName": model.Text(r.name),
		}
		for key, amt := range map[string]string{"balance": r.balance, "selectedPeriod": r.period, "fiscalYearToDate": r.ytd} {
			if amt != "" {
				fields[key] = model.Currency(decimal.RequireFromString(amt))
			}
		}
		out[i] = model.Account{ID: r.id, ParentID: r.parent, Type: r.typ, Fields: fields}
	}
	return out
}
