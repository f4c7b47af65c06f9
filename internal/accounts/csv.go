package accounts

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cleared-dev/statements/internal/model"
)

// Fixed leading columns of an accounts CSV. Every further header names a
// report column key.
const (
	colID      = 0
	colParent  = 1
	colType    = 2
	numFixed   = 3
	headerID   = "id"
	headerPID  = "parent_id"
	headerType = "account_type"
)

// ReadAccounts reads an accounts CSV. Field values are resolved against the
// schema's column kinds; headers the schema does not declare are kept as text.
func ReadAccounts(r io.Reader, schema model.Schema) ([]model.Account, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	if len(header) < numFixed || header[colID] != headerID || header[colParent] != headerPID || header[colType] != headerType {
		return nil, fmt.Errorf("accounts CSV header must start with %s,%s,%s", headerID, headerPID, headerType)
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(header, rec, schema)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes accounts as CSV with one column per schema key.
func WriteAccounts(w io.Writer, schema model.Schema, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{headerID, headerPID, headerType}
	for _, c := range schema.Columns {
		header = append(header, c.Key)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(header, acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row laid out by header.
func MarshalAccount(header []string, acct model.Account) []string {
	row := make([]string, len(header))
	row[colID] = acct.ID
	row[colParent] = acct.ParentID
	row[colType] = string(acct.Type)
	for i := numFixed; i < len(header); i++ {
		row[i] = acct.Field(header[i]).Raw()
	}
	return row
}

// UnmarshalAccount converts a CSV row laid out by header to an Account.
func UnmarshalAccount(header, record []string, schema model.Schema) (model.Account, error) {
	if len(record) != len(header) {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", len(header), len(record))
	}
	if record[colID] == "" {
		return model.Account{}, fmt.Errorf("missing %s", headerID)
	}

	typ, err := model.ParseAccountType(record[colType])
	if err != nil {
		return model.Account{}, fmt.Errorf("account %s: %w", record[colID], err)
	}

	fields := make(map[string]model.Value, len(header)-numFixed)
	for i := numFixed; i < len(header); i++ {
		fields[header[i]] = model.ParseValue(schema.KindOf(header[i]), record[i])
	}

	return model.Account{
		ID:       record[colID],
		ParentID: record[colParent],
		Type:     typ,
		Fields:   fields,
	}, nil
}
