package accounts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cleared-dev/statements/internal/model"
)

// Reserved keys of a JSON account object; every other key is a column value.
const (
	jsonID      = "id"
	jsonParent  = "subAccountId"
	jsonType    = "accountType"
	jsonRootKey = "glCodeData"
)

type glFile struct {
	GLCodeData []map[string]json.RawMessage `json:"glCodeData"`
}

// ReadJSON reads `{"glCodeData": [...]}` account exports. A null or absent
// subAccountId marks a top-level account. Column values may be JSON strings,
// numbers or null.
func ReadJSON(r io.Reader, schema model.Schema) ([]model.Account, error) {
	var file glFile
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding accounts JSON: %w", err)
	}

	accounts := make([]model.Account, 0, len(file.GLCodeData))
	for i, obj := range file.GLCodeData {
		acct, err := unmarshalJSONAccount(obj, schema)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", jsonRootKey, i, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

func unmarshalJSONAccount(obj map[string]json.RawMessage, schema model.Schema) (model.Account, error) {
	raw := make(map[string]string, len(obj))
	for k, v := range obj {
		s, err := scalar(v)
		if err != nil {
			return model.Account{}, fmt.Errorf("field %q: %w", k, err)
		}
		raw[k] = s
	}

	if raw[jsonID] == "" {
		return model.Account{}, fmt.Errorf("missing %s", jsonID)
	}
	typ, err := model.ParseAccountType(raw[jsonType])
	if err != nil {
		return model.Account{}, fmt.Errorf("account %s: %w", raw[jsonID], err)
	}

	fields := make(map[string]model.Value, len(raw))
	for k, v := range raw {
		switch k {
		case jsonID, jsonParent, jsonType:
			continue
		}
		fields[k] = model.ParseValue(schema.KindOf(k), v)
	}
	return model.Account{ID: raw[jsonID], ParentID: raw[jsonParent], Type: typ, Fields: fields}, nil
}

func scalar(v json.RawMessage) (string, error) {
	var x any
	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()
	if err := dec.Decode(&x); err != nil {
		return "", err
	}
	switch t := x.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return fmt.Sprint(t), nil
	default:
		return "", fmt.Errorf("unsupported value %s", string(v))
	}
}

// WriteJSON writes accounts in the glCodeData export format.
func WriteJSON(w io.Writer, accounts []model.Account) error {
	objs := make([]map[string]any, len(accounts))
	for i, a := range accounts {
		obj := map[string]any{jsonID: a.ID, jsonType: string(a.Type), jsonParent: nil}
		if a.ParentID != "" {
			obj[jsonParent] = a.ParentID
		}
		for k, v := range a.Fields {
			if v.IsEmpty() {
				obj[k] = nil
				continue
			}
			if v.Kind == model.ValueCurrency {
				obj[k] = json.Number(v.Amount.String())
				continue
			}
			obj[k] = v.Raw()
		}
		objs[i] = obj
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{jsonRootKey: objs}); err != nil {
		return fmt.Errorf("encoding accounts JSON: %w", err)
	}
	return nil
}
