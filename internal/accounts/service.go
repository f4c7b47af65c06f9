package accounts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/store"
)

// Service provides in-memory lookup over a set of account records.
type Service struct {
	accounts []model.Account
	byID     map[string]model.Account
}

// NewService creates a Service from a slice of accounts. When ids repeat the
// first record wins lookups; All still returns every record so hierarchy
// building can report the duplicate.
func NewService(accounts []model.Account) *Service {
	byID := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		if _, ok := byID[a.ID]; !ok {
			byID[a.ID] = a
		}
	}
	return &Service{accounts: accounts, byID: byID}
}

// Format is an account source encoding, chosen by file extension.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// FormatOf picks the encoding for path from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unsupported accounts file %q (want .csv, .json, .db or .sqlite)", path)
	}
}

// Load reads account records from path, resolving field values against schema.
func Load(ctx context.Context, path string, schema model.Schema) (*Service, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	var accts []model.Account
	switch format {
	case FormatSQLite:
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("opening accounts database: %w", err)
		}
		db, err := store.Open(path)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		accts, err = db.Load(ctx, schema)
		if err != nil {
			return nil, fmt.Errorf("reading accounts database: %w", err)
		}
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening accounts: %w", err)
		}
		defer f.Close()

		if format == FormatJSON {
			accts, err = ReadJSON(f, schema)
		} else {
			accts, err = ReadAccounts(f, schema)
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return NewService(accts), nil
}

// Save writes every account to path in the encoding its extension selects.
// CSV output carries one column per schema key.
func (s *Service) Save(ctx context.Context, path string, schema model.Schema) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	if format == FormatSQLite {
		db, err := store.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Save(ctx, s.accounts)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating accounts file: %w", err)
	}
	defer f.Close()

	if format == FormatJSON {
		err = WriteJSON(f, s.accounts)
	} else {
		err = WriteAccounts(f, schema, s.accounts)
	}
	if err != nil {
		return fmt.Errorf("writing accounts: %w", err)
	}
	return nil
}

// All returns all accounts in input order.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(id string) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}
