// Package store persists account records in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/cleared-dev/statements/internal/model"
)

// Schema creates the account table. Ids are not unique here: duplicates are
// reported when the hierarchy is built, not when rows are written.
const Schema = `
CREATE TABLE IF NOT EXISTS gl_accounts (
	seq          INTEGER PRIMARY KEY AUTOINCREMENT,
	id           TEXT NOT NULL,
	parent_id    TEXT NOT NULL DEFAULT '',
	account_type TEXT NOT NULL,
	fields       TEXT NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_gl_accounts_type ON gl_accounts(account_type);
`

// Store is an open account database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path and initializes its schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save replaces every stored account with accounts, preserving their order.
func (s *Store) Save(ctx context.Context, accounts []model.Account) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM gl_accounts`); err != nil {
		return fmt.Errorf("clearing accounts: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO gl_accounts (id, parent_id, account_type, fields) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range accounts {
		raw := make(map[string]string, len(a.Fields))
		for k, v := range a.Fields {
			if !v.IsEmpty() {
				raw[k] = v.Raw()
			}
		}
		fields, err := json.Marshal(raw)
		if err != nil {
			return fmt.Errorf("encoding fields of %s: %w", a.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, a.ID, a.ParentID, string(a.Type), string(fields)); err != nil {
			return fmt.Errorf("inserting account %s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing accounts: %w", err)
	}
	return nil
}

// Load returns every stored account in insertion order, resolving field
// values against schema.
func (s *Store) Load(ctx context.Context, schema model.Schema) ([]model.Account, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, parent_id, account_type, fields FROM gl_accounts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var id, parent, typ, fields string
		if err := rows.Scan(&id, &parent, &typ, &fields); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		t, err := model.ParseAccountType(typ)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", id, err)
		}

		var raw map[string]string
		if err := json.Unmarshal([]byte(fields), &raw); err != nil {
			return nil, fmt.Errorf("decoding fields of %s: %w", id, err)
		}
		values := make(map[string]model.Value, len(raw))
		for k, v := range raw {
			values[k] = model.ParseValue(schema.KindOf(k), v)
		}

		accounts = append(accounts, model.Account{ID: id, ParentID: parent, Type: t, Fields: values})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}
	return accounts, nil
}

// Count returns the number of stored accounts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM gl_accounts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting accounts: %w", err)
	}
	return n, nil
}
