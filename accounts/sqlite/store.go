// Package sqlite provides a SQLite-backed account store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jrsteele09/go-cognito-local/accounts"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    username   TEXT PRIMARY KEY,
    password   TEXT NOT NULL,
    email      TEXT NOT NULL,
    created_at INTEGER NOT NULL
);`

// Store persists account records in SQLite so registrations survive
// process restarts.
type Store struct {
	sqlDB *sql.DB
}

var _ accounts.Repo = (*Store)(nil)

// Open opens (or creates) the SQLite account store at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	// modernc only honors _pragma-form DSN parameters; busy_timeout
	// keeps concurrent writers queued until the primary key conflict
	// resolves the race.
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ensure accounts table: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Create inserts one account record. The username primary key makes
// the insert the single point of serialization for concurrent
// registrations: exactly one caller wins, the rest observe
// accounts.ErrAlreadyExists.
func (s *Store) Create(ctx context.Context, account *accounts.Account) error {
	if account == nil || strings.TrimSpace(account.Username) == "" {
		return fmt.Errorf("username is required")
	}
	createdAt := account.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO accounts (username, password, email, created_at) VALUES (?, ?, ?, ?)`,
		account.Username,
		account.Password,
		account.Email,
		createdAt.UTC().UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return accounts.ErrAlreadyExists
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// Get returns the account for username, or accounts.ErrNotFound.
func (s *Store) Get(ctx context.Context, username string) (*accounts.Account, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT username, password, email, created_at FROM accounts WHERE username = ?`,
		username,
	)
	var account accounts.Account
	var createdAt int64
	if err := row.Scan(&account.Username, &account.Password, &account.Email, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accounts.ErrNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	account.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &account, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
