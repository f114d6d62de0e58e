package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLite is the durable medium: a single-table key/value store backed by a
// local SQLite file, so a remembered session outlives the process.
type SQLite struct {
	db *sql.DB
}

// sessionWriter is the slice of database/sql the write helper needs. Both
// *sql.DB and *sql.Tx satisfy it, which lets SetAll reuse set inside a
// transaction.
type sessionWriter interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// OpenSQLite opens (and if needed creates) the database at dsn and ensures
// the session table exists. The caller imports a database/sql driver
// registered under the name "sqlite" (modernc.org/sqlite).
func OpenSQLite(ctx context.Context, dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS session (
		  key   TEXT PRIMARY KEY,
		  value BLOB NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init session table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// NewSQLite wraps an existing database handle (used by tests).
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	return set(ctx, s.db, key, value)
}

// SetAll writes all pairs in one transaction. A remembered session is a
// user record plus a token; persisting one without the other would leave a
// state Restore cannot use, so a failed batch writes nothing.
func (s *SQLite) SetAll(ctx context.Context, values map[string][]byte) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin session write: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()
	for k, v := range values {
		if err = set(ctx, tx, k, v); err != nil {
			return err
		}
	}
	return nil
}

func set(ctx context.Context, db sessionWriter, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete session[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLite) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session storage: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
