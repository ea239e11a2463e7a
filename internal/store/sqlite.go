package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite persists all collections in a single records table keyed by
// (collection, key). Iteration order comes from the primary key index.
type SQLite struct {
	db     *sql.DB
	limits Limits
}

// OpenSQLite opens (and if needed initializes) a SQLite-backed store with
// WAL mode and a busy timeout for the single-writer connection.
func OpenSQLite(path string, limits Limits) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS records (
		collection TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      BLOB NOT NULL,
		PRIMARY KEY (collection, key)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create records table: %w", err)
	}

	return &SQLite{db: db, limits: limits}, nil
}

func (s *SQLite) Get(ctx context.Context, collection, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM records WHERE collection = ? AND key = ?",
		collection, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return value, nil
}

func (s *SQLite) Put(ctx context.Context, collection, key string, value []byte) error {
	if err := s.limits.Check(key, value); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (collection, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (collection, key) DO UPDATE SET value = excluded.value`,
		collection, key, value)
	if err != nil {
		return fmt.Errorf("put record: %w", err)
	}
	return nil
}

func (s *SQLite) Contains(ctx context.Context, collection, key string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM records WHERE collection = ? AND key = ?",
		collection, key).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check record: %w", err)
	}
	return true, nil
}

func (s *SQLite) Ascend(ctx context.Context, collection string, fn func(key string, value []byte) error) error {
	records, err := s.Dump(ctx, collection)
	if err != nil {
		return err
	}
	for _, r := range records {
		if err := fn(r.Key, r.Value); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLite) Dump(ctx context.Context, collection string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, value FROM records WHERE collection = ? ORDER BY key",
		collection)
	if err != nil {
		return nil, fmt.Errorf("dump collection: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Key, &r.Value); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

func (s *SQLite) Restore(ctx context.Context, collection string, records []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin restore: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE collection = ?", collection); err != nil {
		return fmt.Errorf("clear collection: %w", err)
	}
	for _, r := range records {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO records (collection, key, value) VALUES (?, ?, ?)",
			collection, r.Key, r.Value)
		if err != nil {
			return fmt.Errorf("restore record: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLite) Close() error { return s.db.Close() }
