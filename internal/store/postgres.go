package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres backs the record store with a pgx connection pool, for
// deployments where the daemon shares state across replicas.
type Postgres struct {
	pool   *pgxpool.Pool
	limits Limits
}

// OpenPostgres connects to the given DSN and ensures the records table
// exists.
func OpenPostgres(ctx context.Context, dsn string, limits Limits) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	_, err = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS records (
		collection TEXT  NOT NULL,
		key        TEXT  NOT NULL,
		value      BYTEA NOT NULL,
		PRIMARY KEY (collection, key)
	)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("create records table: %w", err)
	}

	return &Postgres{pool: pool, limits: limits}, nil
}

func (p *Postgres) Get(ctx context.Context, collection, key string) ([]byte, error) {
	var value []byte
	err := p.pool.QueryRow(ctx,
		"SELECT value FROM records WHERE collection = $1 AND key = $2",
		collection, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return value, nil
}

func (p *Postgres) Put(ctx context.Context, collection, key string, value []byte) error {
	if err := p.limits.Check(key, value); err != nil {
		return err
	}
	_, err := p.pool.Exec(ctx,
		`INSERT INTO records (collection, key, value) VALUES ($1, $2, $3)
		 ON CONFLICT (collection, key) DO UPDATE SET value = EXCLUDED.value`,
		collection, key, value)
	if err != nil {
		return fmt.Errorf("put record: %w", err)
	}
	return nil
}

func (p *Postgres) Contains(ctx context.Context, collection, key string) (bool, error) {
	var exists bool
	err := p.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM records WHERE collection = $1 AND key = $2)",
		collection, key).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check record: %w", err)
	}
	return exists, nil
}

func (p *Postgres) Ascend(ctx context.Context, collection string, fn func(key string, value []byte) error) error {
	records, err := p.Dump(ctx, collection)
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

func (p *Postgres) Dump(ctx context.Context, collection string) ([]Record, error) {
	rows, err := p.pool.Query(ctx,
		"SELECT key, value FROM records WHERE collection = $1 ORDER BY key",
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

func (p *Postgres) Restore(ctx context.Context, collection string, records []Record) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin restore: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM records WHERE collection = $1", collection); err != nil {
		return fmt.Errorf("clear collection: %w", err)
	}
	for _, r := range records {
		_, err := tx.Exec(ctx,
			"INSERT INTO records (collection, key, value) VALUES ($1, $2, $3)",
			collection, r.Key, r.Value)
		if err != nil {
			return fmt.Errorf("restore record: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
