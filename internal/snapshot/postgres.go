package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores snapshots in a PostgreSQL table via a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres establishes a connection pool and ensures the snapshots table exists.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	_, err = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS profile_snapshots (
		key        TEXT PRIMARY KEY,
		content    JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var content []byte
	err := p.pool.QueryRow(ctx,
		`SELECT content::text FROM profile_snapshots WHERE key = $1`, key,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &Error{Backend: "postgres", Op: "get", Key: key, Cause: err}
	}
	return content, nil
}

func (p *Postgres) Put(ctx context.Context, key string, data []byte) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO profile_snapshots (key, content)
		 VALUES ($1, $2::jsonb)
		 ON CONFLICT (key) DO UPDATE SET content = $2::jsonb, updated_at = NOW()`,
		key, string(data),
	)
	if err != nil {
		return &Error{Backend: "postgres", Op: "put", Key: key, Cause: err}
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM profile_snapshots WHERE key = $1`, key); err != nil {
		return &Error{Backend: "postgres", Op: "delete", Key: key, Cause: err}
	}
	return nil
}

// Close closes the connection pool
func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
