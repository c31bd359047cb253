// Package postgres implements the repository interfaces on a hosted PostgreSQL
// database through a pgx connection pool.
//
// The schema is the same four tables as the SQLite backend, with native types
// where Postgres has them: text[] for list columns, boolean for flags and
// timestamptz for times. Migrate creates the tables if they are missing, so a
// fresh database (or a Supabase project) works without a separate migration step.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sakif/portfolio/internal/repository"
)

var _ repository.Store = (*DB)(nil)

// uniqueViolation is the SQLSTATE Postgres reports for UNIQUE / PRIMARY KEY clashes.
const uniqueViolation = "23505"

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool, verifies it and runs migrations.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: connecting: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: pinging: %w", err)
	}

	db := &DB{pool: pool}
	if err := db.Migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. It always returns nil; the error return
// lets *DB satisfy repository.Store.
func (db *DB) Close() error {
	if db.pool != nil {
		db.pool.Close()
	}
	return nil
}

// Migrate creates the content tables if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating content tables: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS timeline (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	organization TEXT NOT NULL DEFAULT '',
	start_date   TEXT NOT NULL DEFAULT '',
	end_date     TEXT NOT NULL DEFAULT '',
	current      BOOLEAN NOT NULL DEFAULT FALSE,
	summary      TEXT NOT NULL DEFAULT '',
	bullets      TEXT[] NOT NULL DEFAULT '{}',
	kind         TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_timeline_start_date ON timeline(start_date);

CREATE TABLE IF NOT EXISTS skills (
	id         TEXT PRIMARY KEY,
	category   TEXT NOT NULL DEFAULT '',
	name       TEXT NOT NULL,
	level      INTEGER NOT NULL DEFAULT 1,
	sort_order INTEGER
);

CREATE TABLE IF NOT EXISTS projects (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	technologies TEXT[] NOT NULL DEFAULT '{}',
	bullets      TEXT[] NOT NULL DEFAULT '{}',
	media_url    TEXT NOT NULL DEFAULT '',
	media_type   TEXT NOT NULL DEFAULT '',
	website_url  TEXT NOT NULL DEFAULT '',
	category     TEXT NOT NULL DEFAULT '',
	featured     BOOLEAN NOT NULL DEFAULT FALSE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_projects_order ON projects(featured DESC, created_at DESC);

CREATE TABLE IF NOT EXISTS private_contact (
	id           TEXT PRIMARY KEY,
	access_code  TEXT NOT NULL UNIQUE,
	phone        TEXT NOT NULL DEFAULT '',
	email        TEXT NOT NULL DEFAULT '',
	linkedin_url TEXT NOT NULL DEFAULT '',
	location     TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// nonNil keeps list columns from being encoded as NULL.
func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
