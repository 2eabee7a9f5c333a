// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types. Each doubles as the database/sql driver name.
const (
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, dialect, url string) (*sql.DB, error) {
	if _, err := schemaFor(dialect); err != nil {
		return nil, err
	}

	conn, err := sql.Open(dialect, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dialect, err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, conn *sql.DB, dialect string) error {
	schema, err := schemaFor(dialect)
	if err != nil {
		return err
	}

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func schemaFor(dialect string) (string, error) {
	switch dialect {
	case Postgres:
		return postgresSchema, nil
	case SQLite:
		return sqliteSchema, nil
	default:
		return "", fmt.Errorf("unsupported database type %q", dialect)
	}
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS polls (
    id BIGSERIAL PRIMARY KEY,
    title VARCHAR(100) NOT NULL,
    summary VARCHAR(1500) NOT NULL,
    is_published BOOLEAN NOT NULL DEFAULT FALSE,
    starts_at DATE NOT NULL,
    ends_at DATE NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_polls_title ON polls(title);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS polls (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    summary TEXT NOT NULL,
    is_published INTEGER NOT NULL DEFAULT 0,
    starts_at TEXT NOT NULL,
    ends_at TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_polls_title ON polls(title);
`
