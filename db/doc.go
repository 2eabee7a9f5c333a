// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connections

Open registers both drivers and pings the database:

	conn, err := db.Open(ctx, db.Postgres, "postgres://...")
	conn, err := db.Open(ctx, db.SQLite, "file:polls.db")

# Schema Creation

CreateSchema initializes the polls table for the given database type:

	if err := db.CreateSchema(ctx, conn, db.SQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for tables and indexes.

# Tables

  - polls: id, title, summary, is_published, starts_at, ends_at

# Indexes

  - polls.title (unique)

Dates are DATE columns on postgres and YYYY-MM-DD text on sqlite.
*/
package db
