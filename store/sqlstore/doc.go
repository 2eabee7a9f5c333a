// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sqlstore implements store.PollStore on database/sql.

# Dialects

One Store serves both databases the db package can open:

	s := sqlstore.New(conn, db.Postgres, logger)
	s := sqlstore.New(conn, db.SQLite, nil)

Queries are written with ? placeholders and rebound to $1, $2, ... for
postgres. Inserts use RETURNING id on both.

# Error Mapping

  - pq.Error code 23505 and sqlite UNIQUE constraint codes map to
    store.ErrConstraintViolation
  - zero rows affected on UPDATE or DELETE maps to
    store.ErrConcurrencyConflict
  - context errors map to store.ErrCancelled

Anything else is logged with the operation name and returned as is.
*/
package sqlstore
