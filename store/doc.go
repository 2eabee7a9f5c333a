// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store defines the PollStore interface shared by all backends.

# Interface

	FindByID(ctx, id)   - nil, nil when the poll does not exist
	ListAll(ctx)        - every poll, ordered by id, never nil
	Insert(ctx, poll)   - assigns poll.ID
	Save(ctx, poll)     - writes the full record of a fetched poll
	Remove(ctx, poll)   - hard delete

Implementations live in store/sqlstore (database/sql) and
store/gormstore (gorm).

# Errors

  - ErrConstraintViolation: duplicate title
  - ErrConcurrencyConflict: the row was gone when Save or Remove ran
  - ErrCancelled: the context was done; wraps the context error

CheckContext is called at the top of every store method so a cancelled
caller never reaches the database.
*/
package store
