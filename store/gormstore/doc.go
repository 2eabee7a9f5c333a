// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package gormstore implements store.PollStore with gorm on postgres.

	gdb, err := gormstore.Open(databaseURL)
	s := gormstore.New(gdb, logger)

Reads run in a session without hooks or a default transaction. Save
writes the mutable columns with Updates and treats zero rows affected as
store.ErrConcurrencyConflict. Unique violations are recognized through
gorm.ErrDuplicatedKey or a pgconn error with code 23505.

The polls table is created by the db package, not by AutoMigrate.
*/
package gormstore
