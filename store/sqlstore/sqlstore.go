// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/survey-basket/db"
	"github.com/danielhkuo/survey-basket/models"
	"github.com/danielhkuo/survey-basket/store"
)

const pollColumns = "id, title, summary, is_published, starts_at, ends_at"

// Store implements store.PollStore on database/sql for postgres and sqlite.
type Store struct {
	db      *sql.DB
	dialect string
	logger  *slog.Logger
}

func New(conn *sql.DB, dialect string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:      conn,
		dialect: dialect,
		logger:  logger,
	}
}

func (s *Store) FindByID(ctx context.Context, id int64) (*models.Poll, error) {
	if err := store.CheckContext(ctx); err != nil {
		return nil, err
	}

	var poll models.Poll
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT `+pollColumns+`
		FROM polls
		WHERE id = ?
	`), id).Scan(
		&poll.ID, &poll.Title, &poll.Summary,
		&poll.IsPublished, &poll.StartsAt, &poll.EndsAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.translate(ctx, "poll_store_find_failed", err, "poll_id", id)
	}

	return &poll, nil
}

func (s *Store) ListAll(ctx context.Context) ([]models.Poll, error) {
	if err := store.CheckContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+pollColumns+`
		FROM polls
		ORDER BY id
	`)
	if err != nil {
		return nil, s.translate(ctx, "poll_store_list_failed", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		var poll models.Poll
		if err := rows.Scan(
			&poll.ID, &poll.Title, &poll.Summary,
			&poll.IsPublished, &poll.StartsAt, &poll.EndsAt,
		); err != nil {
			return nil, s.translate(ctx, "poll_store_scan_failed", err)
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, s.translate(ctx, "poll_store_list_failed", err)
	}

	return polls, nil
}

func (s *Store) Insert(ctx context.Context, poll *models.Poll) error {
	if err := store.CheckContext(ctx); err != nil {
		return err
	}

	err := s.db.QueryRowContext(ctx, s.rebind(`
		INSERT INTO polls (title, summary, is_published, starts_at, ends_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`), poll.Title, poll.Summary, poll.IsPublished, poll.StartsAt, poll.EndsAt).Scan(&poll.ID)
	if err != nil {
		return s.translate(ctx, "poll_store_insert_failed", err, "title", poll.Title)
	}

	return nil
}

func (s *Store) Save(ctx context.Context, poll *models.Poll) error {
	if err := store.CheckContext(ctx); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, s.rebind(`
		UPDATE polls
		SET title = ?, summary = ?, is_published = ?, starts_at = ?, ends_at = ?
		WHERE id = ?
	`), poll.Title, poll.Summary, poll.IsPublished, poll.StartsAt, poll.EndsAt, poll.ID)
	if err != nil {
		return s.translate(ctx, "poll_store_save_failed", err, "poll_id", poll.ID)
	}

	return expectOneRow(res, poll.ID)
}

func (s *Store) Remove(ctx context.Context, poll *models.Poll) error {
	if err := store.CheckContext(ctx); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM polls WHERE id = ?`), poll.ID)
	if err != nil {
		return s.translate(ctx, "poll_store_remove_failed", err, "poll_id", poll.ID)
	}

	return expectOneRow(res, poll.ID)
}

// expectOneRow reports a conflict when the row fetched earlier is gone.
func expectOneRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: poll %d no longer exists", store.ErrConcurrencyConflict, id)
	}
	return nil
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *Store) rebind(query string) string {
	if s.dialect != db.Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// translate maps driver errors onto the store error kinds.
func (s *Store) translate(ctx context.Context, event string, err error, attrs ...any) error {
	switch {
	case store.IsContextError(err):
		return store.Cancelled(err)
	case ctx.Err() != nil:
		// Drivers report server-side cancellation with their own errors.
		return fmt.Errorf("%w: %w", store.Cancelled(ctx.Err()), err)
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %w", store.ErrConstraintViolation, err)
	}
	return s.logError(event, err, attrs...)
}

func (s *Store) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"dialect", s.dialect,
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	s.logger.Error("poll store operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return true
		}
		return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE")
	}

	return false
}

var _ store.PollStore = (*Store)(nil)
