// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/survey-basket/models"
)

var (
	// ErrConstraintViolation is returned when the store rejects a write
	// because of a uniqueness constraint, such as a duplicate title.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrConcurrencyConflict is returned when the row changed between
	// fetch and flush.
	ErrConcurrencyConflict = errors.New("concurrency conflict")

	// ErrCancelled is returned when the caller's context ended before or
	// during a store call.
	ErrCancelled = errors.New("operation cancelled")
)

// PollStore is the durable keyed store for polls.
//
// Every method observes ctx: if ctx is already done the call does not
// start, and a call interrupted by cancellation returns an error
// matching ErrCancelled.
type PollStore interface {
	// FindByID returns the poll with the given id, or nil when absent.
	FindByID(ctx context.Context, id int64) (*models.Poll, error)

	// ListAll returns every poll ordered by id.
	ListAll(ctx context.Context) ([]models.Poll, error)

	// Insert persists a new poll and sets its ID.
	Insert(ctx context.Context, poll *models.Poll) error

	// Save writes the current fields of a previously fetched poll.
	Save(ctx context.Context, poll *models.Poll) error

	// Remove hard-deletes the poll's row.
	Remove(ctx context.Context, poll *models.Poll) error
}

// CheckContext returns an ErrCancelled error if ctx is done.
func CheckContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return Cancelled(err)
	}
	return nil
}

// Cancelled wraps a context error so it matches both ErrCancelled and
// the original context error.
func Cancelled(err error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, err)
}

// IsContextError reports whether err was caused by context cancellation
// or deadline expiry.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
