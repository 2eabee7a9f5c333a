// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package polls implements the poll lifecycle on top of a store.PollStore.

# Service

A Service is built around an injected store, with an optional clock and
logger:

	svc := polls.New(pollStore, polls.WithClock(time.Now))

Operations:

  - List: every poll, ordered by id
  - Current: published polls whose date range contains today
  - Get: one poll; found is false when it does not exist
  - Create: validate, then insert as unpublished
  - Update: overwrite title, summary and dates of an existing poll
  - TogglePublish: flip the published flag
  - Delete: hard delete

# Today

"Today" is the UTC calendar date of the clock. Create rejects a poll
that starts before it; Update does not.

# Errors

Validation failures come back as *validation.Error with no store call.
Store errors (constraint violation, concurrency conflict, cancellation)
are wrapped with %w and keep their identity for errors.Is.
*/
package polls
