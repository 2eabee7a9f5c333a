// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/survey-basket/models"
)

// Field names as they appear on the wire
const (
	FieldTitle    = "title"
	FieldSummary  = "summary"
	FieldStartsAt = "startsAt"
	FieldEndsAt   = "endsAt"
)

const (
	TitleMinLen   = 3
	TitleMaxLen   = 100
	SummaryMinLen = 3
	SummaryMaxLen = 1500
)

const (
	msgRequired        = "is required"
	msgStartsInPast    = "must be greater than or equal to today"
	msgEndsBeforeStart = "must be greater than or equal to start date"
)

type FieldError struct {
	Field   string
	Message string
}

func (fe FieldError) String() string {
	return fe.Field + " " + fe.Message
}

// Violations is the ordered set of field errors found in a request.
// An empty Violations means the request was accepted.
type Violations []FieldError

func (v Violations) Valid() bool {
	return len(v) == 0
}

// Has reports whether any violation is attached to field.
func (v Violations) Has(field string) bool {
	for _, fe := range v {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil when there are no violations.
func (v Violations) Err() error {
	if v.Valid() {
		return nil
	}
	return &Error{Violations: v}
}

// Error is returned by write operations rejected by validation.
type Error struct {
	Violations Violations
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, fe := range e.Violations {
		parts = append(parts, fe.String())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateCreate checks a create request. today is the caller's current
// calendar date; startsAt may not be before it.
func ValidateCreate(req models.PollRequest, today models.Date) Violations {
	return validate(req, &today)
}

// ValidateUpdate checks an update request. The start date is not
// compared to today because an existing poll may already have started.
func ValidateUpdate(req models.PollRequest) Violations {
	return validate(req, nil)
}

func validate(req models.PollRequest, today *models.Date) Violations {
	var v Violations

	v = checkText(v, FieldTitle, req.Title, TitleMinLen, TitleMaxLen)
	v = checkText(v, FieldSummary, req.Summary, SummaryMinLen, SummaryMaxLen)

	switch {
	case req.StartsAt.IsZero():
		v = append(v, FieldError{Field: FieldStartsAt, Message: msgRequired})
	case today != nil && req.StartsAt.Before(*today):
		v = append(v, FieldError{Field: FieldStartsAt, Message: msgStartsInPast})
	}

	if req.EndsAt.IsZero() {
		v = append(v, FieldError{Field: FieldEndsAt, Message: msgRequired})
	}

	// Cross-field rule, reported under endsAt
	if !req.StartsAt.IsZero() && !req.EndsAt.IsZero() && req.EndsAt.Before(req.StartsAt) {
		v = append(v, FieldError{Field: FieldEndsAt, Message: msgEndsBeforeStart})
	}

	return v
}

func checkText(v Violations, field, value string, minLen, maxLen int) Violations {
	if strings.TrimSpace(value) == "" {
		return append(v, FieldError{Field: field, Message: msgRequired})
	}
	n := utf8.RuneCountInString(value)
	if n < minLen || n > maxLen {
		return append(v, FieldError{
			Field:   field,
			Message: fmt.Sprintf("must be between %d and %d characters", minLen, maxLen),
		})
	}
	return v
}
