// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/survey-basket/models"
	"github.com/danielhkuo/survey-basket/store"
	"github.com/danielhkuo/survey-basket/validation"
)

// Service runs the poll lifecycle operations against a PollStore.
// It keeps no state between calls and takes no locks; the store is
// responsible for serializing conflicting writes.
type Service struct {
	store  store.PollStore
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Service)

// WithClock sets the clock used to decide what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(pollStore store.PollStore, opts ...Option) *Service {
	s := &Service{
		store:  pollStore,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current UTC calendar date.
func (s *Service) Today() models.Date {
	return models.DateOf(s.now().UTC())
}

// List returns every poll. The result is never nil.
func (s *Service) List(ctx context.Context) ([]models.PollResponse, error) {
	polls, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list polls: %w", err)
	}
	return toResponses(polls, nil), nil
}

// Current returns published polls that are open today.
func (s *Service) Current(ctx context.Context) ([]models.PollResponse, error) {
	polls, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list current polls: %w", err)
	}

	today := s.Today()
	return toResponses(polls, func(p models.Poll) bool {
		return p.IsPublished && !today.Before(p.StartsAt) && !today.After(p.EndsAt)
	}), nil
}

// Get returns the poll with the given id. found is false when it does not exist.
func (s *Service) Get(ctx context.Context, id int64) (resp models.PollResponse, found bool, err error) {
	poll, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.PollResponse{}, false, fmt.Errorf("get poll %d: %w", id, err)
	}
	if poll == nil {
		return models.PollResponse{}, false, nil
	}
	return poll.ToResponse(), true, nil
}

// Create validates req and stores a new unpublished poll. A rejected
// request returns a *validation.Error without touching the store.
func (s *Service) Create(ctx context.Context, req models.PollRequest) (models.PollResponse, error) {
	if err := validation.ValidateCreate(req, s.Today()).Err(); err != nil {
		return models.PollResponse{}, err
	}

	poll := &models.Poll{
		Title:       req.Title,
		Summary:     req.Summary,
		IsPublished: false,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	if err := s.store.Insert(ctx, poll); err != nil {
		return models.PollResponse{}, fmt.Errorf("create poll: %w", err)
	}

	s.logger.Info("poll created", "poll_id", poll.ID, "title", poll.Title)
	return poll.ToResponse(), nil
}

// Update overwrites title, summary and dates of an existing poll.
// IsPublished is left untouched; use TogglePublish for that.
// found is false, and nothing is written, when the poll does not exist.
func (s *Service) Update(ctx context.Context, id int64, req models.PollRequest) (found bool, err error) {
	poll, err := s.store.FindByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("update poll %d: %w", id, err)
	}
	if poll == nil {
		return false, nil
	}

	poll.Title = req.Title
	poll.Summary = req.Summary
	poll.StartsAt = req.StartsAt
	poll.EndsAt = req.EndsAt

	if err := store.CheckContext(ctx); err != nil {
		return false, fmt.Errorf("update poll %d: %w", id, err)
	}
	if err := s.store.Save(ctx, poll); err != nil {
		return false, fmt.Errorf("update poll %d: %w", id, err)
	}

	s.logger.Info("poll updated", "poll_id", id)
	return true, nil
}

// TogglePublish flips the published flag of an existing poll.
func (s *Service) TogglePublish(ctx context.Context, id int64) (found bool, err error) {
	poll, err := s.store.FindByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("toggle publish %d: %w", id, err)
	}
	if poll == nil {
		return false, nil
	}

	poll.IsPublished = !poll.IsPublished

	if err := store.CheckContext(ctx); err != nil {
		return false, fmt.Errorf("toggle publish %d: %w", id, err)
	}
	if err := s.store.Save(ctx, poll); err != nil {
		return false, fmt.Errorf("toggle publish %d: %w", id, err)
	}

	s.logger.Info("poll publish toggled", "poll_id", id, "is_published", poll.IsPublished)
	return true, nil
}

// Delete hard-deletes an existing poll. found is false when it does not exist.
func (s *Service) Delete(ctx context.Context, id int64) (found bool, err error) {
	poll, err := s.store.FindByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete poll %d: %w", id, err)
	}
	if poll == nil {
		return false, nil
	}

	if err := store.CheckContext(ctx); err != nil {
		return false, fmt.Errorf("delete poll %d: %w", id, err)
	}
	if err := s.store.Remove(ctx, poll); err != nil {
		return false, fmt.Errorf("delete poll %d: %w", id, err)
	}

	s.logger.Info("poll deleted", "poll_id", id)
	return true, nil
}

func toResponses(polls []models.Poll, keep func(models.Poll) bool) []models.PollResponse {
	out := make([]models.PollResponse, 0, len(polls))
	for _, p := range polls {
		if keep != nil && !keep(p) {
			continue
		}
		out = append(out, p.ToResponse())
	}
	return out
}
