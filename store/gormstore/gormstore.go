// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gormstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/danielhkuo/survey-basket/models"
	"github.com/danielhkuo/survey-basket/store"
)

// Store implements store.PollStore with gorm on postgres.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open connects gorm to postgres using the pgx driver.
func Open(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm database: %w", err)
	}
	return gdb, nil
}

func New(db *gorm.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:     db,
		logger: logger,
	}
}

// reader returns a session for reads that callers will not write back
// through gorm: no hooks, no association saving.
func (s *Store) reader(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Session(&gorm.Session{
		SkipHooks:              true,
		SkipDefaultTransaction: true,
	})
}

func (s *Store) FindByID(ctx context.Context, id int64) (*models.Poll, error) {
	if err := store.CheckContext(ctx); err != nil {
		return nil, err
	}

	var row pollModel
	err := s.reader(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.translate(ctx, "poll_repo_find_failed", err, "poll_id", id)
	}

	poll := row.toModel()
	return &poll, nil
}

func (s *Store) ListAll(ctx context.Context) ([]models.Poll, error) {
	if err := store.CheckContext(ctx); err != nil {
		return nil, err
	}

	var rows []pollModel
	if err := s.reader(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, s.translate(ctx, "poll_repo_list_failed", err)
	}

	polls := make([]models.Poll, 0, len(rows))
	for _, row := range rows {
		polls = append(polls, row.toModel())
	}
	return polls, nil
}

func (s *Store) Insert(ctx context.Context, poll *models.Poll) error {
	if err := store.CheckContext(ctx); err != nil {
		return err
	}

	row := pollModelFrom(*poll)
	row.ID = 0
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return s.translate(ctx, "poll_repo_insert_failed", err, "title", poll.Title)
	}

	poll.ID = row.ID
	return nil
}

func (s *Store) Save(ctx context.Context, poll *models.Poll) error {
	if err := store.CheckContext(ctx); err != nil {
		return err
	}

	row := pollModelFrom(*poll)
	res := s.db.WithContext(ctx).
		Model(&pollModel{}).
		Where("id = ?", poll.ID).
		Updates(map[string]any{
			"title":        row.Title,
			"summary":      row.Summary,
			"is_published": row.IsPublished,
			"starts_at":    row.StartsAt,
			"ends_at":      row.EndsAt,
		})
	if res.Error != nil {
		return s.translate(ctx, "poll_repo_save_failed", res.Error, "poll_id", poll.ID)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: poll %d no longer exists", store.ErrConcurrencyConflict, poll.ID)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, poll *models.Poll) error {
	if err := store.CheckContext(ctx); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Delete(&pollModel{}, poll.ID)
	if res.Error != nil {
		return s.translate(ctx, "poll_repo_remove_failed", res.Error, "poll_id", poll.ID)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: poll %d no longer exists", store.ErrConcurrencyConflict, poll.ID)
	}
	return nil
}

func (s *Store) translate(ctx context.Context, event string, err error, attrs ...any) error {
	switch {
	case store.IsContextError(err):
		return store.Cancelled(err)
	case ctx.Err() != nil:
		return fmt.Errorf("%w: %w", store.Cancelled(ctx.Err()), err)
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %w", store.ErrConstraintViolation, err)
	}
	return s.logError(event, err, attrs...)
}

func (s *Store) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+6)
	fields = append(fields,
		"event", event,
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	s.logger.Error("poll repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type pollModel struct {
	ID          int64       `gorm:"column:id;primaryKey;autoIncrement"`
	Title       string      `gorm:"column:title"`
	Summary     string      `gorm:"column:summary"`
	IsPublished bool        `gorm:"column:is_published"`
	StartsAt    models.Date `gorm:"column:starts_at;type:date"`
	EndsAt      models.Date `gorm:"column:ends_at;type:date"`
}

func (pollModel) TableName() string {
	return "polls"
}

func pollModelFrom(poll models.Poll) pollModel {
	return pollModel{
		ID:          poll.ID,
		Title:       poll.Title,
		Summary:     poll.Summary,
		IsPublished: poll.IsPublished,
		StartsAt:    poll.StartsAt,
		EndsAt:      poll.EndsAt,
	}
}

func (m pollModel) toModel() models.Poll {
	return models.Poll{
		ID:          m.ID,
		Title:       m.Title,
		Summary:     m.Summary,
		IsPublished: m.IsPublished,
		StartsAt:    m.StartsAt,
		EndsAt:      m.EndsAt,
	}
}

var _ store.PollStore = (*Store)(nil)
