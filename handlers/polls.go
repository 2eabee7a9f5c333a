// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/survey-basket/middleware"
	"github.com/danielhkuo/survey-basket/models"
	"github.com/danielhkuo/survey-basket/store"
	"github.com/danielhkuo/survey-basket/validation"
)

// PollService is the lifecycle surface the handler needs
type PollService interface {
	List(ctx context.Context) ([]models.PollResponse, error)
	Current(ctx context.Context) ([]models.PollResponse, error)
	Get(ctx context.Context, id int64) (models.PollResponse, bool, error)
	Create(ctx context.Context, req models.PollRequest) (models.PollResponse, error)
	Update(ctx context.Context, id int64, req models.PollRequest) (bool, error)
	TogglePublish(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type PollHandler struct {
	svc PollService
}

func NewPollHandler(svc PollService) *PollHandler {
	return &PollHandler{svc: svc}
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "list polls")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// CurrentPolls handles GET /polls/current
// Returns published polls running today
func (h *PollHandler) CurrentPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.svc.Current(r.Context())
	if err != nil {
		writeServiceError(w, err, "list current polls")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, ok := parsePollID(w, r)
	if !ok {
		return
	}

	poll, found, err := h.svc.Get(r.Context(), pollID)
	if err != nil {
		writeServiceError(w, err, "get poll")
		return
	}
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.PollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "create poll")
		return
	}

	w.Header().Set("Location", "/polls/"+strconv.FormatInt(poll.ID, 10))
	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// UpdatePoll handles PUT /polls/{id}
// Overwrites title, summary and dates; isPublished is left as is
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	pollID, ok := parsePollID(w, r)
	if !ok {
		return
	}

	var req models.PollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if v := validation.ValidateUpdate(req); !v.Valid() {
		middleware.ValidationErrorResponse(w, v)
		return
	}

	found, err := h.svc.Update(r.Context(), pollID, req)
	if err != nil {
		writeServiceError(w, err, "update poll")
		return
	}
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TogglePublish handles PUT /polls/{id}/togglePublish
func (h *PollHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	pollID, ok := parsePollID(w, r)
	if !ok {
		return
	}

	found, err := h.svc.TogglePublish(r.Context(), pollID)
	if err != nil {
		writeServiceError(w, err, "toggle publish")
		return
	}
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeletePoll handles DELETE /polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID, ok := parsePollID(w, r)
	if !ok {
		return
	}

	found, err := h.svc.Delete(r.Context(), pollID)
	if err != nil {
		writeServiceError(w, err, "delete poll")
		return
	}
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parsePollID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id must be a positive integer")
		return 0, false
	}

	return id, true
}

// writeServiceError maps lifecycle and store errors to HTTP statuses
func writeServiceError(w http.ResponseWriter, err error, action string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		middleware.ValidationErrorResponse(w, verr.Violations)
	case errors.Is(err, store.ErrCancelled):
		slog.Info("request cancelled", "action", action)
		middleware.ErrorResponse(w, middleware.StatusClientClosedRequest, "Request cancelled")
	case errors.Is(err, store.ErrConstraintViolation):
		middleware.ErrorResponse(w, http.StatusConflict, "A poll with the same title already exists")
	case errors.Is(err, store.ErrConcurrencyConflict):
		middleware.ErrorResponse(w, http.StatusConflict, "Poll was changed by another request")
	default:
		slog.Error("failed to "+action, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
