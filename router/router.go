// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/survey-basket/handlers"
	"github.com/danielhkuo/survey-basket/middleware"
)

func NewRouter(svc handlers.PollService) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS)

	pollHandler := handlers.NewPollHandler(svc)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/polls", func(r chi.Router) {
		r.Get("/", middleware.WithLogging(pollHandler.ListPolls))
		r.Post("/", middleware.WithLogging(pollHandler.CreatePoll))
		r.Get("/current", middleware.WithLogging(pollHandler.CurrentPolls))

		r.Get("/{id}", middleware.WithLogging(pollHandler.GetPoll))
		r.Put("/{id}", middleware.WithLogging(pollHandler.UpdatePoll))
		r.Delete("/{id}", middleware.WithLogging(pollHandler.DeletePoll))
		r.Put("/{id}/togglePublish", middleware.WithLogging(pollHandler.TogglePublish))
	})

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("survey-basket API v1"))
	})

	return r
}
