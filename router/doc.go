// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Survey Basket API.

# Route Registration

NewRouter builds a chi.Mux around a poll service:

	svc := polls.New(sqlstore.New(conn, db.Postgres, nil))
	mux := router.NewRouter(svc)

Every request passes through chi's Recoverer and the CORS middleware.
Poll routes are additionally wrapped with middleware.WithLogging.

# Endpoints

	GET    /health                    - Liveness check
	GET    /                          - API banner
	GET    /polls                     - List polls
	GET    /polls/current             - Published polls running today
	GET    /polls/{id}                - Get one poll
	POST   /polls                     - Create poll
	PUT    /polls/{id}                - Update poll
	PUT    /polls/{id}/togglePublish  - Flip published flag
	DELETE /polls/{id}                - Delete poll

Unknown paths return 404 and known paths with the wrong method return 405.
*/
package router
