// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Survey Basket API.

# Poll Handler

PollHandler translates HTTP requests into calls on a PollService and
maps the outcome back to a status code:

	pollHandler := handlers.NewPollHandler(polls.New(pollStore))

Routes:

	GET    /polls                     → ListPolls (every poll, by id)
	GET    /polls/current             → CurrentPolls (published, running today)
	GET    /polls/{id}                → GetPoll
	POST   /polls                     → CreatePoll (201 + Location)
	PUT    /polls/{id}                → UpdatePoll (204)
	PUT    /polls/{id}/togglePublish  → TogglePublish (204)
	DELETE /polls/{id}                → DeletePoll (204)

The {id} parameter is read with chi.URLParam, so handlers must be mounted
on a chi router (or given a chi route context in tests).

# Error Mapping

	validation failure          → 400 with a per-field error list
	poll not found              → 404
	duplicate title             → 409
	row changed underneath us   → 409
	client went away            → 499
	anything else               → 500 "Database error"
*/
package handlers
