// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - PollRequest: title, summary, isPublished, startsAt, endsAt

# Response Types

Types for JSON responses:

  - PollResponse: id plus every PollRequest field
  - ErrorResponse: error, message
  - ValidationErrorResponse: error, message, errors (field, message)

# Domain Types

  - Poll: the stored poll row
  - Date: calendar date serialized as "YYYY-MM-DD"

Date implements json.Marshaler, sql.Scanner and driver.Valuer so the
same value travels from the wire to postgres DATE or sqlite TEXT
columns without conversion code in the stores:

	start, _ := models.ParseDate("2026-10-17")
	end := start.AddDays(3)
*/
package models
