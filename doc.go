// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Survey Basket API server.

Survey Basket manages scheduled polls: a titled survey with a summary, a
published flag and a start/end date. The API covers the poll lifecycle
(list, get, create, update, delete) plus publishing and a view of the
polls running today.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run .

Or with flags:

	go run . -p 3318 -d "postgres://..."
	go run . -t sqlite -d "file:polls.db"

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - STORE_BACKEND (-store): sql or gorm (default: sql; gorm needs postgres)
  - ENV_FILE (-env-file): dotenv file loaded before reading the environment

# Architecture

  - handlers: HTTP request handlers for polls
  - router: chi route definitions
  - middleware: CORS, logging, JSON helpers
  - polls: lifecycle service (validation, not-found, field copy)
  - validation: field rules for poll requests
  - store: PollStore interface with database/sql and gorm adapters
  - models: Poll, Date and wire types
  - db: connection and schema creation
  - cliparse: Configuration parsing

SIGINT and SIGTERM stop accepting connections and wait up to ten seconds
for in-flight requests to finish before the database is closed.
*/
package main
