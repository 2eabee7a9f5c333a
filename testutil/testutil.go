// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/survey-basket/cliparse"
	"github.com/danielhkuo/survey-basket/db"
	"github.com/danielhkuo/survey-basket/models"
)

// PostgresURLEnv names the variable that enables postgres-only tests
const PostgresURLEnv = "TEST_POSTGRES_URL"

// Today is the fixed calendar date tests run against
var Today = models.NewDate(2026, time.October, 17)

// Clock returns a clock pinned to noon on Today
func Clock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	}
}

// SetupTestDB creates a fresh in-memory sqlite database with the full schema.
// Each call gets its own database, so tests can run in parallel.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := sql.Open(db.SQLite, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A single connection keeps the in-memory database alive and
	// serializes writers the way sqlite expects.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(context.Background(), conn, db.SQLite); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupPostgresDB connects to TEST_POSTGRES_URL and recreates the polls table.
// The test is skipped when the variable is unset.
func SetupPostgresDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv(PostgresURLEnv)
	if url == "" {
		t.Skipf("%s not set, skipping postgres test", PostgresURLEnv)
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, db.Postgres, url)
	if err != nil {
		t.Fatalf("Failed to open postgres database: %v", err)
	}

	if _, err := conn.ExecContext(ctx, `DROP TABLE IF EXISTS polls CASCADE`); err != nil {
		conn.Close()
		t.Fatalf("Failed to clean database: %v", err)
	}
	if err := db.CreateSchema(ctx, conn, db.Postgres); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "file::memory:",
		DatabaseType: db.SQLite,
		StoreBackend: cliparse.BackendSQL,
	}
}

// ValidPollRequest returns a request that passes create validation on Today
func ValidPollRequest(title string) models.PollRequest {
	return models.PollRequest{
		Title:    title,
		Summary:  "Feedback on product",
		StartsAt: Today,
		EndsAt:   Today.AddDays(3),
	}
}

// CreateTestPoll inserts a poll row directly and returns its id
func CreateTestPoll(t *testing.T, conn *sql.DB, title string, published bool, startsAt, endsAt models.Date) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO polls (title, summary, is_published, starts_at, ends_at)
		VALUES (?, 'A test poll', ?, ?, ?)
		RETURNING id
	`, title, published, startsAt, endsAt).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return id
}

// CountPolls returns the number of rows in the polls table
func CountPolls(t *testing.T, conn *sql.DB) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM polls").Scan(&n); err != nil {
		t.Fatalf("Failed to count polls: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
