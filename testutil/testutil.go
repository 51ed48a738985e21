// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/purpose-swipe/auth"
	"github.com/danielhkuo/purpose-swipe/cliparse"
	"github.com/danielhkuo/purpose-swipe/db"
)

// TestJWTSecret signs user tokens in tests
const TestJWTSecret = "test-jwt-secret"

// SetupTestDB creates a fresh SQLite database file with the full schema.
// The file lives in t.TempDir and is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.DatabaseSQLite, filepath.Join(t.TempDir(), "purpose.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "file:test.db",
		DatabaseType: cliparse.DatabaseSQLite,
		JWTSecret:    TestJWTSecret,
	}
}

// Card is a minimal fixture card
type Card struct {
	ID       string
	Category string
}

// SeedTestCards inserts cards in the given order
func SeedTestCards(t *testing.T, conn *sql.DB, cards ...Card) {
	t.Helper()

	for i, c := range cards {
		_, err := conn.Exec(`
			INSERT INTO purpose_cards (id, sort_order, title, description, image, category, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, c.ID, i, "Card "+c.ID, "About "+c.ID, "/img/"+c.ID+".png", c.Category, time.Now().UTC())
		if err != nil {
			t.Fatalf("Failed to create test card: %v", err)
		}
	}
}

// CreateTestSession creates an open session for the given identifier and returns its ID
func CreateTestSession(t *testing.T, conn *sql.DB, identifier string) string {
	t.Helper()

	sessionID := auth.GenerateID()
	data, _ := json.Marshal(map[string]string{"userSession": identifier})
	_, err := conn.Exec(`
		INSERT INTO sessions (id, session_data, created_at)
		VALUES ($1, $2, $3)
	`, sessionID, string(data), time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return sessionID
}

// AddTestSwipe appends a swipe to a session and returns its ID
func AddTestSwipe(t *testing.T, conn *sql.DB, sessionID, cardID, direction string) string {
	t.Helper()

	swipeID := auth.GenerateID()
	_, err := conn.Exec(`
		INSERT INTO swipes (id, session_id, card_id, direction, swiped_at)
		VALUES ($1, $2, $3, $4, $5)
	`, swipeID, sessionID, cardID, direction, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test swipe: %v", err)
	}

	return swipeID
}

// CreateTestUser stores a user with a bcrypt-hashed password and returns its ID
func CreateTestUser(t *testing.T, conn *sql.DB, username, password string) string {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	userID := auth.GenerateID()
	_, err = conn.Exec(`
		INSERT INTO users (id, username, password)
		VALUES ($1, $2, $3)
	`, userID, username, hash)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var payload []byte
		if raw, ok := body.(string); ok {
			payload = []byte(raw)
		} else {
			payload, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
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
