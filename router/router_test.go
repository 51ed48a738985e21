// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/purpose-swipe/models"
	"github.com/danielhkuo/purpose-swipe/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "purpose-swipe API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	// 400 and 404 from the handler are fine; 405 means the route is missing
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"GET", "/api/cards"},
		{"POST", "/api/sessions"},
		{"GET", "/api/sessions/test-id"},
		{"PATCH", "/api/sessions/test-id/complete"},
		{"GET", "/api/sessions/test-id/results"},
		{"GET", "/api/sessions/test-id/swipes"},
		{"POST", "/api/sessions/history"},
		{"POST", "/api/swipes"},
		{"POST", "/api/users"},
		{"POST", "/api/users/login"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestSpecificMethodRouting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"POST to health endpoint", "POST", "/health", http.StatusMethodNotAllowed},
		{"POST to complete endpoint", "POST", "/api/sessions/test-id/complete", http.StatusMethodNotAllowed},
		{"GET to swipes falls through to root", "GET", "/api/swipes", http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected %d for %s %s, got %d", tc.expectedStatus, tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	sessionID := testutil.CreateTestSession(t, db, "router")

	req := httptest.NewRequest("GET", "/api/sessions/"+sessionID, nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var sess models.Session
	testutil.AssertJSON(t, w, &sess)
	if sess.ID != sessionID {
		t.Errorf("Expected session %s, got %s", sessionID, sess.ID)
	}
}

func TestLoginTokenOwnsSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	userID := testutil.CreateTestUser(t, db, "alice", "password123")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/users/login",
		models.LoginRequest{Username: "alice", Password: "password123"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var login models.LoginResponse
	testutil.AssertJSON(t, w, &login)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/sessions",
		`{"sessionData":{"userSession":"router"}}`,
		map[string]string{"Authorization": "Bearer " + login.Token}))
	testutil.AssertStatus(t, w, http.StatusOK)

	var sess models.Session
	testutil.AssertJSON(t, w, &sess)
	if sess.UserID == nil || *sess.UserID != userID {
		t.Errorf("Expected session owned by %s, got %v", userID, sess.UserID)
	}

	// A garbage token is rejected before the handler runs
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/sessions",
		`{"sessionData":{"userSession":"router"}}`,
		map[string]string{"Authorization": "Bearer not-a-jwt"}))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}
