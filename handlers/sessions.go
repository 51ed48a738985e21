// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/purpose-swipe/cliparse"
	"github.com/danielhkuo/purpose-swipe/middleware"
	"github.com/danielhkuo/purpose-swipe/models"
	"github.com/danielhkuo/purpose-swipe/storage"
)

type SessionHandler struct {
	store *storage.Store
	cfg   cliparse.Config
}

func NewSessionHandler(db *sql.DB, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{store: storage.New(db), cfg: cfg}
}

func missingJSON(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// CreateSession handles POST /api/sessions
// A bearer token, when present, decides the owning user.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if missingJSON(req.SessionData) {
		middleware.ValidationError(w, "Invalid session data",
			models.FieldError{Field: "sessionData", Message: "is required"})
		return
	}

	userID := req.UserID
	if uid := middleware.UserIDFromContext(r.Context()); uid != "" {
		userID = &uid
	}

	sess, err := h.store.CreateSession(r.Context(), userID, req.SessionData)
	if errors.Is(err, storage.ErrInvalidData) {
		middleware.ValidationError(w, "Invalid session data",
			models.FieldError{Field: "sessionData", Message: "must be valid JSON"})
		return
	}
	if err != nil {
		slog.Error("failed to create session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("session created", "session_id", sess.ID, "authenticated", userID != nil)

	middleware.JSONResponse(w, http.StatusOK, sess)
}

// GetSession handles GET /api/sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	sess, err := h.store.GetSession(r.Context(), sessionID)
	if errors.Is(err, storage.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to get session", "error", err, "session_id", sessionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, sess)
}

// CompleteSession handles PATCH /api/sessions/{id}/complete
// Completing an already completed session keeps the first timestamp.
func (h *SessionHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	sess, err := h.store.CompleteSession(r.Context(), sessionID)
	if errors.Is(err, storage.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to complete session", "error", err, "session_id", sessionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to complete session")
		return
	}

	slog.Info("session completed", "session_id", sess.ID)

	middleware.JSONResponse(w, http.StatusOK, sess)
}

// GetResults handles GET /api/sessions/{id}/results
// Returns {category: count} for right swipes; unknown sessions yield {}.
func (h *SessionHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	results, err := h.store.SwipeResults(r.Context(), sessionID)
	if err != nil {
		slog.Error("failed to compute results", "error", err, "session_id", sessionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// GetSwipes handles GET /api/sessions/{id}/swipes
func (h *SessionHandler) GetSwipes(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	swipes, err := h.store.SessionSwipes(r.Context(), sessionID)
	if err != nil {
		slog.Error("failed to list swipes", "error", err, "session_id", sessionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch swipes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, swipes)
}

// GetHistory handles POST /api/sessions/history
// Lists sessions whose sessionData equals the given payload, newest first.
func (h *SessionHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	var req models.SessionHistoryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if missingJSON(req.SessionData) {
		middleware.ValidationError(w, "Session identifier required",
			models.FieldError{Field: "sessionData", Message: "is required"})
		return
	}

	sessions, err := h.store.SessionsByData(r.Context(), req.SessionData)
	if errors.Is(err, storage.ErrInvalidData) {
		middleware.ValidationError(w, "Session identifier required",
			models.FieldError{Field: "sessionData", Message: "must be valid JSON"})
		return
	}
	if err != nil {
		slog.Error("failed to fetch session history", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch session history")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, sessions)
}
