// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/purpose-swipe/cliparse"
	"github.com/danielhkuo/purpose-swipe/middleware"
	"github.com/danielhkuo/purpose-swipe/models"
	"github.com/danielhkuo/purpose-swipe/storage"
)

type SwipeHandler struct {
	store *storage.Store
	cfg   cliparse.Config
}

func NewSwipeHandler(db *sql.DB, cfg cliparse.Config) *SwipeHandler {
	return &SwipeHandler{store: storage.New(db), cfg: cfg}
}

func validateSwipe(req models.RecordSwipeRequest) []models.FieldError {
	var details []models.FieldError
	if req.SessionID == "" {
		details = append(details, models.FieldError{Field: "sessionId", Message: "is required"})
	}
	if req.CardID == "" {
		details = append(details, models.FieldError{Field: "cardId", Message: "is required"})
	}
	if !models.ValidDirection(req.Direction) {
		details = append(details, models.FieldError{Field: "direction", Message: "must be left or right"})
	}
	return details
}

// RecordSwipe handles POST /api/swipes
func (h *SwipeHandler) RecordSwipe(w http.ResponseWriter, r *http.Request) {
	var req models.RecordSwipeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if details := validateSwipe(req); len(details) > 0 {
		middleware.ValidationError(w, "Invalid swipe data", details...)
		return
	}

	swipe, err := h.store.RecordSwipe(r.Context(), req.SessionID, req.CardID, req.Direction)
	if errors.Is(err, storage.ErrInvalidReference) {
		middleware.ValidationError(w, "Invalid swipe data",
			models.FieldError{Field: "sessionId/cardId", Message: "session and card must exist"})
		return
	}
	if errors.Is(err, storage.ErrInvalidData) {
		middleware.ValidationError(w, "Invalid swipe data",
			models.FieldError{Field: "direction", Message: "must be left or right"})
		return
	}
	if err != nil {
		slog.Error("failed to record swipe", "error", err, "session_id", req.SessionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record swipe")
		return
	}

	slog.Info("swipe recorded",
		"session_id", swipe.SessionID,
		"card_id", swipe.CardID,
		"direction", swipe.Direction,
	)

	middleware.JSONResponse(w, http.StatusOK, swipe)
}
