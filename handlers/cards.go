// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/purpose-swipe/cliparse"
	"github.com/danielhkuo/purpose-swipe/middleware"
	"github.com/danielhkuo/purpose-swipe/storage"
)

type CardHandler struct {
	store *storage.Store
	cfg   cliparse.Config
}

func NewCardHandler(db *sql.DB, cfg cliparse.Config) *CardHandler {
	return &CardHandler{store: storage.New(db), cfg: cfg}
}

// ListCards handles GET /api/cards
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.store.ListCards(r.Context())
	if err != nil {
		slog.Error("failed to list cards", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch purpose cards")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, cards)
}
