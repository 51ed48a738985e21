// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/purpose-swipe/auth"
	"github.com/danielhkuo/purpose-swipe/cliparse"
	"github.com/danielhkuo/purpose-swipe/middleware"
	"github.com/danielhkuo/purpose-swipe/models"
	"github.com/danielhkuo/purpose-swipe/storage"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt input limit, in bytes
	maxUsernameLength = 64
)

type UserHandler struct {
	store *storage.Store
	cfg   cliparse.Config
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{store: storage.New(db), cfg: cfg}
}

// Register handles POST /api/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	username := strings.TrimSpace(req.Username)
	var details []models.FieldError
	if username == "" || utf8.RuneCountInString(username) > maxUsernameLength {
		details = append(details, models.FieldError{Field: "username", Message: "must be 1-64 characters"})
	}
	switch {
	case len(req.Password) < minPasswordLength:
		details = append(details, models.FieldError{Field: "password", Message: "must be at least 8 characters"})
	case len(req.Password) > maxPasswordLength:
		details = append(details, models.FieldError{Field: "password", Message: "must be at most 72 bytes"})
	}
	if len(details) > 0 {
		middleware.ValidationError(w, "Invalid user data", details...)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user, err := h.store.CreateUser(r.Context(), username, hash)
	if errors.Is(err, storage.ErrConflict) {
		middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
		return
	}
	if err != nil {
		slog.Error("failed to create user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	slog.Info("user registered", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusCreated, user)
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), username)
	if errors.Is(err, storage.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		slog.Error("failed to look up user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := auth.SignToken(user.ID, user.Username, h.cfg.JWTSecret, time.Now())
	if err != nil {
		slog.Error("failed to sign token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Login failed")
		return
	}

	slog.Info("user logged in", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token: token,
		User:  user,
	})
}
