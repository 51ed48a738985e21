package models

import (
	"encoding/json"
	"time"
)

// Swipe directions
const (
	DirectionLeft  = "left"
	DirectionRight = "right"
)

// ValidDirection reports whether d is a known swipe direction.
func ValidDirection(d string) bool {
	return d == DirectionLeft || d == DirectionRight
}

// Request types

type CreateSessionRequest struct {
	UserID      *string         `json:"userId,omitempty"`
	SessionData json.RawMessage `json:"sessionData"`
}

type RecordSwipeRequest struct {
	SessionID string `json:"sessionId"`
	CardID    string `json:"cardId"`
	Direction string `json:"direction"`
}

type SessionHistoryRequest struct {
	SessionData json.RawMessage `json:"sessionData"`
}

type RegisterUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Response types

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Domain types

type PurposeCard struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Session struct {
	ID          string          `json:"id"`
	UserID      *string         `json:"userId"`
	SessionData json.RawMessage `json:"sessionData"`
	CreatedAt   time.Time       `json:"createdAt"`
	CompletedAt *time.Time      `json:"completedAt"`
}

// Completed reports whether the session has been marked complete.
func (s Session) Completed() bool {
	return s.CompletedAt != nil
}

type Swipe struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	CardID    string    `json:"cardId"`
	Direction string    `json:"direction"`
	Timestamp time.Time `json:"timestamp"`
}

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Never expose in JSON
}

// Error response

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}
