// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/purpose-swipe/cliparse"
	"github.com/danielhkuo/purpose-swipe/handlers"
	"github.com/danielhkuo/purpose-swipe/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	cardHandler := handlers.NewCardHandler(db, cfg)
	sessionHandler := handlers.NewSessionHandler(db, cfg)
	swipeHandler := handlers.NewSwipeHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Card catalog
	mux.HandleFunc("GET /api/cards", middleware.WithLogging(cardHandler.ListCards))

	// Sessions
	mux.HandleFunc("POST /api/sessions", middleware.WithLogging(middleware.WithAuth(cfg.JWTSecret, sessionHandler.CreateSession)))
	mux.HandleFunc("POST /api/sessions/history", middleware.WithLogging(sessionHandler.GetHistory))
	mux.HandleFunc("GET /api/sessions/{id}", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("PATCH /api/sessions/{id}/complete", middleware.WithLogging(sessionHandler.CompleteSession))
	mux.HandleFunc("GET /api/sessions/{id}/results", middleware.WithLogging(sessionHandler.GetResults))
	mux.HandleFunc("GET /api/sessions/{id}/swipes", middleware.WithLogging(sessionHandler.GetSwipes))

	// Swipes
	mux.HandleFunc("POST /api/swipes", middleware.WithLogging(swipeHandler.RecordSwipe))

	// Users (optional accounts)
	mux.HandleFunc("POST /api/users", middleware.WithLogging(userHandler.Register))
	mux.HandleFunc("POST /api/users/login", middleware.WithLogging(userHandler.Login))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("purpose-swipe API v1"))
	})

	return mux
}
