// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Bearer Tokens

WithAuth reads an optional Authorization: Bearer header. A valid token puts
its claims on the request context; no header means an anonymous request; a
malformed or expired token is rejected with 401.

	mux.HandleFunc("POST /api/sessions", middleware.WithLogging(
		middleware.WithAuth(cfg.JWTSecret, sessionHandler.CreateSession)))

	userID := middleware.UserIDFromContext(r.Context()) // "" when anonymous

# CORS Middleware

Enable cross-origin requests for browser clients:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PATCH, OPTIONS with headers Content-Type and
Authorization.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
	middleware.ValidationError(w, "Invalid swipe", models.FieldError{Field: "cardId", Message: "is required"})

Parse JSON request bodies:

	var req models.RecordSwipeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
