// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Purpose Swipe API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Cards:

	GET /api/cards - Catalog in seed order

Sessions:

	POST  /api/sessions               - Start a play-through (optional Bearer token)
	POST  /api/sessions/history       - Sessions matching a sessionData payload
	GET   /api/sessions/{id}          - Session details
	PATCH /api/sessions/{id}/complete - Mark complete (first call wins)
	GET   /api/sessions/{id}/results  - Right swipes per category
	GET   /api/sessions/{id}/swipes   - Raw swipe log

Swipes:

	POST /api/swipes - Record one swipe

Users:

	POST /api/users       - Register
	POST /api/users/login - Issue a bearer token

Every API route is wrapped in middleware.WithLogging. Session creation is
additionally wrapped in middleware.WithAuth so a bearer token sets userId.
*/
package router
