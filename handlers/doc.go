// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Purpose Swipe API.

# Handler Types

Each handler is a struct with a storage.Store and config:

  - CardHandler: Purpose card catalog
  - SessionHandler: Session lifecycle, results, swipe list, and history
  - SwipeHandler: Swipe recording
  - UserHandler: Optional accounts and bearer token login

Handlers are created via constructor functions that accept *sql.DB and Config:

	sessionHandler := handlers.NewSessionHandler(db, cfg)

# Session Lifecycle

A session is created open and completed once:

	POST  /api/sessions               → CreateSession
	POST  /api/swipes                 → RecordSwipe (one per card)
	PATCH /api/sessions/{id}/complete → CompleteSession (keeps first completedAt)
	GET   /api/sessions/{id}/results  → GetResults ({category: count})

Clients that cannot log in pass an opaque sessionData payload such as
{"userSession": "<id>"} and later list their sessions with
POST /api/sessions/history using the same payload.

# Authentication

Accounts are optional. POST /api/users/login returns a JWT; sending it as a
Bearer token on POST /api/sessions records the user on the session.

# Error Handling

All errors return JSON with error, message, and for validation failures a
details list:

	{"error": "Bad Request", "message": "Invalid swipe data",
	 "details": [{"field": "direction", "message": "must be left or right"}]}

Status codes:
  - 400: Invalid input or unknown session/card on a swipe
  - 401: Bad credentials or invalid bearer token
  - 404: Session not found
  - 409: Username already taken
  - 500: Internal error (details logged, not returned)
*/
package handlers
