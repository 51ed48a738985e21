// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package storage persists purpose cards, sessions, swipes, and users.

A Store wraps a *sql.DB opened by package db and works against either
PostgreSQL or SQLite:

	store := storage.New(conn)
	cards, err := store.ListCards(ctx)

# Sessions

A session is one play-through. It is created open and completed at most
once; CompleteSession on an already completed session returns it unchanged.

Session data is an opaque JSON value supplied by the client. It is stored in
canonical form (sorted keys, no insignificant whitespace) so SessionsByData
matches payloads that are equal as JSON values:

	sessions, err := store.SessionsByData(ctx, json.RawMessage(`{"userSession":"abc"}`))

# Swipes

RecordSwipe appends a swipe after checking that the session and card exist.
SwipeResults counts right swipes per card category, in the order the
categories were first swiped.

# Errors

Callers map the sentinel errors with errors.Is:

	ErrNotFound          unknown session or user
	ErrInvalidReference  swipe for an unknown session or card
	ErrInvalidData       bad direction or missing session data
	ErrConflict          username already taken
*/
package storage
