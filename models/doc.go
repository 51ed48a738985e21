// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

All JSON field names are camelCase to match the web client contract.

# Request Types

Types for parsing incoming JSON:

  - CreateSessionRequest: userId (optional), sessionData (required, opaque JSON)
  - RecordSwipeRequest: sessionId, cardId, direction
  - SessionHistoryRequest: sessionData
  - RegisterUserRequest, LoginRequest: username, password

# Domain Types

  - PurposeCard: catalog entry, immutable after seeding
  - Session: one play-through, completedAt is nil until finished
  - Swipe: one (session, card, direction) event
  - User: optional account; the password hash is never serialized

# Constants

Swipe directions:

	DirectionLeft  = "left"
	DirectionRight = "right"
*/
package models
