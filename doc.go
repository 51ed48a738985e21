// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Purpose Swipe API server.

Purpose Swipe is a card-swiping quiz: a player swipes a fixed deck of
"purpose" cards left or right, and right swipes are tallied per category.
The server persists sessions and swipes so play-throughs can be reviewed
later. The terminal player lives in cmd/purpose-play.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=purpose.db JWT_SECRET=dev go run .

Or with flags against PostgreSQL:

	go run . -p 3318 -t postgres -d "postgres://..." -jwt-secret dev

A .env file in the working directory is loaded first; variables already set
in the environment win over it.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - JWT_SECRET (-jwt-secret): Secret for user bearer tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - CARD_SEED_FILE (-seed): YAML catalog used instead of the built-in deck

The catalog is seeded only into an empty purpose_cards table.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (cards, sessions, swipes, users)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, bearer tokens, JSON helpers
  - storage: Persistence boundary over database/sql
  - tally: Right-swipe aggregation and ranking
  - models: Request/response types
  - auth: IDs, password hashing, and JWTs
  - db: Connections, schema creation, and the card catalog
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
