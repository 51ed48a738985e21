// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections, schema creation, and the card catalog.

# Connections

Open supports PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite):

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

SQLite connections always enable foreign keys so swipe references are
enforced the same way on both engines.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: optional accounts (bcrypt password hash)
  - purpose_cards: the fixed deck, ordered by sort_order
  - sessions: one row per play-through, completed_at set once
  - swipes: append-only swipe log

# Relationships

	sessions 1──* swipes       (ON DELETE CASCADE)
	purpose_cards 1──* swipes

sessions.user_id is a loose reference; anonymous sessions leave it NULL.

# Catalog

The built-in deck lives in cards.yaml and is embedded in the binary:

	cards, err := db.LoadCatalog(cfg.SeedFile) // "" means built-in
*/
package db
