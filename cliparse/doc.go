// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - JWTSecret: Secret for signing user tokens (required)
  - SeedFile: Optional YAML card catalog replacing the built-in deck

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-seed         Card catalog YAML
	-jwt-secret   User token secret
	-env-file     Dotenv file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	CARD_SEED_FILE → -seed
	JWT_SECRET     → -jwt-secret

CLI flags take precedence over environment variables. The dotenv file is
loaded first but never overrides variables that are already set. A missing
dotenv file is not an error.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is not provided
  - JWT_SECRET is not provided
  - DATABASE_TYPE is neither sqlite nor postgres
  - PORT is not a number
*/
package cliparse
