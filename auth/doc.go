// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides ID generation, password hashing, and user tokens.

# IDs

Users, sessions, and swipes get UUIDv4 string IDs:

	id := auth.GenerateID()

# Passwords

Passwords are stored as bcrypt hashes only:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, password) // ErrInvalidCredentials on mismatch

# Tokens

Logged-in users receive an HS256 JWT whose subject is the user ID:

	token, err := auth.SignToken(user.ID, user.Username, secret, time.Now())
	claims, err := auth.ParseToken(token, secret)

Tokens expire after TokenTTL. Accounts are optional; anonymous play-throughs
are correlated by the client-side session identifier instead.
*/
package auth
