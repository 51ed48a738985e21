// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package identity keeps the anonymous player identifier that links
// sessions across runs. The value is a UUID stored in a small file under the
// user's config directory and read at most once per process.
package identity
