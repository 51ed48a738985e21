// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// EnvPath overrides the default identity file location
const EnvPath = "PURPOSE_IDENTITY_PATH"

const appDir = "purpose-swipe"

// Load returns the identifier stored at path. A missing or empty file gets a
// fresh UUID written with 0600 permissions.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("identity: read %s: %w", path, err)
	}

	id := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("identity: create dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("identity: write %s: %w", path, err)
	}
	return id, nil
}

// Path resolves the identity file location. An explicit path wins, then
// $PURPOSE_IDENTITY_PATH, then $XDG_CONFIG_HOME/purpose-swipe/identity,
// then ~/.config/purpose-swipe/identity.
func Path(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir, "identity"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("identity: %w", err)
	}
	return filepath.Join(home, ".config", appDir, "identity"), nil
}

var (
	defaultOnce sync.Once
	defaultPath string
	defaultID   string
	defaultErr  error
)

// SetPath sets the explicit path used by Default. It has no effect after the
// first Default call.
func SetPath(path string) {
	defaultPath = path
}

// Default returns the process-wide identifier, reading or creating it on
// first use. Later calls return the same value.
func Default() (string, error) {
	defaultOnce.Do(func() {
		path, err := Path(defaultPath)
		if err != nil {
			defaultErr = err
			return
		}
		defaultID, defaultErr = Load(path)
	})
	return defaultID, defaultErr
}

// SessionData builds the opaque session payload that ties sessions to this
// identifier.
func SessionData(id string) json.RawMessage {
	data, _ := json.Marshal(map[string]string{"userSession": id})
	return data
}
