// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/purpose-swipe/models"
)

//go:embed cards.yaml
var defaultCatalog []byte

type catalogFile struct {
	Cards []catalogCard `yaml:"cards"`
}

type catalogCard struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	Category    string `yaml:"category"`
}

// DefaultCatalog returns the built-in purpose card deck in seed order
func DefaultCatalog() ([]models.PurposeCard, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalog reads a card deck from a YAML file.
// An empty path returns the built-in deck.
func LoadCatalog(path string) ([]models.PurposeCard, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML card deck
func ParseCatalog(data []byte) ([]models.PurposeCard, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Cards) == 0 {
		return nil, errors.New("parse catalog: no cards")
	}

	seen := make(map[string]bool, len(file.Cards))
	cards := make([]models.PurposeCard, 0, len(file.Cards))
	for i, c := range file.Cards {
		if c.ID == "" || c.Title == "" || c.Category == "" {
			return nil, fmt.Errorf("parse catalog: card %d needs id, title and category", i)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("parse catalog: duplicate card id %q", c.ID)
		}
		seen[c.ID] = true

		cards = append(cards, models.PurposeCard{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Image:       c.Image,
			Category:    c.Category,
		})
	}

	return cards, nil
}
