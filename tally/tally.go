// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/danielhkuo/purpose-swipe/models"
)

// Pick is one swipe reduced to what aggregation needs.
type Pick struct {
	Category  string
	Direction string
}

// Entry is a category and its count of right swipes.
type Entry struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Results holds per-category counts in category introduction order.
// It encodes as a JSON object whose keys keep that order.
type Results []Entry

// Count returns the number of right swipes per category.
// Categories that only ever saw left swipes are absent.
func Count(picks []Pick) Results {
	var t Tally
	for _, p := range picks {
		t.Add(p.Category, p.Direction)
	}
	return t.Results()
}

// Get returns the count for a category, or 0.
func (r Results) Get(category string) int {
	for _, e := range r {
		if e.Category == category {
			return e.Count
		}
	}
	return 0
}

// Total returns the sum of all counts.
func (r Results) Total() int {
	total := 0
	for _, e := range r {
		total += e.Count
	}
	return total
}

// Top returns the n highest counts, highest first.
// Equal counts keep introduction order. n <= 0 returns every entry.
func (r Results) Top(n int) Results {
	ranked := make(Results, len(r))
	copy(ranked, r)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Map returns the results as a plain map.
func (r Results) Map() map[string]int {
	m := make(map[string]int, len(r))
	for _, e := range r {
		m[e.Category] = e.Count
	}
	return m
}

// MarshalJSON encodes the results as {"category": count, ...}.
func (r Results) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", e.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (r *Results) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("tally: expected object, got %v", tok)
	}

	out := Results{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		category, ok := tok.(string)
		if !ok {
			return fmt.Errorf("tally: expected key, got %v", tok)
		}
		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("tally: count for %q: %w", category, err)
		}
		out = append(out, Entry{Category: category, Count: count})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = out
	return nil
}

// Tally accumulates right swipes incrementally.
// The zero value is ready to use. Not safe for concurrent use.
type Tally struct {
	entries Results
	index   map[string]int
}

// Add records one swipe. Only right swipes change the tally.
func (t *Tally) Add(category, direction string) {
	if direction != models.DirectionRight {
		return
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if i, ok := t.index[category]; ok {
		t.entries[i].Count++
		return
	}
	t.index[category] = len(t.entries)
	t.entries = append(t.entries, Entry{Category: category, Count: 1})
}

// Reset clears all counts.
func (t *Tally) Reset() {
	t.entries = nil
	t.index = nil
}

// Results returns a snapshot of the current counts.
func (t *Tally) Results() Results {
	out := make(Results, len(t.entries))
	copy(out, t.entries)
	return out
}
