// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally aggregates swipes into per-category counts.

Only right swipes count:

	results := tally.Count([]tally.Pick{
		{Category: "Relationships", Direction: "right"},
		{Category: "Relationships", Direction: "right"},
		{Category: "Experience", Direction: "left"},
	})
	// results == {"Relationships": 2}

# Ordering

Results keep the order in which categories first received a right swipe.
Top ranks by count and breaks ties by that order, so ranking is
deterministic:

	top := results.Top(3)

# Incremental Use

The deck keeps a running Tally and snapshots it for display:

	var t tally.Tally
	t.Add(card.Category, direction)
	shown := t.Results()
*/
package tally
