// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package tui is the terminal player: a card deck driven by mouse drags or
// arrow keys, progress dots, and a results panel. It renders deck.Controller
// state and animates each card with deck.Motion at deck.FPS.
package tui
