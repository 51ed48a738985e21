// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"time"

	"github.com/danielhkuo/purpose-swipe/deck"
)

// cellWidth is the assumed width of one terminal column in px, so drag
// thresholds in px apply to mouse movement in cells.
const cellWidth = 8.0

// releaseIdle is how long the pointer may rest before release and still fling.
const releaseIdle = 100 * time.Millisecond

// drag turns mouse samples into gestures.
type drag struct {
	active bool
	startX int
	lastX  int
	lastAt time.Time
	vx     float64 // px/ms
}

func (d *drag) press(x int, at time.Time) {
	*d = drag{active: true, startX: x, lastX: x, lastAt: at}
}

func (d *drag) move(x int, at time.Time) {
	if !d.active {
		return
	}
	d.sample(x, at)
}

func (d *drag) release(x int, at time.Time) {
	if !d.active {
		return
	}
	if at.Sub(d.lastAt) > releaseIdle {
		d.vx = 0
	}
	if x != d.lastX {
		d.sample(x, at)
	}
	d.active = false
}

func (d *drag) sample(x int, at time.Time) {
	ms := float64(at.Sub(d.lastAt)) / float64(time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	d.vx = float64(x-d.lastX) * cellWidth / ms
	d.lastX = x
	d.lastAt = at
}

func (d *drag) gesture(index int) deck.Gesture {
	return deck.Gesture{
		Index:  index,
		DX:     float64(d.lastX-d.startX) * cellWidth,
		VX:     d.vx,
		Active: d.active,
	}
}
