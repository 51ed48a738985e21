// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package deck

import (
	"math"

	"github.com/danielhkuo/purpose-swipe/models"
)

const (
	// CommitVelocity is the horizontal speed (px/ms) a release must exceed
	// to send the card away.
	CommitVelocity = 0.2

	// DragBound limits how far a card follows the pointer before rubber-banding.
	DragBound = 300.0

	// Rubberband is the elasticity past DragBound.
	Rubberband = 0.15

	// Offscreen is added to the viewport width for the fly-out distance.
	Offscreen = 200.0

	activeScale = 1.1
)

// Spring presets
var (
	SpringActive = SpringConfig{Tension: 800, Friction: 50}
	SpringGone   = SpringConfig{Tension: 200, Friction: 50}
	SpringRest   = SpringConfig{Tension: 500, Friction: 50}
)

// Gesture is one pointer sample for the card at Index.
// DX is displacement from the press point in px, VX is signed velocity in
// px/ms, and Active is true while the pointer is held.
type Gesture struct {
	Index  int
	DX     float64
	VX     float64
	Active bool
}

// Transform is where a card should animate to.
type Transform struct {
	X      float64
	Rot    float64
	Scale  float64
	Spring SpringConfig
	Gone   bool
	Dir    int
}

// Direction maps Dir to a swipe direction.
func (t Transform) Direction() string {
	if t.Dir < 0 {
		return models.DirectionLeft
	}
	return models.DirectionRight
}

// RestTransform is a centered card at rest.
func RestTransform() Transform {
	return Transform{Scale: 1, Spring: SpringRest}
}

// GoneTransform is a card that already left the deck in dir.
func GoneTransform(dir int, viewportWidth float64) Transform {
	return Transform{
		X:      (Offscreen + viewportWidth) * float64(dir),
		Scale:  1,
		Spring: SpringGone,
		Gone:   true,
		Dir:    dir,
	}
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// swipeDir picks the velocity sign, then the displacement sign, then right.
func swipeDir(g Gesture) int {
	if d := sign(g.VX); d != 0 {
		return d
	}
	if d := sign(g.DX); d != 0 {
		return d
	}
	return 1
}

// rubberband returns the elastic overshoot for distance d past a bound over
// a range of size dim.
func rubberband(d, dim, c float64) float64 {
	if dim == 0 || d == 0 {
		return 0
	}
	return (d * dim * c) / (dim + c*d)
}

// BoundDX clamps a drag displacement to ±DragBound with rubber-banding past it.
func BoundDX(dx float64) float64 {
	abs := math.Abs(dx)
	if abs <= DragBound {
		return dx
	}
	over := rubberband(abs-DragBound, 2*DragBound, Rubberband)
	return math.Copysign(DragBound+over, dx)
}

// Compute maps a gesture to a card transform. allowCommit is false for cards
// that are not the current one, which may move but never leave the deck.
func Compute(g Gesture, viewportWidth float64, allowCommit bool) Transform {
	dx := BoundDX(g.DX)
	trigger := math.Abs(g.VX) > CommitVelocity
	dir := swipeDir(g)
	gone := allowCommit && trigger && !g.Active

	t := Transform{Scale: 1, Dir: dir, Gone: gone}

	switch {
	case gone:
		t.X = (Offscreen + viewportWidth) * float64(dir)
	case g.Active:
		t.X = dx
	}

	t.Rot = dx / 100
	if gone {
		t.Rot += float64(dir) * 10 * math.Abs(g.VX)
	}

	if g.Active {
		t.Scale = activeScale
	}

	switch {
	case g.Active:
		t.Spring = SpringActive
	case gone:
		t.Spring = SpringGone
	default:
		t.Spring = SpringRest
	}

	return t
}
