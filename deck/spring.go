// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package deck

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// FPS is the animation frame rate.
const FPS = 60

const settleEpsilon = 0.01

// SpringConfig describes a unit-mass spring by tension and friction.
type SpringConfig struct {
	Tension  float64
	Friction float64
}

// AngularFrequency is sqrt(tension) for unit mass.
func (c SpringConfig) AngularFrequency() float64 {
	return math.Sqrt(c.Tension)
}

// DampingRatio is friction / (2*sqrt(tension)) for unit mass.
func (c SpringConfig) DampingRatio() float64 {
	if c.Tension <= 0 {
		return 1
	}
	return c.Friction / (2 * math.Sqrt(c.Tension))
}

// Spring animates one value toward a target.
type Spring struct {
	Pos    float64
	Vel    float64
	Target float64

	cfg    SpringConfig
	spring harmonica.Spring
}

// NewSpring starts a spring at pos.
func NewSpring(cfg SpringConfig, pos float64) *Spring {
	s := &Spring{Pos: pos, Target: pos}
	s.Configure(cfg)
	return s
}

// Configure swaps the spring constants, keeping position and velocity.
func (s *Spring) Configure(cfg SpringConfig) {
	if cfg == s.cfg {
		return
	}
	s.cfg = cfg
	s.spring = harmonica.NewSpring(harmonica.FPS(FPS), cfg.AngularFrequency(), cfg.DampingRatio())
}

// Step advances one frame and returns the new position.
func (s *Spring) Step() float64 {
	s.Pos, s.Vel = s.spring.Update(s.Pos, s.Vel, s.Target)
	return s.Pos
}

// Settled reports whether the spring is at rest on its target.
func (s *Spring) Settled() bool {
	return math.Abs(s.Pos-s.Target) < settleEpsilon && math.Abs(s.Vel) < settleEpsilon
}

// Snap jumps to the target.
func (s *Spring) Snap() {
	s.Pos, s.Vel = s.Target, 0
}

// Motion animates a card's position, rotation, and scale together.
type Motion struct {
	X     *Spring
	Rot   *Spring
	Scale *Spring
}

// NewMotion starts at t without animating.
func NewMotion(t Transform) *Motion {
	return &Motion{
		X:     NewSpring(t.Spring, t.X),
		Rot:   NewSpring(t.Spring, t.Rot),
		Scale: NewSpring(t.Spring, t.Scale),
	}
}

// SetTarget retargets all three springs to t with its spring constants.
func (m *Motion) SetTarget(t Transform) {
	for _, pair := range []struct {
		s      *Spring
		target float64
	}{{m.X, t.X}, {m.Rot, t.Rot}, {m.Scale, t.Scale}} {
		pair.s.Configure(t.Spring)
		pair.s.Target = pair.target
	}
}

// Step advances all springs one frame.
func (m *Motion) Step() {
	m.X.Step()
	m.Rot.Step()
	m.Scale.Step()
}

// Settled reports whether every spring is at rest.
func (m *Motion) Settled() bool {
	return m.X.Settled() && m.Rot.Settled() && m.Scale.Settled()
}
