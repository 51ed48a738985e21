// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package deck

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	const width = 1000.0
	approx := cmpopts.EquateApprox(0, 1e-9)

	tests := []struct {
		name  string
		g     Gesture
		allow bool
		want  Transform
	}{
		{
			name:  "held drag follows pointer",
			g:     Gesture{DX: 50, VX: 0.1, Active: true},
			allow: true,
			want:  Transform{X: 50, Rot: 0.5, Scale: 1.1, Spring: SpringActive, Dir: 1},
		},
		{
			name:  "fast held drag does not commit",
			g:     Gesture{DX: -80, VX: -1, Active: true},
			allow: true,
			want:  Transform{X: -80, Rot: -0.8, Scale: 1.1, Spring: SpringActive, Dir: -1},
		},
		{
			name:  "slow release springs back",
			g:     Gesture{DX: 100, VX: 0.2},
			allow: true,
			want:  Transform{X: 0, Rot: 1, Scale: 1, Spring: SpringRest, Dir: 1},
		},
		{
			name:  "fast release right flies out",
			g:     Gesture{DX: 100, VX: 0.5},
			allow: true,
			want:  Transform{X: 1200, Rot: 1 + 5, Scale: 1, Spring: SpringGone, Gone: true, Dir: 1},
		},
		{
			name:  "fast release left flies out",
			g:     Gesture{DX: -100, VX: -0.3},
			allow: true,
			want:  Transform{X: -1200, Rot: -1 - 3, Scale: 1, Spring: SpringGone, Gone: true, Dir: -1},
		},
		{
			name:  "velocity sign wins over displacement",
			g:     Gesture{DX: 40, VX: -0.5},
			allow: true,
			want:  Transform{X: -1200, Rot: 0.4 - 5, Scale: 1, Spring: SpringGone, Gone: true, Dir: -1},
		},
		{
			name:  "commit not allowed",
			g:     Gesture{DX: 100, VX: 0.5},
			allow: false,
			want:  Transform{X: 0, Rot: 1, Scale: 1, Spring: SpringRest, Dir: 1},
		},
		{
			name:  "no motion defaults right",
			g:     Gesture{},
			allow: true,
			want:  Transform{Scale: 1, Spring: SpringRest, Dir: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.g, width, tt.allow)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("Compute() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBoundDX(t *testing.T) {
	assert.Equal(t, 299.0, BoundDX(299))
	assert.Equal(t, -300.0, BoundDX(-300))

	over := BoundDX(600)
	assert.Greater(t, over, DragBound)
	assert.Less(t, over, 600.0)
	assert.InDelta(t, -over, BoundDX(-600), 1e-9, "symmetric")

	// Elastic overshoot approaches but never reaches the range size
	assert.Less(t, BoundDX(1e9), DragBound+2*DragBound)
}

func TestTransformDirection(t *testing.T) {
	assert.Equal(t, "left", Transform{Dir: -1}.Direction())
	assert.Equal(t, "right", Transform{Dir: 1}.Direction())
}

func TestSpringConfig(t *testing.T) {
	assert.InDelta(t, math.Sqrt(800), SpringActive.AngularFrequency(), 1e-9)
	assert.InDelta(t, 50/(2*math.Sqrt(500)), SpringRest.DampingRatio(), 1e-9)
	assert.Equal(t, 1.0, SpringConfig{}.DampingRatio())
}

func TestSpringSettles(t *testing.T) {
	for _, cfg := range []SpringConfig{SpringActive, SpringGone, SpringRest} {
		s := NewSpring(cfg, 0)
		s.Target = 100

		for i := 0; i < 10*FPS && !s.Settled(); i++ {
			s.Step()
		}
		assert.True(t, s.Settled(), "spring %+v did not settle", cfg)
		assert.InDelta(t, 100, s.Pos, settleEpsilon)
	}
}

func TestMotion(t *testing.T) {
	m := NewMotion(RestTransform())
	assert.True(t, m.Settled())

	m.SetTarget(GoneTransform(-1, 400))
	assert.False(t, m.Settled())
	assert.Equal(t, -600.0, m.X.Target)

	m.Step()
	assert.Less(t, m.X.Pos, 0.0)

	m.X.Snap()
	m.Rot.Snap()
	m.Scale.Snap()
	assert.True(t, m.Settled())
}
