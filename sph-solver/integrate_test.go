package sph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestStationaryParticle(t *testing.T) {
	start := r3.Vec{X: 1, Y: -2, Z: 3}
	s := newTestSolver(t, testParams(), start)

	for i := 0; i < 500; i++ {
		require.NoError(t, s.Tick())
	}
	assert.Equal(t, start, s.Particle(0).Position())
	assert.Equal(t, r3.Vec{}, s.Particle(0).Velocity())
}

func TestConstantVelocityLine(t *testing.T) {
	p := testParams()
	s := newTestSolver(t, p, r3.Vec{})
	v := r3.Vec{X: 1, Y: 2, Z: -0.5}
	s.particles[0].velocity = v

	for i := 0; i < 200; i++ {
		require.NoError(t, s.Tick())
	}
	want := r3.Scale(s.Time(), v)
	assertVecInDelta(t, want, s.Particle(0).Position(), 1e-9, "position")
	assert.Equal(t, v, s.Particle(0).Velocity())
}

func TestFloorReflection(t *testing.T) {
	p := testParams()
	c := p.HalfExtent
	s := newTestSolver(t, p, r3.Vec{X: 0.5, Y: -c - 0.1, Z: 0.25})
	s.particles[0].velocity = r3.Vec{X: 0.3, Y: -3}

	require.NoError(t, s.Tick())
	got := s.Particle(0)
	assert.Equal(t, -c, got.Position().Y, "clamped to the floor")
	assert.Equal(t, 3*p.Damping, got.Velocity().Y, "reflected and damped")
	assert.Equal(t, r3.Vec{X: 0.5, Y: -c, Z: 0.25}, got.Position(), "no integration on a reflected tick")
	assert.Equal(t, 0.3, got.Velocity().X)
}

func TestReflectOrder(t *testing.T) {
	const c = 2.0
	cases := []struct {
		name    string
		pos     r3.Vec
		vel     r3.Vec
		wantPos r3.Vec
		wantVel r3.Vec
	}{
		{"floor", r3.Vec{Y: -3}, r3.Vec{Y: -1}, r3.Vec{Y: -c}, r3.Vec{Y: 0.5}},
		{"ceiling", r3.Vec{Y: 3}, r3.Vec{Y: 1}, r3.Vec{Y: c}, r3.Vec{Y: -0.5}},
		{"left", r3.Vec{X: -3}, r3.Vec{X: -1}, r3.Vec{X: -c}, r3.Vec{X: 0.5}},
		{"right", r3.Vec{X: 3}, r3.Vec{X: 1}, r3.Vec{X: c}, r3.Vec{X: -0.5}},
		{"back", r3.Vec{Z: -3}, r3.Vec{Z: -1}, r3.Vec{Z: -c}, r3.Vec{Z: 0.5}},
		{"front", r3.Vec{Z: 3}, r3.Vec{Z: 1}, r3.Vec{Z: c}, r3.Vec{Z: -0.5}},
		// only the first wall in the chain is handled
		{"floor before right", r3.Vec{X: 3, Y: -3}, r3.Vec{X: 1, Y: -1}, r3.Vec{X: 3, Y: -c}, r3.Vec{X: 1, Y: 0.5}},
		{"left before front", r3.Vec{X: -3, Z: 3}, r3.Vec{X: -1, Z: 1}, r3.Vec{X: -c, Z: 3}, r3.Vec{X: 0.5, Z: 1}},
	}
	for _, tc := range cases {
		p := Particle{position: tc.pos, velocity: tc.vel}
		assert.True(t, reflect(&p, c, 0.5), tc.name)
		assert.Equal(t, tc.wantPos, p.position, tc.name)
		assert.Equal(t, tc.wantVel, p.velocity, tc.name)
	}

	inside := Particle{position: r3.Vec{X: c, Y: -c, Z: 1}}
	assert.False(t, reflect(&inside, c, 0.5), "walls are inclusive")
}

func TestProbeIsNotIntegrated(t *testing.T) {
	p := testParams()
	p.Gravity = r3.Vec{Y: -10}
	s, err := NewSolver(2, at(r3.Vec{}, r3.Vec{X: 0.5}), p, WithProbe())
	require.NoError(t, err)
	require.True(t, s.HasProbe())

	require.True(t, s.SetProbe(r3.Vec{X: -0.25}))
	for i := 0; i < 10; i++ {
		require.NoError(t, s.Tick())
	}

	assert.Equal(t, r3.Vec{X: -0.25}, s.Particle(0).Position())
	assert.Equal(t, r3.Vec{}, s.Particle(0).Velocity())
	assert.Greater(t, s.Particle(0).Density(), s.Kernel().Density(0), "probe still feels its neighbor")
	assert.Less(t, s.Particle(1).Position().Y, 0.0, "free particle falls")
}

func TestSetProbeWithoutProbe(t *testing.T) {
	s := newTestSolver(t, testParams(), r3.Vec{X: 1})
	assert.False(t, s.HasProbe())
	assert.False(t, s.SetProbe(r3.Vec{}))
	assert.Equal(t, r3.Vec{X: 1}, s.Particle(0).Position())
}
