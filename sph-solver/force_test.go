package sph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func assertVecInDelta(t *testing.T, want, got r3.Vec, delta float64, msg string) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "%s: x", msg)
	assert.InDelta(t, want.Y, got.Y, delta, "%s: y", msg)
	assert.InDelta(t, want.Z, got.Z, delta, "%s: z", msg)
}

func TestPressureForcePair(t *testing.T) {
	s := newTestSolver(t, testParams(), r3.Vec{}, r3.Vec{X: 0.5})
	s.computeDensityPressure()
	s.computeForces()

	f0, f1 := s.Particle(0).Force(), s.Particle(1).Force()

	// equal pressures and densities cancel, leaving -n·spiky(h/2)
	want := r3.Vec{X: 45 / (4 * math.Pi)}
	assertVecInDelta(t, want, f0, 1e-9, "particle 0")
	assertVecInDelta(t, r3.Scale(-1, want), f1, 1e-9, "particle 1")
	assertVecInDelta(t, r3.Vec{}, r3.Add(f0, f1), 1e-12, "sum")
}

func TestPressureForceUsesNeighborDensity(t *testing.T) {
	// A third particle near 1 only makes the pair densities differ.
	s := newTestSolver(t, testParams(), r3.Vec{}, r3.Vec{X: 0.5}, r3.Vec{X: 1.4})
	s.computeDensityPressure()
	s.computeForces()

	p0, p1 := s.Particle(0), s.Particle(1)
	require.NotEqual(t, p0.Density(), p1.Density())

	k := s.Kernel()
	want := -1 * (p0.Pressure() + p1.Pressure()) / (2 * p1.Density()) * k.PressureGrad(0.5)
	assert.InDelta(t, want, p0.Force().X, 1e-9)
}

func TestForceCutoff(t *testing.T) {
	s := newTestSolver(t, testParams(), r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 2.5})
	s.computeDensityPressure()
	s.computeForces()

	for i := 0; i < s.Len(); i++ {
		assert.Equal(t, r3.Vec{}, s.Particle(i).Force(), "particle %d", i)
	}
}

func TestForceCoincidentIsFinite(t *testing.T) {
	p := testParams()
	p.Viscosity = 1
	s := newTestSolver(t, p, r3.Vec{X: 2}, r3.Vec{X: 2})
	s.particles[1].velocity = r3.Vec{Y: 1}
	s.computeDensityPressure()
	s.computeForces()

	for i := 0; i < 2; i++ {
		f := s.Particle(i).Force()
		assert.Equal(t, r3.Vec{}, f, "particle %d", i)
	}
}

func TestGravityOncePerParticle(t *testing.T) {
	p := testParams()
	p.Mass = 2
	p.Gravity = r3.Vec{Y: -10}
	s := newTestSolver(t, p, r3.Vec{}, r3.Vec{X: 5}, r3.Vec{X: -5})
	s.computeDensityPressure()
	s.computeForces()

	for i := 0; i < s.Len(); i++ {
		assert.Equal(t, r3.Vec{Y: -20}, s.Particle(i).Force(), "particle %d", i)
	}
}

func TestViscosityPullsTowardNeighborVelocity(t *testing.T) {
	p := testParams()
	p.GasConstant = 0
	p.Viscosity = 2
	s := newTestSolver(t, p, r3.Vec{}, r3.Vec{X: 0.5})
	s.particles[1].velocity = r3.Vec{Z: 1}
	s.computeDensityPressure()
	s.computeForces()

	k := s.Kernel()
	d := s.Particle(1).Density()
	want := 2 * 1 / d * k.ViscosityLaplacian(0.5)

	assertVecInDelta(t, r3.Vec{Z: want}, s.Particle(0).Force(), 1e-12, "still particle")
	assertVecInDelta(t, r3.Vec{Z: -want}, s.Particle(1).Force(), 1e-12, "moving particle")
}
