package sph

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// computeDensityPressure resums every density from scratch, the particle
// itself included, then applies the equation of state. Negative pressure is
// kept as is.
func (s *Solver) computeDensityPressure() {
	var (
		i, j int
		pi   *Particle
		r2   float64
	)
	mass := s.params.Mass
	gas := s.params.GasConstant
	rest := s.params.RestDensity

	for i = range s.particles {
		pi = &s.particles[i]
		pi.density = 0

		for j = range s.particles {
			r2 = r3.Norm2(r3.Sub(s.particles[j].position, pi.position))
			if r2 < s.kernel.h2 {
				pi.density += mass * s.kernel.DensityR2(r2)
			}
		}
		pi.pressure = gas * (pi.density - rest)
	}
}

// checkDensity fails on the first density that cannot be divided by.
func (s *Solver) checkDensity() error {
	for i := range s.particles {
		d := s.particles[i].density
		if !(d > 0) || math.IsInf(d, 0) {
			return &InvariantError{
				Step:    s.steps,
				Index:   i,
				Density: d,
				Wrapped: ErrZeroDensity,
			}
		}
	}
	return nil
}
