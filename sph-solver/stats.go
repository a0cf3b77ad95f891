package sph

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Stats summarizes the fields computed by the last tick.
type Stats struct {
	MinDensity, MeanDensity, MaxDensity    float64
	MinPressure, MeanPressure, MaxPressure float64
	MaxSpeed                               float64
}

// Stats returns a summary of the current particle state.
func (s *Solver) Stats() Stats {
	n := len(s.particles)
	if len(s.rho) != n {
		s.rho = make([]float64, n)
		s.press = make([]float64, n)
		s.speed = make([]float64, n)
	}
	for i := range s.particles {
		s.rho[i] = s.particles[i].density
		s.press[i] = s.particles[i].pressure
		s.speed[i] = r3.Norm(s.particles[i].velocity)
	}

	return Stats{
		MinDensity:   floats.Min(s.rho),
		MeanDensity:  floats.Sum(s.rho) / float64(n),
		MaxDensity:   floats.Max(s.rho),
		MinPressure:  floats.Min(s.press),
		MeanPressure: floats.Sum(s.press) / float64(n),
		MaxPressure:  floats.Max(s.press),
		MaxSpeed:     floats.Max(s.speed),
	}
}
