package sph

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Params defines the physical constants of a run.
type Params struct {
	SmoothingRadius float64
	Mass            float64
	RestDensity     float64
	GasConstant     float64
	Viscosity       float64
	Gravity         r3.Vec // acceleration, multiplied by mass once per particle
	TimeStep        float64
	HalfExtent      float64 // half the side of the cubic container
	Damping         float64 // velocity factor kept after a wall reflection
}

// Validate reports the first invalid parameter.
func (p Params) Validate() error {
	fields := []struct {
		name string
		val  float64
	}{
		{"smoothing radius", p.SmoothingRadius},
		{"mass", p.Mass},
		{"rest density", p.RestDensity},
		{"gas constant", p.GasConstant},
		{"viscosity", p.Viscosity},
		{"gravity x", p.Gravity.X},
		{"gravity y", p.Gravity.Y},
		{"gravity z", p.Gravity.Z},
		{"time step", p.TimeStep},
		{"half-extent", p.HalfExtent},
		{"damping", p.Damping},
	}
	for _, f := range fields {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return fmt.Errorf("%w: %s is %g", ErrNotFinite, f.name, f.val)
		}
	}

	switch {
	case p.SmoothingRadius <= 0:
		return fmt.Errorf("%w: got %g", ErrSmoothingRadius, p.SmoothingRadius)
	case p.Mass <= 0:
		return fmt.Errorf("%w: got %g", ErrMass, p.Mass)
	case p.TimeStep <= 0:
		return fmt.Errorf("%w: got %g", ErrTimeStep, p.TimeStep)
	case p.HalfExtent <= 0:
		return fmt.Errorf("%w: got %g", ErrBoundary, p.HalfExtent)
	case p.Damping <= 0 || p.Damping > 1:
		return fmt.Errorf("%w: got %g", ErrDamping, p.Damping)
	}

	// The density of an isolated particle is its own kernel contribution.
	self := p.Mass * NewKernelSet(p.SmoothingRadius).Density(0)
	if self <= 0 || math.IsInf(self, 0) || math.IsNaN(self) {
		return fmt.Errorf("%w: mass %g with radius %g gives %g",
			ErrDegenerateKernel, p.Mass, p.SmoothingRadius, self)
	}
	return nil
}
