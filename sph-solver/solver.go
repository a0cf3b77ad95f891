// Package sph implements a weakly compressible smoothed particle
// hydrodynamics solver in a cubic container.
package sph

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Option configures a Solver at construction.
type Option func(*Solver)

// WithProbe reserves particle 0 as an externally placed probe. The probe
// takes part in the density and force passes but is never integrated.
func WithProbe() Option {
	return func(s *Solver) {
		s.probe = true
	}
}

// Solver owns the particle store and advances it one fixed time step per Tick.
// It is not safe for concurrent use; readers must wait for Tick to return.
type Solver struct {
	params    Params
	kernel    KernelSet
	particles []Particle
	probe     bool

	steps int
	time  float64

	// scratch for Stats, reused across calls
	rho, press, speed []float64
}

// NewSolver creates n resting particles placed by gen.
func NewSolver(n int, gen PositionFunc, p Params, opts ...Option) (*Solver, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNoParticles, n)
	}
	if gen == nil {
		return nil, ErrGenerator
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s := &Solver{
		params:    p,
		kernel:    NewKernelSet(p.SmoothingRadius),
		particles: newParticles(n, gen),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Tick runs the density, force and integration passes once, in that order.
func (s *Solver) Tick() error {
	s.computeDensityPressure()
	if err := s.checkDensity(); err != nil {
		return err
	}
	s.computeForces()
	s.integrate()

	s.steps++
	s.time += s.params.TimeStep
	return nil
}

// Positions copies the particle positions into dst, reallocating it only when
// it is too short, and returns the filled slice.
func (s *Solver) Positions(dst []r3.Vec) []r3.Vec {
	dst = resize(dst, len(s.particles))
	for i := range s.particles {
		dst[i] = s.particles[i].position
	}
	return dst
}

// Velocities copies the particle velocities into dst like Positions does.
func (s *Solver) Velocities(dst []r3.Vec) []r3.Vec {
	dst = resize(dst, len(s.particles))
	for i := range s.particles {
		dst[i] = s.particles[i].velocity
	}
	return dst
}

func resize(dst []r3.Vec, n int) []r3.Vec {
	if cap(dst) < n {
		return make([]r3.Vec, n)
	}
	return dst[:n]
}

// Particle returns a copy of particle i.
func (s *Solver) Particle(i int) Particle {
	return s.particles[i]
}

// Len returns the fixed particle count.
func (s *Solver) Len() int {
	return len(s.particles)
}

// Steps returns the number of completed ticks.
func (s *Solver) Steps() int {
	return s.steps
}

// Time returns the simulated time.
func (s *Solver) Time() float64 {
	return s.time
}

// Params returns the active parameters.
func (s *Solver) Params() Params {
	return s.params
}

// Kernel returns the active kernel set.
func (s *Solver) Kernel() KernelSet {
	return s.kernel
}

// HasProbe reports whether particle 0 is a probe.
func (s *Solver) HasProbe() bool {
	return s.probe
}

// SetProbe moves the probe particle. It reports false when the solver
// was built without WithProbe.
func (s *Solver) SetProbe(pos r3.Vec) bool {
	if !s.probe {
		return false
	}
	s.particles[0].position = pos
	s.particles[0].velocity = r3.Vec{}
	return true
}

// SetSmoothingRadius swaps the radius and every kernel coefficient together.
func (s *Solver) SetSmoothingRadius(h float64) error {
	p := s.params
	p.SmoothingRadius = h
	if err := p.Validate(); err != nil {
		return err
	}
	s.params = p
	s.kernel = NewKernelSet(h)
	return nil
}

// SetBoundary resizes the container. Particles left outside are pushed back
// by the wall checks of the following ticks.
func (s *Solver) SetBoundary(halfExtent float64) error {
	p := s.params
	p.HalfExtent = halfExtent
	if err := p.Validate(); err != nil {
		return err
	}
	s.params = p
	return nil
}

// ResetVelocity stops every particle and clears the accumulated forces.
func (s *Solver) ResetVelocity() {
	for i := range s.particles {
		s.particles[i].velocity = r3.Vec{}
		s.particles[i].force = r3.Vec{}
	}
}
