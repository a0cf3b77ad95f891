package sph

import (
	"errors"
	"fmt"
)

// Configuration errors are reported before any simulation state is created.
var (
	ErrNoParticles      = errors.New("sph: particle count must be positive")
	ErrGenerator        = errors.New("sph: missing position generator")
	ErrSmoothingRadius  = errors.New("sph: smoothing radius must be positive")
	ErrMass             = errors.New("sph: particle mass must be positive")
	ErrTimeStep         = errors.New("sph: time step must be positive")
	ErrBoundary         = errors.New("sph: boundary half-extent must be positive")
	ErrDamping          = errors.New("sph: boundary damping must be in (0, 1]")
	ErrNotFinite        = errors.New("sph: parameter is not a finite number")
	ErrDegenerateKernel = errors.New("sph: self density is not representable")
)

// ErrZeroDensity is an invariant violation: every particle contributes to its
// own density, so a zero or non-finite sum means the state is corrupt.
var ErrZeroDensity = errors.New("sph: density is not positive")

// InvariantError wraps a per-tick invariant violation with the step and
// particle that triggered it.
type InvariantError struct {
	Step    int
	Index   int
	Density float64
	Wrapped error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v (step %d, particle %d, density %g)", e.Wrapped, e.Step, e.Index, e.Density)
}

func (e *InvariantError) Unwrap() error {
	return e.Wrapped
}
