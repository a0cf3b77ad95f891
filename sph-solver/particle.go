package sph

import "gonum.org/v1/gonum/spatial/r3"

// Particle defines the state carried by a single fluid particle.
type Particle struct {
	position r3.Vec
	velocity r3.Vec
	force    r3.Vec
	density  float64
	pressure float64
}

// NewParticle spawns a resting particle at pos.
func NewParticle(pos r3.Vec) Particle {
	return Particle{position: pos}
}

// Position retrieves the particle position.
func (p Particle) Position() r3.Vec {
	return p.position
}

// Velocity retrieves the particle velocity.
func (p Particle) Velocity() r3.Vec {
	return p.velocity
}

// Force retrieves the force accumulated during the last tick.
func (p Particle) Force() r3.Vec {
	return p.force
}

// Density retrieves the density computed during the last tick.
func (p Particle) Density() float64 {
	return p.density
}

// Pressure retrieves the pressure computed during the last tick.
func (p Particle) Pressure() float64 {
	return p.pressure
}

// newParticles allocates the fixed particle store. Identity is the index.
func newParticles(n int, gen PositionFunc) []Particle {
	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = NewParticle(gen(i, n))
	}
	return particles
}
