package sph

import "gonum.org/v1/gonum/spatial/r3"

// integrate advances every free particle with a semi-implicit Euler step.
// A particle reflected by a wall skips the step for this tick.
func (s *Solver) integrate() {
	var p *Particle
	dt := s.params.TimeStep

	for i := range s.particles {
		if s.probe && i == 0 {
			continue
		}
		p = &s.particles[i]

		if reflect(p, s.params.HalfExtent, s.params.Damping) {
			continue
		}
		p.velocity = r3.Add(p.velocity, r3.Scale(dt/p.density, p.force))
		p.position = r3.Add(p.position, r3.Scale(dt, p.velocity))
	}
}

// reflect handles at most one wall per call, checked in the order
// -y, +y, -x, +x, -z, +z. It reports whether a wall was hit.
func reflect(p *Particle, c, damp float64) bool {
	switch {
	case p.position.Y < -c:
		p.velocity.Y = -p.velocity.Y * damp
		p.position.Y = -c
	case p.position.Y > c:
		p.velocity.Y = -p.velocity.Y * damp
		p.position.Y = c
	case p.position.X < -c:
		p.velocity.X = -p.velocity.X * damp
		p.position.X = -c
	case p.position.X > c:
		p.velocity.X = -p.velocity.X * damp
		p.position.X = c
	case p.position.Z < -c:
		p.velocity.Z = -p.velocity.Z * damp
		p.position.Z = -c
	case p.position.Z > c:
		p.velocity.Z = -p.velocity.Z * damp
		p.position.Z = c
	default:
		return false
	}
	return true
}
