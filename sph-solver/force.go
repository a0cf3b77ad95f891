package sph

import "gonum.org/v1/gonum/spatial/r3"

// computeForces accumulates pressure, viscosity and gravity on every particle.
// The pressure term divides by the neighbor density only, matching the
// canonical formulation; it is not symmetrized.
func (s *Solver) computeForces() {
	var (
		i, j          int
		pi, pj        *Particle
		rij, n        r3.Vec
		r             float64
		fpress, fvisc r3.Vec
	)
	mass := s.params.Mass
	visc := s.params.Viscosity
	h := s.kernel.h
	fgrav := r3.Scale(mass, s.params.Gravity)

	for i = range s.particles {
		pi = &s.particles[i]
		fpress = r3.Vec{}
		fvisc = r3.Vec{}

		for j = range s.particles {
			// The self term has no direction.
			if i == j {
				continue
			}
			pj = &s.particles[j]

			rij = r3.Sub(pj.position, pi.position)
			r = r3.Norm(rij)
			if r <= 0 || r >= h {
				continue
			}
			n = r3.Scale(1/r, rij)

			fpress = r3.Add(fpress, r3.Scale(
				-mass*(pi.pressure+pj.pressure)/(2*pj.density)*s.kernel.PressureGrad(r), n))
			fvisc = r3.Add(fvisc, r3.Scale(
				visc*mass/pj.density*s.kernel.ViscosityLaplacian(r), r3.Sub(pj.velocity, pi.velocity)))
		}
		pi.force = r3.Add(r3.Add(fpress, fvisc), fgrav)
	}
}
