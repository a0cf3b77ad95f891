package sph

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// PositionFunc returns the initial position of particle i out of n.
// NewSolver calls it once per index in increasing order.
type PositionFunc func(i, n int) r3.Vec

// Ring lays particles on a twisted ring of radius π around the origin.
func Ring() PositionFunc {
	return func(i, _ int) r3.Vec {
		fi := float64(i)
		return r3.Vec{
			X: math.Cos(fi) * math.Pi,
			Y: math.Sin(fi) * math.Pi,
			Z: math.Cos(fi) + math.Sin(fi*0.9)*math.Pi,
		}
	}
}

// Scatter places particles uniformly in the cube [-spread, spread]³.
// Generators built with the same seed yield the same layout.
func Scatter(seed int64, spread float64) PositionFunc {
	rnd := rand.New(rand.NewSource(seed))
	return func(_, _ int) r3.Vec {
		return r3.Vec{
			X: (rnd.Float64()*2 - 1) * spread,
			Y: (rnd.Float64()*2 - 1) * spread,
			Z: (rnd.Float64()*2 - 1) * spread,
		}
	}
}

// Grid stacks particles in a cubic block centred at the origin.
func Grid(spacing float64) PositionFunc {
	return func(i, n int) r3.Vec {
		side := int(math.Ceil(math.Cbrt(float64(n))))
		if side < 1 {
			side = 1
		}
		offset := float64(side-1) / 2
		return r3.Vec{
			X: (float64(i%side) - offset) * spacing,
			Y: (float64((i/side)%side) - offset) * spacing,
			Z: (float64(i/(side*side)) - offset) * spacing,
		}
	}
}
