package sph

import "math"

// KernelSet holds the smoothing kernels of a single smoothing radius.
// A new radius always means a new KernelSet; coefficients are never
// patched in place.
type KernelSet struct {
	h, h2 float64

	poly6     float64
	spikyGrad float64
	viscLap   float64
}

// NewKernelSet precomputes the normalization coefficients for radius h.
func NewKernelSet(h float64) KernelSet {
	h6 := math.Pow(h, 6)
	return KernelSet{
		h:         h,
		h2:        h * h,
		poly6:     315 / (64 * math.Pi * math.Pow(h, 9)),
		spikyGrad: -45 / (math.Pi * h6),
		viscLap:   45 / (math.Pi * h6),
	}
}

// Radius returns the smoothing radius.
func (k KernelSet) Radius() float64 { return k.h }

// Poly6 returns the density kernel coefficient.
func (k KernelSet) Poly6() float64 { return k.poly6 }

// SpikyGrad returns the pressure gradient coefficient.
func (k KernelSet) SpikyGrad() float64 { return k.spikyGrad }

// ViscLap returns the viscosity laplacian coefficient.
func (k KernelSet) ViscLap() float64 { return k.viscLap }

// Density evaluates the poly6 kernel at distance r.
func (k KernelSet) Density(r float64) float64 {
	if r < 0 || r >= k.h {
		return 0
	}
	return k.DensityR2(r * r)
}

// DensityR2 evaluates the poly6 kernel from a squared distance, which spares
// the square root in the density pass.
func (k KernelSet) DensityR2(r2 float64) float64 {
	if r2 < 0 || r2 >= k.h2 {
		return 0
	}
	d := k.h2 - r2
	return k.poly6 * d * d * d
}

// PressureGrad evaluates the spiky gradient magnitude at distance r.
func (k KernelSet) PressureGrad(r float64) float64 {
	if r < 0 || r >= k.h {
		return 0
	}
	d := k.h - r
	return k.spikyGrad * d * d
}

// ViscosityLaplacian evaluates the viscosity laplacian at distance r.
func (k KernelSet) ViscosityLaplacian(r float64) float64 {
	if r < 0 || r >= k.h {
		return 0
	}
	return k.viscLap * (k.h - r)
}
