// Package config reads simulation settings from an INI style file.
//
// A file may set any subset of the variables below; the rest keep the
// values of Default.
//
//	[simulation]
//	particles = 102
//	generator = ring      ; ring, scatter or grid
//	seed = 1              ; scatter only
//	spread = 10           ; scatter only
//	spacing = 1           ; grid only
//	probe = true
//
//	[fluid]
//	smoothing-radius = 12
//	mass = 2.5
//	rest-density = 300
//	gas-constant = 2000
//	viscosity = 200
//
//	[gravity]
//	y = -10
//
//	[integration]
//	time-step = 0.0007
//
//	[boundary]
//	half-extent = 28.571428571428573
//	damping = 0.5
package config

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/gcfg.v1"

	sph "github.com/esimov/sph-fluid/sph-solver"
)

// Generator names accepted by [simulation] generator.
const (
	GeneratorRing    = "ring"
	GeneratorScatter = "scatter"
	GeneratorGrid    = "grid"
)

// Config mirrors the sections of the configuration file.
type Config struct {
	Simulation struct {
		Particles int
		Generator string
		Seed      int64
		Spread    float64
		Spacing   float64
		Probe     bool
	}
	Fluid struct {
		SmoothingRadius float64 `gcfg:"smoothing-radius"`
		Mass            float64
		RestDensity     float64 `gcfg:"rest-density"`
		GasConstant     float64 `gcfg:"gas-constant"`
		Viscosity       float64
	}
	Gravity struct {
		X, Y, Z float64
	}
	Integration struct {
		TimeStep float64 `gcfg:"time-step"`
	}
	Boundary struct {
		HalfExtent float64 `gcfg:"half-extent"`
		Damping    float64
	}
}

// Default returns the settings of the bounded reference scene: a ring of
// 101 particles plus the probe in a 60 unit box.
func Default() *Config {
	c := &Config{}
	c.Simulation.Particles = 102
	c.Simulation.Generator = GeneratorRing
	c.Simulation.Seed = 1
	c.Simulation.Spread = 10
	c.Simulation.Spacing = 1
	c.Simulation.Probe = true

	c.Fluid.SmoothingRadius = 12
	c.Fluid.Mass = 2.5
	c.Fluid.RestDensity = 300
	c.Fluid.GasConstant = 2000
	c.Fluid.Viscosity = 200

	c.Gravity.Y = -10
	c.Integration.TimeStep = 0.0007

	c.Boundary.HalfExtent = 60 / 2.1
	c.Boundary.Damping = 0.5
	return c
}

// Load reads fname over the defaults and checks the result.
func Load(fname string) (*Config, error) {
	c := Default()
	if err := gcfg.ReadFileInto(c, fname); err != nil {
		return nil, err
	}
	if err := c.CheckInit(); err != nil {
		return nil, err
	}
	return c, nil
}

// Parse is Load for in-memory configuration text.
func Parse(text string) (*Config, error) {
	c := Default()
	if err := gcfg.ReadStringInto(c, text); err != nil {
		return nil, err
	}
	if err := c.CheckInit(); err != nil {
		return nil, err
	}
	return c, nil
}

// CheckInit validates the configuration and normalizes the generator name.
func (c *Config) CheckInit() error {
	sim := &c.Simulation
	if sim.Particles <= 0 {
		return fmt.Errorf(
			"config: [simulation] particles must be positive, but is %d", sim.Particles,
		)
	}

	sim.Generator = strings.ToLower(strings.TrimSpace(sim.Generator))
	switch sim.Generator {
	case GeneratorRing:
	case GeneratorScatter:
		if sim.Spread <= 0 {
			return fmt.Errorf(
				"config: [simulation] spread must be positive, but is %g", sim.Spread,
			)
		}
	case GeneratorGrid:
		if sim.Spacing <= 0 {
			return fmt.Errorf(
				"config: [simulation] spacing must be positive, but is %g", sim.Spacing,
			)
		}
	default:
		return fmt.Errorf(
			"config: [simulation] generator must be one of %s, %s or %s, but is '%s'",
			GeneratorRing, GeneratorScatter, GeneratorGrid, sim.Generator,
		)
	}

	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Params converts the physical sections into solver parameters.
func (c *Config) Params() sph.Params {
	return sph.Params{
		SmoothingRadius: c.Fluid.SmoothingRadius,
		Mass:            c.Fluid.Mass,
		RestDensity:     c.Fluid.RestDensity,
		GasConstant:     c.Fluid.GasConstant,
		Viscosity:       c.Fluid.Viscosity,
		Gravity:         r3.Vec{X: c.Gravity.X, Y: c.Gravity.Y, Z: c.Gravity.Z},
		TimeStep:        c.Integration.TimeStep,
		HalfExtent:      c.Boundary.HalfExtent,
		Damping:         c.Boundary.Damping,
	}
}

// Generator returns the initial layout named by [simulation] generator.
func (c *Config) Generator() sph.PositionFunc {
	switch c.Simulation.Generator {
	case GeneratorScatter:
		return sph.Scatter(c.Simulation.Seed, c.Simulation.Spread)
	case GeneratorGrid:
		return sph.Grid(c.Simulation.Spacing)
	default:
		return sph.Ring()
	}
}

// NewSolver builds the solver described by the configuration.
func (c *Config) NewSolver() (*sph.Solver, error) {
	var opts []sph.Option
	if c.Simulation.Probe {
		opts = append(opts, sph.WithProbe())
	}
	return sph.NewSolver(c.Simulation.Particles, c.Generator(), c.Params(), opts...)
}
