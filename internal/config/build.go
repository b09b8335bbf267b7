package config

import (
	"fmt"
	"math"

	"github.com/san-kum/mhd/internal/field"
	"github.com/san-kum/mhd/internal/plasma"
	"github.com/san-kum/mhd/internal/solver"
)

// Build constructs the plasma state and the derivative operator
// described by the config. The initial profile varies along x only;
// higher axes start uniform.
func (c *Config) Build() (*plasma.State, *solver.Central, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	shape := []int{c.Grid.Nx}
	spacing := []float64{c.Grid.Dx}
	if c.Grid.Ny > 0 {
		shape = append(shape, c.Grid.Ny)
		spacing = append(spacing, c.Grid.Dy)
	}
	if c.Grid.Nz > 0 {
		shape = append(shape, c.Grid.Nz)
		spacing = append(spacing, c.Grid.Dz)
	}
	for _, h := range spacing {
		if h <= 0 {
			return nil, nil, fmt.Errorf("config: grid spacing must be positive, got %v", spacing)
		}
	}

	coords := make([][]float64, 3)
	for axis := range shape {
		coords[axis] = make([]float64, shape[axis])
		for i := range coords[axis] {
			coords[axis][i] = float64(i) * spacing[axis]
		}
	}

	density := field.NewScalar(shape, field.MassDensity)
	momentum := field.NewVector(shape, field.MomentumDensity)
	energy := field.NewScalar(shape, field.EnergyDensity)
	magfield := field.NewVector(shape, field.Tesla)

	nx := c.Grid.Nx
	length := float64(nx) * c.Grid.Dx
	init := c.InitState

	rhoLine := make([]float64, nx)
	for i := range rhoLine {
		x := float64(i) * c.Grid.Dx
		switch init.Profile {
		case "", "uniform":
			rhoLine[i] = init.Density
		case "sound_wave":
			rhoLine[i] = init.Density * (1 + init.Amplitude*math.Sin(2*math.Pi*float64(init.Mode)*x/length))
		case "density_pulse":
			w := length / 10
			d := x - length/2
			rhoLine[i] = init.Density + init.Amplitude*math.Exp(-d*d/(w*w))
		case "alfven_wave":
			rhoLine[i] = init.Density
		default:
			return nil, nil, fmt.Errorf("config: unknown profile %q", init.Profile)
		}
	}

	fillAlongX(density.Data, rhoLine, nx)

	eLine := make([]float64, nx)
	for i := range eLine {
		eLine[i] = init.Energy
	}
	fillAlongX(energy.Data, eLine, nx)

	if init.Velocity != 0 {
		mx, _ := momentum.Component(0)
		mLine := make([]float64, nx)
		for i := range mLine {
			mLine[i] = init.Velocity * rhoLine[i]
		}
		fillAlongX(mx.Data, mLine, nx)
	}

	if init.Profile == "alfven_wave" {
		bx, _ := magfield.Component(0)
		by, _ := magfield.Component(1)
		bxLine := make([]float64, nx)
		byLine := make([]float64, nx)
		for i := range bxLine {
			x := float64(i) * c.Grid.Dx
			bxLine[i] = init.MagField
			byLine[i] = init.MagField * init.Amplitude * math.Sin(2*math.Pi*float64(init.Mode)*x/length)
		}
		fillAlongX(bx.Data, bxLine, nx)
		fillAlongX(by.Data, byLine, nx)
	}

	st, err := plasma.New(density, momentum, energy, magfield,
		coords[0], coords[1], coords[2], c.Gamma)
	if err != nil {
		return nil, nil, err
	}
	return st, solver.NewCentral(spacing, c.Grid.Periodic), nil
}

// fillAlongX replicates a per-x line across the trailing grid axes.
// x is the slowest-varying axis, so point (i, ...) lives in block i.
func fillAlongX(data, line []float64, nx int) {
	block := len(data) / nx
	for i := 0; i < nx; i++ {
		for j := 0; j < block; j++ {
			data[i*block+j] = line[i]
		}
	}
}
