package equations

import (
	"testing"

	"github.com/san-kum/mhd/internal/field"
	"github.com/san-kum/mhd/internal/plasma"
	"github.com/san-kum/mhd/internal/solver"
	"github.com/san-kum/mhd/internal/viscosity"
	"gonum.org/v1/gonum/floats/scalar"
)

func buildSystem(t *testing.T, n int, rho, vx, e, bx float64, periodic bool) *System {
	t.Helper()
	grid := []int{n}
	density := field.NewScalar(grid, field.MassDensity)
	momentum := field.NewVector(grid, field.MomentumDensity)
	energy := field.NewScalar(grid, field.EnergyDensity)
	magfield := field.NewVector(grid, field.Tesla)
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i)
		density.Data[i] = rho
		momentum.Data[i] = rho * vx
		energy.Data[i] = e
		magfield.Data[i] = bx
	}
	st, err := plasma.New(density, momentum, energy, magfield, x, nil, nil, 5.0/3.0)
	if err != nil {
		t.Fatal(err)
	}
	s := solver.NewCentral([]float64{1}, periodic)
	return New(st, s, viscosity.New(st, s))
}

func TestUniformStateIsFixedPoint(t *testing.T) {
	// Every spatial derivative of a uniform state vanishes, so all four
	// right-hand sides must be identically zero.
	sys := buildSystem(t, 10, 1, 0.3, 2, 1e-3, true)
	for i, rhs := range sys.Equations() {
		out, err := rhs(0, nil)
		if err != nil {
			t.Fatalf("equation %d: %v", i, err)
		}
		for p, v := range out.Data {
			if !scalar.EqualWithinAbs(v, 0, 1e-12) {
				t.Errorf("equation %d: rhs[%d] = %g, want 0", i, p, v)
			}
		}
	}
}

func TestRHSUnits(t *testing.T) {
	sys := buildSystem(t, 10, 1, 0.3, 2, 1e-3, true)
	wants := []field.Unit{
		field.MassDensity.Div(field.Second),
		field.MomentumDensity.Div(field.Second),
		field.EnergyDensity.Div(field.Second),
		field.Tesla.Div(field.Second),
	}
	for i, rhs := range sys.Equations() {
		out, err := rhs(0, nil)
		if err != nil {
			t.Fatalf("equation %d: %v", i, err)
		}
		if !out.Unit.Equal(wants[i]) {
			t.Errorf("equation %d: unit = %v, want %v", i, out.Unit, wants[i])
		}
	}
}

func TestDensityOverride(t *testing.T) {
	// Uniform background with v = 0.1. An override density with slope
	// 0.1 makes the advective flux linear, so d(rho)/dt = -v * slope
	// everywhere (one-sided edges are exact on linear data). Shock
	// viscosity is zero for uniform flow and the hyperdiffusive flux of
	// a linear profile is constant, so diffusion contributes nothing.
	sys := buildSystem(t, 10, 1, 0.1, 2, 0, false)
	override := field.NewScalar([]int{10}, field.MassDensity)
	for i := range override.Data {
		override.Data[i] = 1 + 0.1*float64(i)
	}

	out, err := sys.DdtDensity(0, override)
	if err != nil {
		t.Fatal(err)
	}
	want := -0.1 * 0.1
	for i, v := range out.Data {
		if !scalar.EqualWithinAbs(v, want, 1e-12) {
			t.Errorf("rhs[%d] = %g, want %g", i, v, want)
		}
	}

	// A nil override must fall back to the state's own density, which
	// is uniform here.
	out, err = sys.DdtDensity(0, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out.Data {
		if !scalar.EqualWithinAbs(v, 0, 1e-12) {
			t.Errorf("nil override: rhs[%d] = %g, want 0", i, v)
		}
	}
}

func TestInductionZeroWithoutField(t *testing.T) {
	sys := buildSystem(t, 10, 1, 0.3, 2, 0, true)
	out, err := sys.DdtMagfield(0, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out.Data {
		if v != 0 {
			t.Errorf("dB/dt[%d] = %g, want 0", i, v)
		}
	}
}

func TestMomentumFeelsPressureGradient(t *testing.T) {
	// Energy rising along x at rest gives a pressure gradient
	// dp/dx = (gamma-1) * de/dx, so the momentum equation must push
	// material toward lower pressure: d(m_x)/dt = -(gamma-1) * slope.
	n := 10
	sys := buildSystem(t, n, 1, 0, 1, 0, false)
	slope := 0.05
	for i := 0; i < n; i++ {
		sys.State.Energy.Data[i] = 1 + slope*float64(i)
	}

	out, err := sys.DdtMomentum(0, nil)
	if err != nil {
		t.Fatal(err)
	}
	mx, _ := out.Component(0)
	want := -(5.0/3.0 - 1) * slope
	for i, v := range mx.Data {
		if !scalar.EqualWithinAbs(v, want, 1e-12) {
			t.Errorf("dm/dt[%d] = %g, want %g", i, v, want)
		}
	}
	for comp := 1; comp < 3; comp++ {
		c, _ := out.Component(comp)
		for i, v := range c.Data {
			if !scalar.EqualWithinAbs(v, 0, 1e-12) {
				t.Errorf("component %d[%d] = %g, want 0", comp, i, v)
			}
		}
	}
}
