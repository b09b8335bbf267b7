// Package equations assembles the calculus primitives and the
// viscosity model into the right-hand sides of the four ideal-MHD
// conservation laws: continuity, momentum, energy and induction.
package equations

import (
	"github.com/san-kum/mhd/internal/calculus"
	"github.com/san-kum/mhd/internal/field"
	"github.com/san-kum/mhd/internal/plasma"
	"github.com/san-kum/mhd/internal/solver"
	"github.com/san-kum/mhd/internal/viscosity"
)

// RHS evaluates the time derivative of one core variable at time t.
// A nil override means "use the plasma state's current field"; the
// integrator passes intermediate stage values through it.
type RHS func(t float64, override *field.Field) (*field.Field, error)

// System binds the four evaluators to a plasma state, a derivative
// operator and a viscosity model.
type System struct {
	State  *plasma.State
	Solver solver.Interface
	Visc   *viscosity.Model

	// OhmicCoeff gates the resistive heating term in the energy
	// equation. It stays zero and the term is skipped until a
	// resistivity model is chosen.
	OhmicCoeff float64
}

func New(state *plasma.State, s solver.Interface, visc *viscosity.Model) *System {
	return &System{State: state, Solver: s, Visc: visc}
}

// Equations returns the RHS evaluators in core-variable order:
// density, momentum, energy, magnetic field.
func (sys *System) Equations() []RHS {
	return []RHS{sys.DdtDensity, sys.DdtMomentum, sys.DdtEnergy, sys.DdtMagfield}
}

// diffusion applies the total viscosity as a diffusion coefficient in
// conservative form, div(nu grad f), so the smoothed equation remains
// a pure divergence.
func (sys *System) diffusion(f *field.Field) (*field.Field, error) {
	nu, err := sys.Visc.Total(0)
	if err != nil {
		return nil, err
	}
	g, err := calculus.Grad(f, sys.Solver)
	if err != nil {
		return nil, err
	}
	flux, err := g.MulScalar(nu)
	if err != nil {
		return nil, err
	}
	return calculus.Div(flux, sys.Solver)
}

// alfvenB returns the magnetic field in Alfvén units, B / sqrt(mu0).
func alfvenB(b *field.Field) *field.Field {
	return b.MulConst(1/plasma.SqrtMu0, plasma.UnitSqrtMu0.Inv())
}

// DdtDensity evaluates d(rho)/dt = div(nu grad rho) - div(v rho).
func (sys *System) DdtDensity(t float64, density *field.Field) (*field.Field, error) {
	if density == nil {
		density = sys.State.Density
	}
	v, err := sys.State.Velocity()
	if err != nil {
		return nil, err
	}
	flux, err := v.MulScalar(density)
	if err != nil {
		return nil, err
	}
	adv, err := calculus.Div(flux, sys.Solver)
	if err != nil {
		return nil, err
	}
	diff, err := sys.diffusion(density)
	if err != nil {
		return nil, err
	}
	return diff.Sub(adv)
}

// DdtMomentum evaluates
// d(rho v)/dt = tensordiv(T_visc) - grad p - tensordiv(v(x)m - B'(x)B').
func (sys *System) DdtMomentum(t float64, momentum *field.Field) (*field.Field, error) {
	if momentum == nil {
		momentum = sys.State.Momentum
	}
	v, err := sys.State.Velocity()
	if err != nil {
		return nil, err
	}
	b := alfvenB(sys.State.MagneticField)

	reynolds, err := calculus.VDP(v, momentum)
	if err != nil {
		return nil, err
	}
	maxwell, err := calculus.VDP(b, b)
	if err != nil {
		return nil, err
	}
	stress, err := reynolds.Sub(maxwell)
	if err != nil {
		return nil, err
	}
	stressDiv, err := calculus.TensorDiv(stress, sys.Solver)
	if err != nil {
		return nil, err
	}

	p, err := sys.State.Pressure()
	if err != nil {
		return nil, err
	}
	pGrad, err := calculus.Grad(p, sys.Solver)
	if err != nil {
		return nil, err
	}

	viscT, err := sys.Visc.Tensor()
	if err != nil {
		return nil, err
	}
	viscDiv, err := calculus.TensorDiv(viscT, sys.Solver)
	if err != nil {
		return nil, err
	}

	out, err := viscDiv.Sub(pGrad)
	if err != nil {
		return nil, err
	}
	return out.Sub(stressDiv)
}

// DdtEnergy evaluates
// de/dt = div(nu grad e) + div(v . T_visc) - div(v e - B'(B'.v) + v p).
func (sys *System) DdtEnergy(t float64, energy *field.Field) (*field.Field, error) {
	if energy == nil {
		energy = sys.State.Energy
	}
	v, err := sys.State.Velocity()
	if err != nil {
		return nil, err
	}
	b := alfvenB(sys.State.MagneticField)

	eFlux, err := v.MulScalar(energy)
	if err != nil {
		return nil, err
	}
	bv, err := calculus.Dot(b, v)
	if err != nil {
		return nil, err
	}
	poynting, err := b.MulScalar(bv)
	if err != nil {
		return nil, err
	}
	p, err := sys.State.Pressure()
	if err != nil {
		return nil, err
	}
	pFlux, err := v.MulScalar(p)
	if err != nil {
		return nil, err
	}
	flux, err := eFlux.Sub(poynting)
	if err != nil {
		return nil, err
	}
	flux, err = flux.Add(pFlux)
	if err != nil {
		return nil, err
	}
	adv, err := calculus.Div(flux, sys.Solver)
	if err != nil {
		return nil, err
	}

	diff, err := sys.diffusion(energy)
	if err != nil {
		return nil, err
	}

	viscT, err := sys.Visc.Tensor()
	if err != nil {
		return nil, err
	}
	viscFlux, err := calculus.VTDot(v, viscT)
	if err != nil {
		return nil, err
	}
	viscWork, err := calculus.Div(viscFlux, sys.Solver)
	if err != nil {
		return nil, err
	}

	out, err := diff.Add(viscWork)
	if err != nil {
		return nil, err
	}
	// TODO: Ohmic heating term goes here once a resistivity model is
	// decided; OhmicCoeff stays zero until then.
	return out.Sub(adv)
}

// DdtMagfield evaluates the induction equation in Alfvén units,
// dB'/dt = -tensordiv(v(x)B' - B'(x)v), rescaled back by sqrt(mu0).
func (sys *System) DdtMagfield(t float64, magfield *field.Field) (*field.Field, error) {
	if magfield == nil {
		magfield = sys.State.MagneticField
	}
	b := alfvenB(magfield)
	v, err := sys.State.Velocity()
	if err != nil {
		return nil, err
	}
	vb, err := calculus.VDP(v, b)
	if err != nil {
		return nil, err
	}
	bv, err := calculus.VDP(b, v)
	if err != nil {
		return nil, err
	}
	em, err := vb.Sub(bv)
	if err != nil {
		return nil, err
	}
	d, err := calculus.TensorDiv(em, sys.Solver)
	if err != nil {
		return nil, err
	}
	return d.Neg().MulConst(plasma.SqrtMu0, plasma.UnitSqrtMu0), nil
}
