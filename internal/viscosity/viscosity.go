// Package viscosity computes the artificial diffusive terms that keep
// the explicit scheme stable: a shock viscosity that only sees
// convergent flow, and a hyperdiffusion coefficient bounded by the
// fastest wave speed in the domain.
package viscosity

import (
	"fmt"

	"github.com/san-kum/mhd/internal/calculus"
	"github.com/san-kum/mhd/internal/field"
	"github.com/san-kum/mhd/internal/plasma"
	"github.com/san-kum/mhd/internal/solver"
)

// Default damping strengths. ShockCoeff scales the compressive-flow
// term, HyperdiffCoeff the wave-speed-bounded term.
const (
	DefaultShockCoeff     = 0.4
	DefaultHyperdiffCoeff = 1.0
)

// Model evaluates the viscosity terms against a plasma state through a
// bound derivative operator.
type Model struct {
	ShockCoeff     float64
	HyperdiffCoeff float64

	state  *plasma.State
	solver solver.Interface
}

func New(state *plasma.State, s solver.Interface) *Model {
	return &Model{
		ShockCoeff:     DefaultShockCoeff,
		HyperdiffCoeff: DefaultHyperdiffCoeff,
		state:          state,
		solver:         s,
	}
}

func (m *Model) checkAxis(axis int) error {
	if axis < 0 || axis >= m.state.NDim() {
		return fmt.Errorf("viscosity: axis %d of %d: %w", axis, m.state.NDim(), field.ErrDimensionMismatch)
	}
	return nil
}

// Shock returns c * dx^2 * |negative part of div(v)|. Only convergent
// flow (div v < 0) contributes; divergent regions damp nothing.
func (m *Model) Shock(axis int) (*field.Field, error) {
	if err := m.checkAxis(axis); err != nil {
		return nil, err
	}
	v, err := m.state.Velocity()
	if err != nil {
		return nil, err
	}
	divv, err := calculus.Div(v, m.solver)
	if err != nil {
		return nil, err
	}
	dx := m.state.Spacing()[axis]
	out := divv.ZerosLike(divv.Unit.Mul(field.NewUnit(0, 2, 0, 0)))
	c := m.ShockCoeff * dx * dx
	for i, d := range divv.Data {
		if d < 0 {
			out.Data[i] = -c * d
		}
	}
	return out, nil
}

// Hyperdiffusion returns the global coefficient
// c * dx * (max Alfvén speed + max sound speed), a single scalar per
// call rather than a grid-resolved field.
func (m *Model) Hyperdiffusion(axis int) (float64, field.Unit, error) {
	if err := m.checkAxis(axis); err != nil {
		return 0, field.Unit{}, err
	}
	va, err := m.state.MaxAlfvenSpeed()
	if err != nil {
		return 0, field.Unit{}, err
	}
	cs, err := m.state.MaxSoundSpeed()
	if err != nil {
		return 0, field.Unit{}, err
	}
	dx := m.state.Spacing()[axis]
	return m.HyperdiffCoeff * dx * (va + cs), field.Diffusivity, nil
}

// Total is the effective diffusion coefficient used by the density and
// energy equations: shock viscosity plus hyperdiffusion.
func (m *Model) Total(axis int) (*field.Field, error) {
	sh, err := m.Shock(axis)
	if err != nil {
		return nil, err
	}
	hd, unit, err := m.Hyperdiffusion(axis)
	if err != nil {
		return nil, err
	}
	return sh.AddConst(hd, unit)
}

// Tensor builds the viscous stress tensor. Only the [0,0] component is
// populated, as 0.5 * rho * 2 * nu(v_x) * d(v_x)/dx; the provisional
// model from the original scheme is preserved as-is.
// TODO: populate the remaining eight components once the cross-term
// velocity spacing is settled.
func (m *Model) Tensor() (*field.Field, error) {
	v, err := m.state.Velocity()
	if err != nil {
		return nil, err
	}
	vx, err := v.Component(0)
	if err != nil {
		return nil, err
	}
	dvx, err := m.solver.Diff(vx, 0)
	if err != nil {
		return nil, err
	}
	nu, err := m.Total(0)
	if err != nil {
		return nil, err
	}
	term, err := nu.Mul(dvx)
	if err != nil {
		return nil, err
	}
	term, err = term.Scale(2).Mul(m.state.Density)
	if err != nil {
		return nil, err
	}
	term = term.Scale(0.5)

	out := field.NewTensor(m.state.DomainShape(), term.Unit)
	dst, err := out.TensorComponent(0, 0)
	if err != nil {
		return nil, err
	}
	copy(dst.Data, term.Data)
	return out, nil
}
