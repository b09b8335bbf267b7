// Package plasma holds the evolved MHD state and its derived
// quantities. The four core variables are mutated in place by the
// integrator; the state itself is constructed once by the caller and
// owned externally.
package plasma

import (
	"fmt"
	"math"

	"github.com/san-kum/mhd/internal/calculus"
	"github.com/san-kum/mhd/internal/field"
)

// Vacuum permeability and its unit, used for the Alfvén normalization
// B' = B / sqrt(mu0).
const Mu0 = 4e-7 * math.Pi

var (
	UnitMu0     = field.NewUnit(1, 1, -2, -2)
	SqrtMu0     = math.Sqrt(Mu0)
	UnitSqrtMu0 = mustSqrt(UnitMu0)
)

func mustSqrt(u field.Unit) field.Unit {
	s, err := u.Sqrt()
	if err != nil {
		panic(err)
	}
	return s
}

// State owns the four evolved fields and the coordinate grids.
type State struct {
	Density       *field.Field
	Momentum      *field.Field
	Energy        *field.Field
	MagneticField *field.Field

	X, Y, Z []float64
	Gamma   float64
}

// New validates the field shapes against each other and returns a
// state. Y and Z may be nil for lower-dimensional domains.
func New(density, momentum, energy, magfield *field.Field, x, y, z []float64, gamma float64) (*State, error) {
	if !density.IsScalar() || !energy.IsScalar() {
		return nil, fmt.Errorf("plasma: density and energy: %w", field.ErrNotScalar)
	}
	if !momentum.IsVector() || !magfield.IsVector() {
		return nil, fmt.Errorf("plasma: momentum and magnetic field: %w", field.ErrNotVector)
	}
	if !density.SameShape(energy) {
		return nil, &field.ShapeError{Op: "plasma.New", Want: density.Dims, Got: energy.Dims}
	}
	if !momentum.SameShape(magfield) {
		return nil, &field.ShapeError{Op: "plasma.New", Want: momentum.Dims, Got: magfield.Dims}
	}
	coords := [][]float64{x, y, z}
	for axis, want := range density.GridShape() {
		if len(coords[axis]) != want {
			return nil, &field.ShapeError{Op: "plasma.New", Want: density.GridShape(), Got: []int{len(coords[axis])}}
		}
	}
	return &State{
		Density:       density,
		Momentum:      momentum,
		Energy:        energy,
		MagneticField: magfield,
		X:             x, Y: y, Z: z,
		Gamma: gamma,
	}, nil
}

// DomainShape returns the spatial grid shape.
func (s *State) DomainShape() []int {
	return s.Density.GridShape()
}

// NDim returns the number of active spatial axes.
func (s *State) NDim() int {
	return s.Density.NDim()
}

// Spacing derives the uniform grid spacing per active axis from the
// coordinate arrays.
func (s *State) Spacing() []float64 {
	coords := [][]float64{s.X, s.Y, s.Z}
	out := make([]float64, s.NDim())
	for axis := range out {
		c := coords[axis]
		if len(c) > 1 {
			out[axis] = c[1] - c[0]
		} else {
			out[axis] = 1
		}
	}
	return out
}

// CoreVariables returns the evolved fields in RHS-evaluator order:
// density, momentum, energy, magnetic field.
func (s *State) CoreVariables() []*field.Field {
	return []*field.Field{s.Density, s.Momentum, s.Energy, s.MagneticField}
}

// Velocity is momentum divided by density.
func (s *State) Velocity() (*field.Field, error) {
	return s.Momentum.DivScalar(s.Density)
}

// Pressure is the kinetic pressure p = (gamma-1)(e - rho v^2 / 2).
func (s *State) Pressure() (*field.Field, error) {
	v, err := s.Velocity()
	if err != nil {
		return nil, err
	}
	v2, err := calculus.Dot(v, v)
	if err != nil {
		return nil, err
	}
	ke, err := v2.Mul(s.Density)
	if err != nil {
		return nil, err
	}
	inner, err := s.Energy.Sub(ke.Scale(0.5))
	if err != nil {
		return nil, err
	}
	return inner.Scale(s.Gamma - 1), nil
}

// SoundSpeed is sqrt(gamma p / rho) per grid point.
func (s *State) SoundSpeed() (*field.Field, error) {
	p, err := s.Pressure()
	if err != nil {
		return nil, err
	}
	ratio, err := p.Div(s.Density)
	if err != nil {
		return nil, err
	}
	return ratio.Scale(s.Gamma).Sqrt()
}

// AlfvenSpeed is |B| / sqrt(mu0 rho) per grid point.
func (s *State) AlfvenSpeed() (*field.Field, error) {
	b2, err := calculus.Dot(s.MagneticField, s.MagneticField)
	if err != nil {
		return nil, err
	}
	bmag, err := b2.Sqrt()
	if err != nil {
		return nil, err
	}
	denom, err := s.Density.MulConst(Mu0, UnitMu0).Sqrt()
	if err != nil {
		return nil, err
	}
	return bmag.Div(denom)
}

// MaxSoundSpeed reduces the sound speed field to its maximum.
func (s *State) MaxSoundSpeed() (float64, error) {
	cs, err := s.SoundSpeed()
	if err != nil {
		return 0, err
	}
	return cs.Max(), nil
}

// MaxAlfvenSpeed reduces the Alfvén speed field to its maximum.
func (s *State) MaxAlfvenSpeed() (float64, error) {
	va, err := s.AlfvenSpeed()
	if err != nil {
		return 0, err
	}
	return va.Max(), nil
}
