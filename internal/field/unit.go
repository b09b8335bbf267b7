package field

import (
	"fmt"
	"strings"
)

// Unit tracks the four base dimensions the MHD equations touch
// (mass, length, time, current). Exponents are stored doubled so
// half-integer powers survive Sqrt exactly; the Alfvén normalization
// B/sqrt(mu0) produces kg^1/2 m^-1/2 s^-1 fields.
type Unit struct {
	kg, m, s, a int8
}

// NewUnit builds a unit from whole base-dimension exponents.
func NewUnit(kg, m, s, a int) Unit {
	return Unit{int8(2 * kg), int8(2 * m), int8(2 * s), int8(2 * a)}
}

var (
	Dimensionless = Unit{}
	Kilogram      = NewUnit(1, 0, 0, 0)
	Meter         = NewUnit(0, 1, 0, 0)
	Second        = NewUnit(0, 0, 1, 0)
	Ampere        = NewUnit(0, 0, 0, 1)

	MeterPerSecond  = NewUnit(0, 1, -1, 0)
	MassDensity     = NewUnit(1, -3, 0, 0)
	MomentumDensity = NewUnit(1, -2, -1, 0)
	EnergyDensity   = NewUnit(1, -1, -2, 0)
	Tesla           = NewUnit(1, 0, -2, -1)
	Diffusivity     = NewUnit(0, 2, -1, 0)
)

func (u Unit) Mul(v Unit) Unit {
	return Unit{u.kg + v.kg, u.m + v.m, u.s + v.s, u.a + v.a}
}

func (u Unit) Div(v Unit) Unit {
	return Unit{u.kg - v.kg, u.m - v.m, u.s - v.s, u.a - v.a}
}

func (u Unit) Inv() Unit {
	return Dimensionless.Div(u)
}

// Sqrt halves every exponent. Quarter powers are not representable and
// never occur in the equations; they indicate a wiring bug.
func (u Unit) Sqrt() (Unit, error) {
	if u.kg%2 != 0 || u.m%2 != 0 || u.s%2 != 0 || u.a%2 != 0 {
		return Unit{}, fmt.Errorf("field: sqrt of %v needs quarter-integer exponents: %w", u, ErrUnitMismatch)
	}
	return Unit{u.kg / 2, u.m / 2, u.s / 2, u.a / 2}, nil
}

func (u Unit) Equal(v Unit) bool {
	return u == v
}

func (u Unit) String() string {
	if u == (Unit{}) {
		return "1"
	}
	names := []string{"kg", "m", "s", "A"}
	exps := []int8{u.kg, u.m, u.s, u.a}
	parts := make([]string, 0, 4)
	for i, e := range exps {
		switch {
		case e == 0:
		case e == 2:
			parts = append(parts, names[i])
		case e%2 == 0:
			parts = append(parts, fmt.Sprintf("%s^%d", names[i], e/2))
		default:
			parts = append(parts, fmt.Sprintf("%s^%d/2", names[i], e))
		}
	}
	return strings.Join(parts, " ")
}
