package field

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Arithmetic follows value semantics: operands are never mutated and a
// fresh field is returned. Addition and subtraction demand matching
// shapes and units; multiplication and division are the one place units
// combine.

// Add returns f + g.
func (f *Field) Add(g *Field) (*Field, error) {
	if !f.SameShape(g) {
		return nil, &ShapeError{Op: "field.Add", Want: f.Dims, Got: g.Dims}
	}
	if !f.Unit.Equal(g.Unit) {
		return nil, &UnitError{Op: "field.Add", A: f.Unit, B: g.Unit}
	}
	out := f.ZerosLike(f.Unit)
	floats.AddTo(out.Data, f.Data, g.Data)
	return out, nil
}

// Sub returns f - g.
func (f *Field) Sub(g *Field) (*Field, error) {
	if !f.SameShape(g) {
		return nil, &ShapeError{Op: "field.Sub", Want: f.Dims, Got: g.Dims}
	}
	if !f.Unit.Equal(g.Unit) {
		return nil, &UnitError{Op: "field.Sub", A: f.Unit, B: g.Unit}
	}
	out := f.ZerosLike(f.Unit)
	floats.SubTo(out.Data, f.Data, g.Data)
	return out, nil
}

// AddScaled returns f + alpha*g for dimensionless alpha.
func (f *Field) AddScaled(alpha float64, g *Field) (*Field, error) {
	if !f.SameShape(g) {
		return nil, &ShapeError{Op: "field.AddScaled", Want: f.Dims, Got: g.Dims}
	}
	if !f.Unit.Equal(g.Unit) {
		return nil, &UnitError{Op: "field.AddScaled", A: f.Unit, B: g.Unit}
	}
	out := f.Clone()
	floats.AddScaled(out.Data, alpha, g.Data)
	return out, nil
}

// Scale returns f scaled by a dimensionless factor.
func (f *Field) Scale(alpha float64) *Field {
	out := f.ZerosLike(f.Unit)
	floats.ScaleTo(out.Data, alpha, f.Data)
	return out
}

// MulConst returns f scaled by a dimensionful constant.
func (f *Field) MulConst(c float64, u Unit) *Field {
	out := f.ZerosLike(f.Unit.Mul(u))
	floats.ScaleTo(out.Data, c, f.Data)
	return out
}

// AddConst returns f with a same-unit constant added at every point.
func (f *Field) AddConst(c float64, u Unit) (*Field, error) {
	if !f.Unit.Equal(u) {
		return nil, &UnitError{Op: "field.AddConst", A: f.Unit, B: u}
	}
	out := f.Clone()
	floats.AddConst(c, out.Data)
	return out, nil
}

func (f *Field) Neg() *Field {
	return f.Scale(-1)
}

// Mul returns the elementwise product of two same-shape fields.
func (f *Field) Mul(g *Field) (*Field, error) {
	if !f.SameShape(g) {
		return nil, &ShapeError{Op: "field.Mul", Want: f.Dims, Got: g.Dims}
	}
	out := f.ZerosLike(f.Unit.Mul(g.Unit))
	floats.MulTo(out.Data, f.Data, g.Data)
	return out, nil
}

// Div returns the elementwise quotient of two same-shape fields.
func (f *Field) Div(g *Field) (*Field, error) {
	if !f.SameShape(g) {
		return nil, &ShapeError{Op: "field.Div", Want: f.Dims, Got: g.Dims}
	}
	out := f.ZerosLike(f.Unit.Div(g.Unit))
	floats.DivTo(out.Data, f.Data, g.Data)
	return out, nil
}

// MulScalar multiplies every component of f by a scalar field over the
// same grid. This is the explicit form of component-wise scaling; no
// operator here broadcasts silently.
func (f *Field) MulScalar(s *Field) (*Field, error) {
	if !s.IsScalar() {
		return nil, ErrNotScalar
	}
	if !sameDims(f.GridShape(), s.Dims) {
		return nil, &ShapeError{Op: "field.MulScalar", Want: f.GridShape(), Got: s.Dims}
	}
	out := f.ZerosLike(f.Unit.Mul(s.Unit))
	n := f.GridSize()
	for c := 0; c < len(f.Data)/n; c++ {
		floats.MulTo(out.Data[c*n:(c+1)*n], f.Data[c*n:(c+1)*n], s.Data)
	}
	return out, nil
}

// DivScalar divides every component of f by a scalar field over the
// same grid.
func (f *Field) DivScalar(s *Field) (*Field, error) {
	if !s.IsScalar() {
		return nil, ErrNotScalar
	}
	if !sameDims(f.GridShape(), s.Dims) {
		return nil, &ShapeError{Op: "field.DivScalar", Want: f.GridShape(), Got: s.Dims}
	}
	out := f.ZerosLike(f.Unit.Div(s.Unit))
	n := f.GridSize()
	for c := 0; c < len(f.Data)/n; c++ {
		floats.DivTo(out.Data[c*n:(c+1)*n], f.Data[c*n:(c+1)*n], s.Data)
	}
	return out, nil
}

// Sqrt returns the pointwise square root. Negative values clamp to
// zero so derived wave-speed estimates stay finite.
func (f *Field) Sqrt() (*Field, error) {
	u, err := f.Unit.Sqrt()
	if err != nil {
		return nil, err
	}
	out := f.ZerosLike(u)
	for i, v := range f.Data {
		if v > 0 {
			out.Data[i] = math.Sqrt(v)
		}
	}
	return out, nil
}

// Max returns the largest value in the field.
func (f *Field) Max() float64 {
	return floats.Max(f.Data)
}

// Sum returns the sum over all grid points and components.
func (f *Field) Sum() float64 {
	return floats.Sum(f.Data)
}

func sameDims(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
