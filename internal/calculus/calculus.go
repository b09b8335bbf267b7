// Package calculus provides the vector and tensor differential
// operators the MHD equations are assembled from. All operators are
// pure: inputs are never mutated, preconditions are validated up front
// and a descriptive shape error is returned rather than a partially
// computed result.
package calculus

import (
	"github.com/san-kum/mhd/internal/field"
	"github.com/san-kum/mhd/internal/solver"
	"gonum.org/v1/gonum/floats"
)

func checkVectorPair(op string, v1, v2 *field.Field) error {
	if !v1.IsVector() || !v2.IsVector() {
		return field.ErrNotVector
	}
	if !v1.SameShape(v2) {
		return &field.ShapeError{Op: op, Want: v1.Dims, Got: v2.Dims}
	}
	return nil
}

// Dot contracts two vector fields into a scalar field,
// a = v1 . v2 summed over the leading axis.
func Dot(v1, v2 *field.Field) (*field.Field, error) {
	if err := checkVectorPair("calculus.Dot", v1, v2); err != nil {
		return nil, err
	}
	out := field.NewScalar(v1.GridShape(), v1.Unit.Mul(v2.Unit))
	tmp := make([]float64, out.GridSize())
	for i := 0; i < 3; i++ {
		a, _ := v1.Component(i)
		b, _ := v2.Component(i)
		floats.MulTo(tmp, a.Data, b.Data)
		floats.Add(out.Data, tmp)
	}
	if len(out.Data) != v1.GridSize() {
		return nil, &field.ShapeError{Op: "calculus.Dot", Want: v1.GridShape(), Got: out.Dims}
	}
	return out, nil
}

// Cross computes the 3-component cross product of two vector fields.
func Cross(v1, v2 *field.Field) (*field.Field, error) {
	if err := checkVectorPair("calculus.Cross", v1, v2); err != nil {
		return nil, err
	}
	out := field.NewVector(v1.GridShape(), v1.Unit.Mul(v2.Unit))
	n := out.GridSize()
	for i := 0; i < 3; i++ {
		j, k := (i+1)%3, (i+2)%3
		aj, _ := v1.Component(j)
		ak, _ := v1.Component(k)
		bj, _ := v2.Component(j)
		bk, _ := v2.Component(k)
		dst := out.Data[i*n : (i+1)*n]
		for p := 0; p < n; p++ {
			dst[p] = aj.Data[p]*bk.Data[p] - ak.Data[p]*bj.Data[p]
		}
	}
	return out, nil
}

// Grad populates component i of the output with the derivative of f
// along axis i. Components beyond the active axes stay zero for <3D
// domains.
func Grad(f *field.Field, s solver.Interface) (*field.Field, error) {
	if !f.IsScalar() {
		return nil, field.ErrNotScalar
	}
	if s.Axes() != f.NDim() {
		return nil, field.ErrDimensionMismatch
	}
	out := field.NewVector(f.GridShape(), f.Unit.Div(field.Meter))
	for axis := 0; axis < f.NDim(); axis++ {
		d, err := s.Diff(f, axis)
		if err != nil {
			return nil, err
		}
		dst, _ := out.Component(axis)
		copy(dst.Data, d.Data)
	}
	return out, nil
}

// Div sums the derivative of each vector component along its own axis,
// yielding a scalar field.
func Div(v *field.Field, s solver.Interface) (*field.Field, error) {
	if !v.IsVector() {
		return nil, field.ErrNotVector
	}
	if s.Axes() != v.NDim() {
		return nil, field.ErrDimensionMismatch
	}
	out := field.NewScalar(v.GridShape(), v.Unit.Div(field.Meter))
	for axis := 0; axis < v.NDim(); axis++ {
		c, _ := v.Component(axis)
		d, err := s.Diff(c, axis)
		if err != nil {
			return nil, err
		}
		floats.Add(out.Data, d.Data)
	}
	return out, nil
}

// VDP is the vector direct (outer) product: T[i,j] = v1[i] * v2[j]
// per grid point.
func VDP(v1, v2 *field.Field) (*field.Field, error) {
	if err := checkVectorPair("calculus.VDP", v1, v2); err != nil {
		return nil, err
	}
	out := field.NewTensor(v1.GridShape(), v1.Unit.Mul(v2.Unit))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a, _ := v1.Component(i)
			b, _ := v2.Component(j)
			dst, _ := out.TensorComponent(i, j)
			floats.MulTo(dst.Data, a.Data, b.Data)
		}
	}
	return out, nil
}

// TensorDiv contracts a rank-2 tensor on its first index with the
// derivative operator: out[j] = sum_i d(T[i,j])/dx_i.
func TensorDiv(t *field.Field, s solver.Interface) (*field.Field, error) {
	if !t.IsTensor() {
		return nil, field.ErrNotTensor
	}
	if s.Axes() != t.NDim() {
		return nil, field.ErrDimensionMismatch
	}
	out := field.NewVector(t.GridShape(), t.Unit.Div(field.Meter))
	for j := 0; j < 3; j++ {
		dst, _ := out.Component(j)
		for i := 0; i < t.NDim(); i++ {
			c, _ := t.TensorComponent(i, j)
			d, err := s.Diff(c, i)
			if err != nil {
				return nil, err
			}
			floats.Add(dst.Data, d.Data)
		}
	}
	return out, nil
}

// VTDot contracts a vector with a tensor's first index:
// out[j] = sum_i v[i] * T[i,j].
func VTDot(v, t *field.Field) (*field.Field, error) {
	if !v.IsVector() {
		return nil, field.ErrNotVector
	}
	if !t.IsTensor() {
		return nil, field.ErrNotTensor
	}
	if !sameInts(v.GridShape(), t.GridShape()) {
		return nil, &field.ShapeError{Op: "calculus.VTDot", Want: v.GridShape(), Got: t.GridShape()}
	}
	out := field.NewVector(v.GridShape(), v.Unit.Mul(t.Unit))
	n := out.GridSize()
	tmp := make([]float64, n)
	for j := 0; j < 3; j++ {
		dst := out.Data[j*n : (j+1)*n]
		for i := 0; i < 3; i++ {
			a, _ := v.Component(i)
			b, _ := t.TensorComponent(i, j)
			floats.MulTo(tmp, a.Data, b.Data)
			floats.Add(dst, tmp)
		}
	}
	return out, nil
}

func sameInts(a, b []int) bool {
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
