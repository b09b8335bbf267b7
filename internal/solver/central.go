package solver

import (
	"fmt"

	"github.com/san-kum/mhd/internal/field"
)

// Interface is the derivative operator the calculus layer consumes:
// D(field, axis) -> derivative field. Implementations must preserve
// the field's shape and divide its unit by the spacing unit.
type Interface interface {
	Diff(f *field.Field, axis int) (*field.Field, error)
	Axes() int
}

// Central differentiates with second-order central differences,
// one-sided at non-periodic edges. It is stateless apart from the grid
// spacing it was bound to at construction.
type Central struct {
	spacing  []float64
	unit     field.Unit
	periodic bool
}

// NewCentral binds a solver to one spacing scalar per active spatial
// axis, in physical length units.
func NewCentral(spacing []float64, periodic bool) *Central {
	return &Central{
		spacing:  append([]float64{}, spacing...),
		unit:     field.Meter,
		periodic: periodic,
	}
}

func (c *Central) Axes() int { return len(c.spacing) }

// Spacing returns the grid spacing along axis.
func (c *Central) Spacing(axis int) float64 { return c.spacing[axis] }

func (c *Central) Diff(f *field.Field, axis int) (*field.Field, error) {
	if len(c.spacing) != f.NDim() {
		return nil, fmt.Errorf("solver: %d spacing values for %d-dimensional field: %w",
			len(c.spacing), f.NDim(), field.ErrDimensionMismatch)
	}
	if axis < 0 || axis >= f.NDim() {
		return nil, fmt.Errorf("solver: axis %d out of range for %d active axes: %w",
			axis, f.NDim(), field.ErrDimensionMismatch)
	}

	grid := f.GridShape()
	n := grid[axis]
	stride := 1
	for _, d := range grid[axis+1:] {
		stride *= d
	}
	outer := 1
	for _, d := range grid[:axis] {
		outer *= d
	}
	gridSize := f.GridSize()
	comps := len(f.Data) / gridSize

	out := f.ZerosLike(f.Unit.Div(c.unit))
	h := c.spacing[axis]
	if n == 1 {
		return out, nil
	}

	for comp := 0; comp < comps; comp++ {
		for o := 0; o < outer; o++ {
			for inner := 0; inner < stride; inner++ {
				base := comp*gridSize + o*n*stride + inner
				c.diffLine(f.Data, out.Data, base, stride, n, h)
			}
		}
	}
	return out, nil
}

// diffLine differentiates one grid line starting at base with the
// given stride.
func (c *Central) diffLine(src, dst []float64, base, stride, n int, h float64) {
	at := func(i int) float64 { return src[base+i*stride] }

	for i := 1; i < n-1; i++ {
		dst[base+i*stride] = (at(i+1) - at(i-1)) / (2 * h)
	}
	if c.periodic {
		dst[base] = (at(1) - at(n-1)) / (2 * h)
		dst[base+(n-1)*stride] = (at(0) - at(n-2)) / (2 * h)
		return
	}
	dst[base] = (at(1) - at(0)) / h
	dst[base+(n-1)*stride] = (at(n-1) - at(n-2)) / h
}
