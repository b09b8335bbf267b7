package field

import (
	"errors"
	"fmt"
)

// Domain errors for field operations. These signal programming or
// configuration mistakes, not transient conditions; callers abort the
// current step rather than retry.
var (
	// ErrShapeMismatch indicates operand shapes are inconsistent.
	ErrShapeMismatch = errors.New("field: operand shapes do not match")

	// ErrNotVector indicates a leading axis other than 3.
	ErrNotVector = errors.New("field: not a vector field (leading axis must be 3)")

	// ErrNotTensor indicates leading axes other than 3x3.
	ErrNotTensor = errors.New("field: not a tensor field (leading axes must be 3x3)")

	// ErrNotScalar indicates component axes on a field that must have none.
	ErrNotScalar = errors.New("field: not a scalar field")

	// ErrUnitMismatch indicates incompatible physical units combined.
	ErrUnitMismatch = errors.New("field: incompatible units")

	// ErrDimensionMismatch indicates solver spacing count vs. field
	// dimensionality disagreement.
	ErrDimensionMismatch = errors.New("field: spacing does not match field dimensionality")
)

// ShapeError wraps ErrShapeMismatch with the offending operation and shapes.
type ShapeError struct {
	Op   string
	Want []int
	Got  []int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: shape %v, want %v: %v", e.Op, e.Got, e.Want, ErrShapeMismatch)
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

// UnitError wraps ErrUnitMismatch with the two units that failed to combine.
type UnitError struct {
	Op   string
	A, B Unit
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("%s: units %v and %v: %v", e.Op, e.A, e.B, ErrUnitMismatch)
}

func (e *UnitError) Unwrap() error {
	return ErrUnitMismatch
}
