package field

// Field is an n-dimensional grid of physical quantities sharing one
// unit. Dims holds component axes first, then grid axes: scalars are
// (x[,y[,z]]), vectors (3, x[,y[,z]]), rank-2 tensors (3, 3, x[,y[,z]]).
// Rank counts the leading component axes. Data is row-major, so each
// component occupies one contiguous block.
type Field struct {
	Data []float64
	Dims []int
	Rank int
	Unit Unit
}

func prod(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

// NewScalar returns a zero-valued scalar field over the given grid shape.
func NewScalar(grid []int, u Unit) *Field {
	dims := append([]int{}, grid...)
	return &Field{Data: make([]float64, prod(dims)), Dims: dims, Rank: 0, Unit: u}
}

// NewVector returns a zero-valued 3-component vector field.
func NewVector(grid []int, u Unit) *Field {
	dims := append([]int{3}, grid...)
	return &Field{Data: make([]float64, prod(dims)), Dims: dims, Rank: 1, Unit: u}
}

// NewTensor returns a zero-valued 3x3 tensor field.
func NewTensor(grid []int, u Unit) *Field {
	dims := append([]int{3, 3}, grid...)
	return &Field{Data: make([]float64, prod(dims)), Dims: dims, Rank: 2, Unit: u}
}

// ScalarFromData wraps existing values as a scalar field. The slice is
// taken over, not copied.
func ScalarFromData(data []float64, grid []int, u Unit) (*Field, error) {
	if len(data) != prod(grid) {
		return nil, &ShapeError{Op: "field.ScalarFromData", Want: grid, Got: []int{len(data)}}
	}
	return &Field{Data: data, Dims: append([]int{}, grid...), Rank: 0, Unit: u}, nil
}

// GridShape returns the spatial axes of the field.
func (f *Field) GridShape() []int {
	return f.Dims[f.Rank:]
}

// GridSize returns the number of grid points.
func (f *Field) GridSize() int {
	return prod(f.GridShape())
}

// NDim returns the number of spatial axes (1, 2 or 3).
func (f *Field) NDim() int {
	return len(f.Dims) - f.Rank
}

func (f *Field) IsScalar() bool { return f.Rank == 0 }

func (f *Field) IsVector() bool {
	return f.Rank == 1 && len(f.Dims) > 1 && f.Dims[0] == 3
}

func (f *Field) IsTensor() bool {
	return f.Rank == 2 && len(f.Dims) > 2 && f.Dims[0] == 3 && f.Dims[1] == 3
}

// SameShape reports whether g has identical dims and rank.
func (f *Field) SameShape(g *Field) bool {
	if f.Rank != g.Rank || len(f.Dims) != len(g.Dims) {
		return false
	}
	for i := range f.Dims {
		if f.Dims[i] != g.Dims[i] {
			return false
		}
	}
	return true
}

func (f *Field) Clone() *Field {
	data := make([]float64, len(f.Data))
	copy(data, f.Data)
	return &Field{Data: data, Dims: append([]int{}, f.Dims...), Rank: f.Rank, Unit: f.Unit}
}

// ZerosLike returns a zero field with f's shape and the given unit.
func (f *Field) ZerosLike(u Unit) *Field {
	return &Field{Data: make([]float64, len(f.Data)), Dims: append([]int{}, f.Dims...), Rank: f.Rank, Unit: u}
}

// Component returns a view of vector component i sharing f's storage.
// Writes through the view land in f.
func (f *Field) Component(i int) (*Field, error) {
	if !f.IsVector() {
		return nil, ErrNotVector
	}
	if i < 0 || i > 2 {
		return nil, &ShapeError{Op: "field.Component", Want: []int{3}, Got: []int{i}}
	}
	n := f.GridSize()
	return &Field{Data: f.Data[i*n : (i+1)*n], Dims: f.GridShape(), Rank: 0, Unit: f.Unit}, nil
}

// TensorComponent returns a view of tensor component (i, j) sharing
// f's storage.
func (f *Field) TensorComponent(i, j int) (*Field, error) {
	if !f.IsTensor() {
		return nil, ErrNotTensor
	}
	if i < 0 || i > 2 || j < 0 || j > 2 {
		return nil, &ShapeError{Op: "field.TensorComponent", Want: []int{3, 3}, Got: []int{i, j}}
	}
	n := f.GridSize()
	off := (i*3 + j) * n
	return &Field{Data: f.Data[off : off+n], Dims: f.GridShape(), Rank: 0, Unit: f.Unit}, nil
}
