// Package field provides grid-shaped physical quantities for the MHD
// engine.
//
// A [Field] is a flat float64 array with explicit dims, a component
// rank and a [Unit]. Scalars, 3-vectors and 3x3 tensors share the same
// representation; every operation validates leading-axis cardinality
// and shape equality before computing and fails fast on mismatch
// instead of broadcasting.
//
// Units combine only through multiplication and division; additive
// operations require exact unit equality and return
// [ErrUnitMismatch] otherwise.
package field
