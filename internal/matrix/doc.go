// Package matrix implements the dense two-dimensional float64 container that
// every other computation in digitnet is built on.
//
// A Matrix is row-major and owns its storage. Constructors never alias:
// New allocates zeros and Copy performs a deep copy.
//
// Two families of operations are provided:
//   - Methods (Add, Sub, Mul, Div, Scale, Map, ...) mutate the receiver and
//     return it so calls can be chained.
//   - Package functions (Add, Sub, Hadamard, Div, Mul, Transpose, Map) are pure
//     and allocate their result.
//
// Shape violations in package functions are returned as *DimensionError,
// which matches ErrDimensionMismatch under errors.Is. Methods cannot return an
// error without breaking chaining, so they hand the *DimensionError to the
// package mismatch handler. The default handler panics; LogMismatches installs
// a log-and-continue handler that leaves the receiver untouched.
//
// Example:
//
//	w := matrix.New(3, 2).RandomizeNormal(rng)
//	x := matrix.VectorFromSlice([]float64{0.5, 1})
//	z, err := matrix.Mul(w, x) // 3x1
//	if err != nil {
//	    return err
//	}
//	z.Add(bias).Map(func(v float64, _, _ int) float64 { return max(0, v) })
package matrix
