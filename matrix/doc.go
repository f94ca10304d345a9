// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the dense float64 matrix used by digitnet.
//
// # Overview
//
// Matrices are row-major and come in two flavors of operations:
//   - In-place methods (Add, Sub, Mul, Scale, Map, ...) modify the receiver
//     and return it for chaining
//   - Package functions (Add, Sub, Hadamard, Mul, Transpose, ...) allocate
//     a new result and leave their operands untouched
//
// # Basic Usage
//
//	import "github.com/born-ml/digitnet/matrix"
//
//	func main() {
//	    w := matrix.Must(matrix.FromRows([][]float64{{1, 2}, {3, 4}}))
//	    x := matrix.VectorFromSlice([]float64{1, 1})
//
//	    z := matrix.Must(matrix.Mul(w, x)) // 2x1
//	    z.AddScalar(0.5).Scale(2)
//	}
//
// # Shape Mismatches
//
// Package functions return an error wrapping ErrDimensionMismatch. In-place
// methods report mismatches to the installed MismatchHandler, which panics by
// default:
//
//	prev := matrix.SetMismatchHandler(matrix.LogMismatches(logger))
//	defer matrix.SetMismatchHandler(prev)
package matrix
