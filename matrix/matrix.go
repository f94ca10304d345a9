// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix

import (
	"log/slog"

	"github.com/born-ml/digitnet/internal/matrix"
)

// Matrix is a dense row-major matrix of float64 values.
type Matrix = matrix.Matrix

// Shape is the (rows, cols) pair of a matrix.
type Shape = matrix.Shape

// DimensionError describes a shape violation for a binary operation.
type DimensionError = matrix.DimensionError

// MismatchHandler receives shape violations detected by in-place methods.
type MismatchHandler = matrix.MismatchHandler

// Errors.
var (
	ErrDimensionMismatch = matrix.ErrDimensionMismatch
	ErrBadShape          = matrix.ErrBadShape
	ErrOutOfRange        = matrix.ErrOutOfRange
)

// Construction

// New creates a rows x cols matrix of zeros.
func New(rows, cols int) *Matrix {
	return matrix.New(rows, cols)
}

// FromSlice creates a rows x cols matrix filled row-major from arr.
//
// Example:
//
//	m, err := matrix.FromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
func FromSlice(arr []float64, rows, cols int) (*Matrix, error) {
	return matrix.FromSlice(arr, rows, cols)
}

// FromRows creates a matrix from nested rows of equal length.
func FromRows(rows [][]float64) (*Matrix, error) {
	return matrix.FromRows(rows)
}

// VectorFromSlice creates a column vector.
func VectorFromSlice(arr []float64) *Matrix {
	return matrix.VectorFromSlice(arr)
}

// Copy returns a deep copy of m.
func Copy(m *Matrix) *Matrix {
	return matrix.Copy(m)
}

// Must panics if err is non-nil and returns m otherwise.
func Must(m *Matrix, err error) *Matrix {
	return matrix.Must(m, err)
}

// Pure operations

// Add returns a + b.
func Add(a, b *Matrix) (*Matrix, error) { return matrix.Add(a, b) }

// Sub returns a - b.
func Sub(a, b *Matrix) (*Matrix, error) { return matrix.Sub(a, b) }

// Hadamard returns the element-wise product of a and b.
func Hadamard(a, b *Matrix) (*Matrix, error) { return matrix.Hadamard(a, b) }

// Div returns the element-wise quotient of a and b.
func Div(a, b *Matrix) (*Matrix, error) { return matrix.Div(a, b) }

// Mul returns the matrix product a·b.
func Mul(a, b *Matrix) (*Matrix, error) { return matrix.Mul(a, b) }

// Dot returns the Frobenius inner product of a and b.
func Dot(a, b *Matrix) (float64, error) { return matrix.Dot(a, b) }

// Transpose returns the transpose of m.
func Transpose(m *Matrix) *Matrix { return matrix.Transpose(m) }

// Map returns a new matrix with fn applied to every element of m.
func Map(m *Matrix, fn func(v float64, r, c int) float64) *Matrix {
	return matrix.Map(m, fn)
}

// Mismatch handling

// SetMismatchHandler installs h and returns the previous handler.
func SetMismatchHandler(h MismatchHandler) MismatchHandler {
	return matrix.SetMismatchHandler(h)
}

// PanicOnMismatch is the default handler.
func PanicOnMismatch(err *DimensionError) {
	matrix.PanicOnMismatch(err)
}

// LogMismatches returns a handler that logs violations and turns the
// offending in-place operation into a no-op.
func LogMismatches(logger *slog.Logger) MismatchHandler {
	return matrix.LogMismatches(logger)
}
