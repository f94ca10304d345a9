// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/born-ml/digitnet/matrix"
)

// TestPureOperations verifies the facade functions allocate new results.
func TestPureOperations(t *testing.T) {
	a := matrix.Must(matrix.FromRows([][]float64{{1, 2}, {3, 4}}))
	b := matrix.Must(matrix.FromRows([][]float64{{5, 6}, {7, 8}}))

	prod := matrix.Must(matrix.Mul(a, b))
	want := matrix.Must(matrix.FromRows([][]float64{{19, 22}, {43, 50}}))
	if !prod.Equal(want) {
		t.Errorf("Mul = %v, want %v", prod, want)
	}
	if a.At(0, 0) != 1 {
		t.Error("Mul modified its operand")
	}

	if got := matrix.Transpose(a).At(0, 1); got != 3 {
		t.Errorf("Transpose(a)[0,1] = %v, want 3", got)
	}
}

// TestDimensionMismatch verifies shape errors surface as ErrDimensionMismatch.
func TestDimensionMismatch(t *testing.T) {
	_, err := matrix.Mul(matrix.New(2, 3), matrix.New(2, 3))
	if !errors.Is(err, matrix.ErrDimensionMismatch) {
		t.Errorf("Mul error = %v, want ErrDimensionMismatch", err)
	}

	var dimErr *matrix.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("Mul error %v is not a *DimensionError", err)
	}
	if dimErr.Left != (matrix.Shape{Rows: 2, Cols: 3}) {
		t.Errorf("Left = %v, want 2x3", dimErr.Left)
	}
}
