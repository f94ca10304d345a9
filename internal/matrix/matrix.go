package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Shape is the (rows, cols) pair of a matrix.
type Shape struct {
	Rows int
	Cols int
}

// String formats the shape as RxC.
func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// Matrix is a dense row-major matrix of float64 values.
type Matrix struct {
	rows int
	cols int
	data []float64
}

// New creates a rows x cols matrix of zeros.
//
// It panics if either dimension is negative.
func New(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("matrix.New: negative dimension %dx%d", rows, cols))
	}
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}
}

// Copy returns an independent deep copy of m.
func Copy(m *Matrix) *Matrix {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return &Matrix{rows: m.rows, cols: m.cols, data: data}
}

// Clone is the method form of Copy.
func (m *Matrix) Clone() *Matrix {
	return Copy(m)
}

// VectorFromSlice creates a column vector holding a copy of arr.
func VectorFromSlice(arr []float64) *Matrix {
	m := New(len(arr), 1)
	copy(m.data, arr)
	return m
}

// FromSlice creates a rows x cols matrix filled row-major from arr.
func FromSlice(arr []float64, rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 || len(arr) != rows*cols {
		return nil, badShape(rows, cols, len(arr))
	}
	m := New(rows, cols)
	copy(m.data, arr)
	return m, nil
}

// FromRows creates a matrix from nested rows. All rows must have equal length.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}
	cols := len(rows[0])
	m := New(len(rows), cols)
	for r, row := range rows {
		if len(row) != cols {
			return nil, badShape(len(rows), cols, r*cols+len(row))
		}
		copy(m.data[r*cols:(r+1)*cols], row)
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Shape returns the matrix dimensions.
func (m *Matrix) Shape() Shape { return Shape{Rows: m.rows, Cols: m.cols} }

// Len returns rows*cols.
func (m *Matrix) Len() int { return len(m.data) }

// At returns the element at (r, c).
func (m *Matrix) At(r, c int) float64 {
	return m.data[r*m.cols+c]
}

// Set stores v at (r, c).
func (m *Matrix) Set(r, c int, v float64) {
	m.data[r*m.cols+c] = v
}

// Data returns the row-major backing slice. Writes through it modify m.
func (m *Matrix) Data() []float64 {
	return m.data
}

// ToSlice returns a row-major copy of the elements.
func (m *Matrix) ToSlice() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)
	return out
}

// ToRows returns a nested copy of the elements, one slice per row.
func (m *Matrix) ToRows() [][]float64 {
	out := make([][]float64, m.rows)
	for r := range out {
		out[r] = make([]float64, m.cols)
		copy(out[r], m.data[r*m.cols:(r+1)*m.cols])
	}
	return out
}

// SameShape reports whether m and o have identical dimensions.
func (m *Matrix) SameShape(o *Matrix) bool {
	return m.rows == o.rows && m.cols == o.cols
}

// Equal reports whether m and o have the same shape and identical elements.
func (m *Matrix) Equal(o *Matrix) bool {
	if !m.SameShape(o) {
		return false
	}
	for i, v := range m.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}

// EqualApprox reports whether m and o have the same shape and every pair of
// elements differs by at most tol.
func (m *Matrix) EqualApprox(o *Matrix, tol float64) bool {
	if !m.SameShape(o) {
		return false
	}
	for i, v := range m.data {
		if math.Abs(o.data[i]-v) > tol {
			return false
		}
	}
	return true
}

// Sum returns the sum of all elements.
func (m *Matrix) Sum() float64 {
	var s float64
	for _, v := range m.data {
		s += v
	}
	return s
}

// String renders the matrix one row per line.
func (m *Matrix) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Matrix(%dx%d)\n", m.rows, m.cols)
	for r := 0; r < m.rows; r++ {
		b.WriteString("[")
		for c := 0; c < m.cols; c++ {
			if c > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%.6g", m.At(r, c))
		}
		b.WriteString("]\n")
	}
	return b.String()
}
