package matrix

import (
	"math"

	"github.com/pkg/errors"
)

// Region returns an independent h x w copy of m whose top-left corner is at
// column x, row y.
//
// It panics with ErrOutOfRange if the region does not fit inside m.
func (m *Matrix) Region(x, y, w, h int) *Matrix {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > m.cols || y+h > m.rows {
		panic(errors.Wrapf(ErrOutOfRange, "region x=%d y=%d w=%d h=%d in %v", x, y, w, h, m.Shape()))
	}
	out := New(h, w)
	for r := 0; r < h; r++ {
		src := m.data[(y+r)*m.cols+x : (y+r)*m.cols+x+w]
		copy(out.data[r*w:(r+1)*w], src)
	}
	return out
}

// Max returns the largest element and its position. Ties resolve to the
// first occurrence in row-major order. An empty matrix yields (-Inf, -1, -1).
func (m *Matrix) Max() (value float64, row, col int) {
	value, row, col = math.Inf(-1), -1, -1
	for i, v := range m.data {
		if v > value {
			value = v
			row, col = i/m.cols, i%m.cols
		}
	}
	return value, row, col
}

// ArgMax returns the row-major index of the first maximum element, or -1 for
// an empty matrix.
func (m *Matrix) ArgMax() int {
	_, r, c := m.Max()
	if r < 0 {
		return -1
	}
	return r*m.cols + c
}
