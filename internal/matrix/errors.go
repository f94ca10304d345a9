package matrix

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Sentinel errors. Match them with errors.Is.
var (
	// ErrDimensionMismatch reports incompatible operand shapes, e.g. Add on
	// different shapes or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrBadShape reports a negative dimension or a backing slice whose length
	// does not match rows*cols.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange reports a region or index outside the matrix bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")
)

// DimensionError describes a shape violation for a binary operation.
type DimensionError struct {
	Op    string
	Left  Shape
	Right Shape
}

// Error implements the error interface.
func (e *DimensionError) Error() string {
	return fmt.Sprintf("matrix: %s: dimension mismatch %v vs %v", e.Op, e.Left, e.Right)
}

// Unwrap lets errors.Is(err, ErrDimensionMismatch) succeed.
func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}

// MismatchHandler receives shape violations detected by in-place methods.
type MismatchHandler func(err *DimensionError)

var mismatchHandler atomic.Pointer[MismatchHandler]

func init() {
	h := MismatchHandler(PanicOnMismatch)
	mismatchHandler.Store(&h)
}

// PanicOnMismatch is the default handler. It panics with the *DimensionError.
func PanicOnMismatch(err *DimensionError) {
	panic(err)
}

// LogMismatches returns a handler that logs the violation and lets the
// in-place operation become a no-op.
func LogMismatches(logger *slog.Logger) MismatchHandler {
	return func(err *DimensionError) {
		logger.Error("matrix operation skipped",
			"op", err.Op,
			"left", err.Left.String(),
			"right", err.Right.String())
	}
}

// SetMismatchHandler installs h for all in-place methods and returns the
// previous handler. A nil h restores PanicOnMismatch.
func SetMismatchHandler(h MismatchHandler) MismatchHandler {
	if h == nil {
		h = PanicOnMismatch
	}
	prev := mismatchHandler.Swap(&h)
	return *prev
}

func reportMismatch(op string, a, b *Matrix) {
	(*mismatchHandler.Load())(&DimensionError{Op: op, Left: a.Shape(), Right: b.Shape()})
}

// Must panics if err is non-nil and returns m otherwise. It is meant for call
// sites whose shapes are guaranteed by construction.
func Must(m *Matrix, err error) *Matrix {
	if err != nil {
		panic(err)
	}
	return m
}

func mismatch(op string, a, b *Matrix) error {
	return &DimensionError{Op: op, Left: a.Shape(), Right: b.Shape()}
}

func badShape(rows, cols, n int) error {
	return errors.Wrapf(ErrBadShape, "%dx%d needs %d values, got %d", rows, cols, rows*cols, n)
}
