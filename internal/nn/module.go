// Package nn implements the stateless strategy set used by the digitnet
// engines:
//   - Activation: forward transform and its derivative (Sigmoid, ReLU,
//     LeakyReLU, Softmax)
//   - Loss: cost and output-layer error (Quadratic, BinaryCrossEntropy,
//     CategoricalCrossEntropy)
//   - Sample: an (input, one-hot target) training pair
//
// Strategies are selected by a network at construction time and can be looked
// up by name so that a serialized network remembers its configuration.
package nn

import (
	"github.com/born-ml/digitnet/internal/matrix"
)

// Activation is an element-wise (or, for Softmax, column-wise) transfer
// function used by a layer.
//
// Both methods are pure: they never modify z.
type Activation interface {
	// Name returns the registry name, e.g. "relu".
	Name() string

	// Fn returns a = f(z).
	Fn(z *matrix.Matrix) *matrix.Matrix

	// Derivative returns f'(z) with the same shape as z.
	Derivative(z *matrix.Matrix) *matrix.Matrix
}

// Loss is a cost function paired with the error it produces at the output
// layer.
type Loss interface {
	// Name returns the registry name, e.g. "quadratic".
	Name() string

	// Fn returns the scalar cost of activation a against target y.
	Fn(a, y *matrix.Matrix) float64

	// OutputError returns δ_L = ∂C/∂a ⊙ act'(z) for the output layer.
	OutputError(z, a, y *matrix.Matrix, act Activation) *matrix.Matrix
}
