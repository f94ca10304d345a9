package nn

import (
	"math"

	"github.com/born-ml/digitnet/internal/matrix"
)

// LeakySlope is the negative-side slope of LeakyReLU.
const LeakySlope = 0.01

// Sigmoid is the logistic activation.
//
// Applies σ(z) = 1 / (1 + exp(-z)); σ'(z) = σ(z)(1 - σ(z)).
type Sigmoid struct{}

// Name implements Activation.
func (Sigmoid) Name() string { return "sigmoid" }

// Fn implements Activation.
func (Sigmoid) Fn(z *matrix.Matrix) *matrix.Matrix {
	return matrix.Map(z, func(v float64, _, _ int) float64 {
		return 1 / (1 + math.Exp(-v))
	})
}

// Derivative implements Activation.
func (s Sigmoid) Derivative(z *matrix.Matrix) *matrix.Matrix {
	return s.Fn(z).Map(func(a float64, _, _ int) float64 {
		return a * (1 - a)
	})
}

// ReLU is the rectified linear unit: max(0, z).
//
// The derivative is taken as 0 at z = 0.
type ReLU struct{}

// Name implements Activation.
func (ReLU) Name() string { return "relu" }

// Fn implements Activation.
func (ReLU) Fn(z *matrix.Matrix) *matrix.Matrix {
	return matrix.Map(z, func(v float64, _, _ int) float64 {
		return math.Max(0, v)
	})
}

// Derivative implements Activation.
func (ReLU) Derivative(z *matrix.Matrix) *matrix.Matrix {
	return matrix.Map(z, func(v float64, _, _ int) float64 {
		if v > 0 {
			return 1
		}
		return 0
	})
}

// LeakyReLU passes positive values and scales negative values by LeakySlope.
type LeakyReLU struct{}

// Name implements Activation.
func (LeakyReLU) Name() string { return "leaky-relu" }

// Fn implements Activation.
func (LeakyReLU) Fn(z *matrix.Matrix) *matrix.Matrix {
	return matrix.Map(z, func(v float64, _, _ int) float64 {
		if v > 0 {
			return v
		}
		return LeakySlope * v
	})
}

// Derivative implements Activation.
func (LeakyReLU) Derivative(z *matrix.Matrix) *matrix.Matrix {
	return matrix.Map(z, func(v float64, _, _ int) float64 {
		if v > 0 {
			return 1
		}
		return LeakySlope
	})
}

// Softmax normalizes each column of z into a probability distribution:
//
//	softmax(z)_i = exp(z_i) / Σ_j exp(z_j)
//
// The column maximum is subtracted before exponentiating, which leaves the
// result unchanged and keeps exp from overflowing.
//
// Derivative returns the diagonal of the Jacobian, a(1-a). Pairing Softmax
// with a cross-entropy loss therefore uses the generic composition rather
// than the a - y simplification.
type Softmax struct{}

// Name implements Activation.
func (Softmax) Name() string { return "softmax" }

// Fn implements Activation.
func (Softmax) Fn(z *matrix.Matrix) *matrix.Matrix {
	out := matrix.New(z.Rows(), z.Cols())
	for c := 0; c < z.Cols(); c++ {
		peak := math.Inf(-1)
		for r := 0; r < z.Rows(); r++ {
			peak = math.Max(peak, z.At(r, c))
		}
		var sum float64
		for r := 0; r < z.Rows(); r++ {
			e := math.Exp(z.At(r, c) - peak)
			out.Set(r, c, e)
			sum += e
		}
		for r := 0; r < z.Rows(); r++ {
			out.Set(r, c, out.At(r, c)/sum)
		}
	}
	return out
}

// Derivative implements Activation.
func (s Softmax) Derivative(z *matrix.Matrix) *matrix.Matrix {
	return s.Fn(z).Map(func(a float64, _, _ int) float64 {
		return a * (1 - a)
	})
}
