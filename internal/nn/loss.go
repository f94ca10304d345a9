package nn

import (
	"math"

	"github.com/born-ml/digitnet/internal/matrix"
)

// Epsilon keeps log and division arguments away from zero when activations
// saturate at 0 or 1.
const Epsilon = 1e-100

// Quadratic is the sum-of-squares cost Σ 0.5(a-y)².
type Quadratic struct{}

// Name implements Loss.
func (Quadratic) Name() string { return "quadratic" }

// Fn implements Loss.
func (Quadratic) Fn(a, y *matrix.Matrix) float64 {
	diff := matrix.Must(matrix.Sub(a, y))
	var loss float64
	for _, d := range diff.Data() {
		loss += 0.5 * d * d
	}
	return loss
}

// OutputError implements Loss: (a-y) ⊙ act'(z).
func (Quadratic) OutputError(z, a, y *matrix.Matrix, act Activation) *matrix.Matrix {
	return matrix.Must(matrix.Sub(a, y)).Mul(act.Derivative(z))
}

// BinaryCrossEntropy treats every output unit as an independent Bernoulli
// prediction:
//
//	C = -Σ [y ln(a+ε) + (1-y) ln(1-a+ε)]
type BinaryCrossEntropy struct{}

// Name implements Loss.
func (BinaryCrossEntropy) Name() string { return "binary-cross-entropy" }

// Fn implements Loss.
func (BinaryCrossEntropy) Fn(a, y *matrix.Matrix) float64 {
	mustSameShape("BinaryCrossEntropy", a, y)
	ad, yd := a.Data(), y.Data()
	var loss float64
	for i := range ad {
		loss += yd[i]*math.Log(ad[i]+Epsilon) + (1-yd[i])*math.Log(1-ad[i]+Epsilon)
	}
	return -loss
}

// OutputError implements Loss: [(a-y) / (a(1-a)+ε)] ⊙ act'(z).
func (BinaryCrossEntropy) OutputError(z, a, y *matrix.Matrix, act Activation) *matrix.Matrix {
	denom := matrix.Map(a, func(v float64, _, _ int) float64 {
		return v*(1-v) + Epsilon
	})
	return matrix.Must(matrix.Sub(a, y)).Div(denom).Mul(act.Derivative(z))
}

// CategoricalCrossEntropy is the multi-class log loss C = -Σ y ln(a+ε).
type CategoricalCrossEntropy struct{}

// Name implements Loss.
func (CategoricalCrossEntropy) Name() string { return "categorical-cross-entropy" }

// Fn implements Loss.
func (CategoricalCrossEntropy) Fn(a, y *matrix.Matrix) float64 {
	mustSameShape("CategoricalCrossEntropy", a, y)
	ad, yd := a.Data(), y.Data()
	var loss float64
	for i := range ad {
		loss += yd[i] * math.Log(ad[i]+Epsilon)
	}
	return -loss
}

// OutputError implements Loss: (-y / (a+ε)) ⊙ act'(z).
func (CategoricalCrossEntropy) OutputError(z, a, y *matrix.Matrix, act Activation) *matrix.Matrix {
	denom := matrix.Map(a, func(v float64, _, _ int) float64 {
		return v + Epsilon
	})
	return matrix.Map(y, func(v float64, _, _ int) float64 { return -v }).Div(denom).Mul(act.Derivative(z))
}

func mustSameShape(op string, a, y *matrix.Matrix) {
	if !a.SameShape(y) {
		panic(&matrix.DimensionError{Op: op, Left: a.Shape(), Right: y.Shape()})
	}
}
