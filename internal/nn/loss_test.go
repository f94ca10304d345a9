package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/digitnet/internal/matrix"
)

func TestQuadratic_Fn(t *testing.T) {
	a := matrix.VectorFromSlice([]float64{0.5, 0.25})
	y := matrix.VectorFromSlice([]float64{1, 0})

	assert.InDelta(t, 0.5*0.25+0.5*0.0625, Quadratic{}.Fn(a, y), 1e-15)
}

func TestCrossEntropy_Fn(t *testing.T) {
	a := matrix.VectorFromSlice([]float64{0.7, 0.2, 0.1})
	y := matrix.VectorFromSlice([]float64{1, 0, 0})

	assert.InDelta(t, -math.Log(0.7), CategoricalCrossEntropy{}.Fn(a, y), 1e-12)

	want := -(math.Log(0.7) + math.Log(0.8) + math.Log(0.9))
	assert.InDelta(t, want, BinaryCrossEntropy{}.Fn(a, y), 1e-12)
}

func TestCrossEntropy_SaturatedIsFinite(t *testing.T) {
	a := matrix.VectorFromSlice([]float64{0, 1})
	y := matrix.VectorFromSlice([]float64{1, 0})

	ce := CategoricalCrossEntropy{}.Fn(a, y)
	bce := BinaryCrossEntropy{}.Fn(a, y)
	assert.False(t, math.IsInf(ce, 0) || math.IsNaN(ce))
	assert.False(t, math.IsInf(bce, 0) || math.IsNaN(bce))

	z := matrix.VectorFromSlice([]float64{-800, 800})
	delta := BinaryCrossEntropy{}.OutputError(z, Sigmoid{}.Fn(z), y, Sigmoid{})
	for _, v := range delta.Data() {
		assert.False(t, math.IsNaN(v))
	}
}

// outputErrorOracle differentiates C(act(z), y) with respect to z numerically.
func outputErrorOracle(l Loss, act Activation, z, y *matrix.Matrix) []float64 {
	f := func(x []float64) float64 {
		zz := matrix.VectorFromSlice(x)
		return l.Fn(act.Fn(zz), y)
	}
	return fd.Gradient(nil, f, z.ToSlice(), &fd.Settings{Formula: fd.Central, Step: 1e-6})
}

func TestOutputError_ElementwiseActivations(t *testing.T) {
	z := matrix.VectorFromSlice([]float64{0.3, -1.2, 2.1})
	y := matrix.VectorFromSlice([]float64{0, 1, 0})

	tests := []struct {
		loss Loss
		act  Activation
	}{
		{Quadratic{}, Sigmoid{}},
		{Quadratic{}, LeakyReLU{}},
		{BinaryCrossEntropy{}, Sigmoid{}},
	}
	for _, tt := range tests {
		t.Run(tt.loss.Name()+"/"+tt.act.Name(), func(t *testing.T) {
			got := tt.loss.OutputError(z, tt.act.Fn(z), y, tt.act)
			want := outputErrorOracle(tt.loss, tt.act, z, y)
			require.Equal(t, len(want), got.Len())
			for i, w := range want {
				assert.InDelta(t, w, got.Data()[i], 1e-6)
			}
		})
	}
}

func TestBinaryCrossEntropy_SigmoidReducesToDifference(t *testing.T) {
	z := matrix.VectorFromSlice([]float64{0.4, -0.9})
	y := matrix.VectorFromSlice([]float64{1, 0})
	a := Sigmoid{}.Fn(z)

	got := BinaryCrossEntropy{}.OutputError(z, a, y, Sigmoid{})
	want := matrix.Must(matrix.Sub(a, y))
	assert.True(t, got.EqualApprox(want, 1e-12))
}

func TestCategoricalCrossEntropy_SoftmaxUsesGenericComposition(t *testing.T) {
	z := matrix.VectorFromSlice([]float64{1, 2, 3})
	y := matrix.VectorFromSlice([]float64{0, 1, 0})
	a := Softmax{}.Fn(z)

	got := CategoricalCrossEntropy{}.OutputError(z, a, y, Softmax{})

	// -y/a ⊙ a(1-a) = -y(1-a): zero off the label, no a-y shortcut.
	assert.Equal(t, 0.0, got.At(0, 0))
	assert.Equal(t, 0.0, got.At(2, 0))
	assert.InDelta(t, -(1 - a.At(1, 0)), got.At(1, 0), 1e-12)
}

func TestOneHot(t *testing.T) {
	v, err := OneHot(3, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 1, 0}, v.ToSlice())
	assert.Equal(t, 3, Sample{Target: v}.Label())

	_, err = OneHot(5, 5)
	assert.ErrorIs(t, err, ErrLabelOutOfRange)
}

func TestArgMax(t *testing.T) {
	assert.Equal(t, -1, ArgMax(nil))
	assert.Equal(t, 1, ArgMax([]float64{0.1, 0.6, 0.6, 0.2}))
}
