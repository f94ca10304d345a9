package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/digitnet/internal/matrix"
)

func TestSigmoid_AtZero(t *testing.T) {
	a := Sigmoid{}.Fn(matrix.VectorFromSlice([]float64{0}))
	assert.Equal(t, 0.5, a.At(0, 0))

	d := Sigmoid{}.Derivative(matrix.VectorFromSlice([]float64{0}))
	assert.Equal(t, 0.25, d.At(0, 0))
}

func TestReLU_Derivative(t *testing.T) {
	z := matrix.VectorFromSlice([]float64{-3, -0.5, 0.5, 4})

	assert.Equal(t, []float64{0, 0, 0.5, 4}, ReLU{}.Fn(z).ToSlice())
	assert.Equal(t, []float64{0, 0, 1, 1}, ReLU{}.Derivative(z).ToSlice())
}

func TestLeakyReLU(t *testing.T) {
	z := matrix.VectorFromSlice([]float64{-2, 3})

	assert.Equal(t, []float64{-0.02, 3}, LeakyReLU{}.Fn(z).ToSlice())
	assert.Equal(t, []float64{LeakySlope, 1}, LeakyReLU{}.Derivative(z).ToSlice())
}

func TestActivations_DoNotMutateInput(t *testing.T) {
	z := matrix.VectorFromSlice([]float64{-1, 0.25, 2})
	orig := z.Clone()

	for _, act := range []Activation{Sigmoid{}, ReLU{}, LeakyReLU{}, Softmax{}} {
		act.Fn(z)
		act.Derivative(z)
		require.True(t, z.Equal(orig), act.Name())
	}
}

func TestSoftmax_SumsToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tests := []struct {
		name string
		z    []float64
	}{
		{"small", []float64{0.1, -0.2, 0.3}},
		{"large positive", []float64{1000, 999, 998, -1000}},
		{"large negative", []float64{-1000, -1001, -1002}},
		{"single", []float64{42}},
	}
	random := make([]float64, 10)
	for i := range random {
		random[i] = rng.NormFloat64() * 50
	}
	tests = append(tests, struct {
		name string
		z    []float64
	}{"random", random})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Softmax{}.Fn(matrix.VectorFromSlice(tt.z))
			assert.InDelta(t, 1.0, a.Sum(), 1e-9)
			for _, v := range a.Data() {
				assert.False(t, math.IsNaN(v))
				assert.GreaterOrEqual(t, v, 0.0)
			}
		})
	}
}

func TestSoftmax_PerColumn(t *testing.T) {
	z, err := matrix.FromSlice([]float64{1, 5, 2, 5, 3, 5}, 3, 2)
	require.NoError(t, err)

	a := Softmax{}.Fn(z)
	for c := 0; c < 2; c++ {
		var sum float64
		for r := 0; r < 3; r++ {
			sum += a.At(r, c)
		}
		assert.InDelta(t, 1.0, sum, 1e-12)
	}
	assert.InDelta(t, 1.0/3, a.At(0, 1), 1e-12)
}

func TestElementwiseDerivatives_MatchFiniteDifferences(t *testing.T) {
	points := []float64{-2.5, -0.7, 0.3, 1.9}
	settings := &fd.Settings{Formula: fd.Central, Step: 1e-6}

	for _, act := range []Activation{Sigmoid{}, ReLU{}, LeakyReLU{}} {
		for _, x := range points {
			f := func(v float64) float64 {
				return act.Fn(matrix.VectorFromSlice([]float64{v})).At(0, 0)
			}
			want := fd.Derivative(f, x, settings)
			got := act.Derivative(matrix.VectorFromSlice([]float64{x})).At(0, 0)
			assert.InDelta(t, want, got, 1e-6, "%s at %v", act.Name(), x)
		}
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range ActivationNames() {
		act, err := ActivationByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, act.Name())
	}
	for _, name := range LossNames() {
		l, err := LossByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, l.Name())
	}

	_, err := ActivationByName("tanh")
	assert.ErrorIs(t, err, ErrUnknownActivation)
	_, err = LossByName("hinge")
	assert.ErrorIs(t, err, ErrUnknownLoss)
}
