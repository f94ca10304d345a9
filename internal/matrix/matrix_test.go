package matrix

import (
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func randMatrix(rng *rand.Rand, rows, cols int) *Matrix {
	return New(rows, cols).Randomize(rng)
}

func TestNew_Zeros(t *testing.T) {
	m := New(2, 3)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	for _, v := range m.Data() {
		assert.Zero(t, v)
	}
}

func TestCopy_NoAliasing(t *testing.T) {
	a := New(2, 2).Fill(1)
	b := Copy(a)
	b.Set(0, 0, 42)

	assert.Equal(t, 1.0, a.At(0, 0))
	assert.Equal(t, 42.0, b.At(0, 0))
}

func TestFromSlice(t *testing.T) {
	m, err := FromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 6.0, m.At(1, 2))
	assert.Equal(t, 4.0, m.At(1, 0))

	_, err = FromSlice([]float64{1, 2, 3}, 2, 2)
	assert.True(t, errors.Is(err, ErrBadShape))
}

func TestVectorFromSlice(t *testing.T) {
	v := VectorFromSlice([]float64{1, 2, 3})
	assert.Equal(t, Shape{Rows: 3, Cols: 1}, v.Shape())
	assert.Equal(t, []float64{1, 2, 3}, v.ToSlice())
}

func TestTranspose_Involution(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := randMatrix(rng, 3, 5)

	at := Transpose(a)
	assert.Equal(t, Shape{Rows: 5, Cols: 3}, at.Shape())
	assert.Equal(t, a.At(1, 4), at.At(4, 1))
	assert.True(t, Transpose(at).Equal(a))
}

func TestAdd_Elementwise(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	a := randMatrix(rng, 4, 3)
	b := randMatrix(rng, 4, 3)

	sum, err := Add(a, b)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, a.At(i, j)+b.At(i, j), sum.At(i, j))
		}
	}

	// Pure form leaves inputs untouched.
	a2 := Copy(a)
	_, _ = Sub(a, b)
	_, _ = Div(a, b)
	assert.True(t, a.Equal(a2))
}

func TestMul_MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := randMatrix(rng, 3, 4)
	b := randMatrix(rng, 4, 2)

	got, err := Mul(a, b)
	require.NoError(t, err)
	require.Equal(t, Shape{Rows: 3, Cols: 2}, got.Shape())

	var want mat.Dense
	want.Mul(mat.NewDense(3, 4, a.ToSlice()), mat.NewDense(4, 2, b.ToSlice()))
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, want.At(i, j), got.At(i, j), 1e-12)
		}
	}
}

func TestMul_Associative(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	a := randMatrix(rng, 2, 3)
	b := randMatrix(rng, 3, 4)
	c := randMatrix(rng, 4, 5)

	left := Must(Mul(Must(Mul(a, b)), c))
	right := Must(Mul(a, Must(Mul(b, c))))
	assert.True(t, left.EqualApprox(right, 1e-12))
}

func TestMul_DimensionMismatch(t *testing.T) {
	out, err := Mul(New(2, 3), New(2, 3))
	assert.Nil(t, out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	var de *DimensionError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Mul", de.Op)
	assert.Equal(t, Shape{Rows: 2, Cols: 3}, de.Right)
}

func TestInPlace_Chaining(t *testing.T) {
	m, err := FromSlice([]float64{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	o, err := FromSlice([]float64{1, 1, 1, 1}, 2, 2)
	require.NoError(t, err)

	got := m.Add(o).Scale(2).SubScalar(1).Mul(o).DivScalar(2)
	assert.Same(t, m, got)
	assert.Equal(t, []float64{1.5, 2.5, 3.5, 4.5}, m.ToSlice())
}

func TestInPlace_MismatchPanicsByDefault(t *testing.T) {
	a := New(2, 2)
	assert.PanicsWithError(t, "matrix: Add: dimension mismatch 2x2 vs 3x1", func() {
		a.Add(New(3, 1))
	})
}

func TestInPlace_MismatchLogAndContinue(t *testing.T) {
	prev := SetMismatchHandler(LogMismatches(slog.New(slog.NewTextHandler(io.Discard, nil))))
	defer SetMismatchHandler(prev)

	a := New(2, 2).Fill(3)
	got := a.Sub(New(1, 2))
	assert.Same(t, a, got)
	assert.Equal(t, []float64{3, 3, 3, 3}, a.ToSlice())
}

func TestMap(t *testing.T) {
	m := New(2, 3)
	m.Map(func(_ float64, r, c int) float64 { return float64(10*r + c) })
	assert.Equal(t, []float64{0, 1, 2, 10, 11, 12}, m.ToSlice())

	doubled := Map(m, func(v float64, _, _ int) float64 { return 2 * v })
	assert.Equal(t, 24.0, doubled.At(1, 2))
	assert.Equal(t, 12.0, m.At(1, 2))
}

func TestRegion(t *testing.T) {
	m := New(4, 5).Map(func(_ float64, r, c int) float64 { return float64(10*r + c) })

	reg := m.Region(1, 2, 3, 2) // x=1 (col), y=2 (row), w=3, h=2
	assert.Equal(t, Shape{Rows: 2, Cols: 3}, reg.Shape())
	assert.Equal(t, []float64{21, 22, 23, 31, 32, 33}, reg.ToSlice())

	reg.Set(0, 0, -1)
	assert.Equal(t, 21.0, m.At(2, 1))

	assert.Panics(t, func() { m.Region(3, 3, 3, 3) })
}

func TestMax_FirstOccurrenceWins(t *testing.T) {
	m, err := FromSlice([]float64{1, 7, 3, 7, 2, 0}, 2, 3)
	require.NoError(t, err)

	v, r, c := m.Max()
	assert.Equal(t, 7.0, v)
	assert.Equal(t, 0, r)
	assert.Equal(t, 1, c)
	assert.Equal(t, 1, m.ArgMax())
}

func TestRandomizeNormal_Moments(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	m := New(200, 100).RandomizeNormal(rng)

	n := float64(m.Len())
	mean := m.Sum() / n
	var variance float64
	for _, v := range m.Data() {
		variance += (v - mean) * (v - mean)
	}
	variance /= n

	assert.InDelta(t, 0, mean, 0.02)
	assert.InDelta(t, 1, variance, 0.05)
	for _, v := range m.Data() {
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	m, err := FromSlice([]float64{1.5, -2, 3, 4.25, 5, 6}, 3, 2)
	require.NoError(t, err)

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rows":3,"cols":2,"data":[[1.5,-2],[3,4.25],[5,6]]}`, string(b))

	var back Matrix
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equal(m))
}

func TestJSON_RejectsRaggedData(t *testing.T) {
	var m Matrix
	err := json.Unmarshal([]byte(`{"rows":2,"cols":2,"data":[[1,2],[3]]}`), &m)
	assert.True(t, errors.Is(err, ErrBadShape))
}
