package matrix

import (
	"math"
	"math/rand"
)

// RandomizeNormal fills m with standard normal samples (mean 0, variance 1)
// using the Box–Muller transform and returns m.
func (m *Matrix) RandomizeNormal(rng *rand.Rand) *Matrix {
	for i := range m.data {
		m.data[i] = NormFloat64(rng)
	}
	return m
}

// Randomize fills m with uniform samples from [-1, 1) and returns m.
func (m *Matrix) Randomize(rng *rand.Rand) *Matrix {
	for i := range m.data {
		m.data[i] = rng.Float64()*2 - 1
	}
	return m
}

// NormFloat64 draws one standard normal sample with the Box–Muller transform.
func NormFloat64(rng *rand.Rand) float64 {
	var u, v float64
	for u == 0 {
		u = rng.Float64()
	}
	for v == 0 {
		v = rng.Float64()
	}
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}
