package dataset

import (
	"math/rand"

	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/nn"
)

// XOR returns the four XOR samples as 2x1 inputs with two-class targets:
// equal bits map to class 0, different bits to class 1.
func XOR() []nn.Sample {
	pairs := []struct {
		a, b  float64
		label int
	}{
		{0, 0, 0},
		{0, 1, 1},
		{1, 0, 1},
		{1, 1, 0},
	}
	samples := make([]nn.Sample, len(pairs))
	for i, p := range pairs {
		target, _ := nn.OneHot(p.label, 2)
		samples[i] = nn.Sample{
			Input:  matrix.VectorFromSlice([]float64{p.a, p.b}),
			Target: target,
		}
	}
	return samples
}

// Synthetic generates n rows x cols images of horizontal bars whose vertical
// position encodes the digit, with uniform background noise. Labels cycle
// through 0-9. It stands in for MNIST when no data files are available.
//
// rows must be at least 9.
func Synthetic(n, rows, cols int, rng *rand.Rand) *Raw {
	const (
		bar       = 8
		intensity = 204 // 0.8 after normalization
		noise     = 32
	)

	raw := &Raw{
		Images: make([][]byte, n),
		Labels: make([]byte, n),
		Rows:   rows,
		Cols:   cols,
	}
	left, right := cols/5, cols-cols/5
	for i := range raw.Images {
		digit := i % NumClasses
		img := make([]byte, rows*cols)
		for j := range img {
			img[j] = byte(rng.Intn(noise))
		}

		start := digit * (rows - bar) / (NumClasses - 1)
		for r := start; r < start+bar && r < rows; r++ {
			for c := left; c < right; c++ {
				img[r*cols+c] = intensity + byte(rng.Intn(noise))
			}
		}

		raw.Images[i] = img
		raw.Labels[i] = byte(digit)
	}
	return raw
}
