package dataset

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/nn"
)

// Standardization returns the per-feature mean and population standard
// deviation of the sample inputs.
func Standardization(samples []nn.Sample) (mean, std *matrix.Matrix, err error) {
	if len(samples) == 0 {
		return nil, nil, ErrEmpty
	}
	first := samples[0].Input
	if err := sameInputShape(samples, first.Shape()); err != nil {
		return nil, nil, err
	}
	n := float64(len(samples))

	mean = matrix.New(first.Rows(), first.Cols())
	for _, s := range samples {
		mean.Add(s.Input)
	}
	mean.DivScalar(n)

	std = matrix.New(first.Rows(), first.Cols())
	for _, s := range samples {
		d := matrix.Must(matrix.Sub(s.Input, mean))
		std.Add(d.Mul(d))
	}
	std.Map(func(v float64, _, _ int) float64 {
		return math.Sqrt(v / n)
	})

	return mean, std, nil
}

// ApplyStandardization replaces every sample input by
// (input - mean) / (std + ε) in place.
func ApplyStandardization(samples []nn.Sample, mean, std *matrix.Matrix) error {
	if !mean.SameShape(std) {
		return errors.Wrapf(ErrImageSize, "mean %s, std %s", mean.Shape(), std.Shape())
	}
	if err := sameInputShape(samples, mean.Shape()); err != nil {
		return err
	}
	denom := matrix.Map(std, func(v float64, _, _ int) float64 {
		return v + nn.Epsilon
	})
	for _, s := range samples {
		s.Input.Sub(mean).Div(denom)
	}
	return nil
}

func sameInputShape(samples []nn.Sample, want matrix.Shape) error {
	for i, s := range samples {
		if s.Input.Shape() != want {
			return errors.Wrapf(ErrImageSize, "sample %d is %s, want %s", i, s.Input.Shape(), want)
		}
	}
	return nil
}
