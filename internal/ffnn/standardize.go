package ffnn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/nn"
)

// SetStandardization stores per-feature training mean and standard deviation
// so that inputs can be standardized consistently after a reload. Both must be
// sizes[0] x 1. Passing two nils clears the statistics.
func (n *Network) SetStandardization(mean, std *matrix.Matrix) error {
	if mean == nil && std == nil {
		n.trainMean, n.trainSTD = nil, nil
		return nil
	}
	want := matrix.Shape{Rows: n.sizes[0], Cols: 1}
	if mean == nil || std == nil || mean.Shape() != want || std.Shape() != want {
		return errors.Wrapf(ErrStatsShape, "want %s", want)
	}
	n.trainMean, n.trainSTD = mean.Clone(), std.Clone()
	return nil
}

// Standardization returns copies of the stored statistics, or nils.
func (n *Network) Standardization() (mean, std *matrix.Matrix) {
	if n.trainMean == nil {
		return nil, nil
	}
	return n.trainMean.Clone(), n.trainSTD.Clone()
}

// Standardize returns (input - mean) / (std + ε) using the stored statistics.
// Without statistics it returns an unchanged copy of input.
func (n *Network) Standardize(input *matrix.Matrix) (*matrix.Matrix, error) {
	if err := n.checkInput(input); err != nil {
		return nil, err
	}
	out := input.Clone()
	if n.trainMean == nil {
		return out, nil
	}
	return out.Sub(n.trainMean).Div(matrix.Map(n.trainSTD, func(v float64, _, _ int) float64 {
		return v + nn.Epsilon
	})), nil
}
