package nn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/digitnet/internal/matrix"
)

// ErrLabelOutOfRange reports a class label outside [0, classes).
var ErrLabelOutOfRange = errors.New("nn: label out of range")

// Sample is one training or evaluation pair.
//
// Input is a column vector for the FFNN and a 2-D grid for the CNN. Target is
// a one-hot column vector whose single 1 marks the class label.
type Sample struct {
	Input  *matrix.Matrix
	Target *matrix.Matrix
}

// Label returns the index of the largest target entry.
func (s Sample) Label() int {
	return s.Target.ArgMax()
}

// OneHot returns a classes x 1 column vector with a 1 at label.
func OneHot(label, classes int) (*matrix.Matrix, error) {
	if label < 0 || label >= classes {
		return nil, errors.Wrapf(ErrLabelOutOfRange, "label %d, classes %d", label, classes)
	}
	v := matrix.New(classes, 1)
	v.Set(label, 0, 1)
	return v, nil
}

// ArgMax returns the index of the first maximum of xs, or -1 when xs is empty.
func ArgMax(xs []float64) int {
	best := -1
	for i, x := range xs {
		if best < 0 || x > xs[best] {
			best = i
		}
	}
	return best
}
