package cnn

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/nn"
	"github.com/born-ml/digitnet/internal/optim"
)

// Softmax is the dense output layer: it flattens its input channels into a
// 1 x inputLen row, computes z = x·W + b and returns softmax(z) as a
// 1 x classes row of probabilities.
type Softmax struct {
	weights *matrix.Matrix // inputLen x classes
	biases  *matrix.Matrix // 1 x classes

	lastInput *matrix.Matrix // flattened, 1 x inputLen
	lastOut   *matrix.Matrix // probabilities, 1 x classes
	lastShape matrix.Shape   // per-channel shape
	lastCount int            // channel count
}

// NewSoftmax creates a layer with N(0,1) / inputLen weights and zero biases.
func NewSoftmax(inputLen, classes int, rng *rand.Rand) *Softmax {
	return &Softmax{
		weights: matrix.New(inputLen, classes).RandomizeNormal(rng).DivScalar(float64(inputLen)),
		biases:  matrix.New(1, classes),
	}
}

// Weights returns the live weight matrix.
func (s *Softmax) Weights() *matrix.Matrix { return s.weights }

// Biases returns the live bias row.
func (s *Softmax) Biases() *matrix.Matrix { return s.biases }

// InputLen returns the flattened input length.
func (s *Softmax) InputLen() int { return s.weights.Rows() }

// Classes returns the number of output classes.
func (s *Softmax) Classes() int { return s.weights.Cols() }

// Forward flattens channels channel by channel, then row by row, and returns
// the output probabilities. The flattened input, the output and the channel
// shape are cached for Backprop.
func (s *Softmax) Forward(channels []*matrix.Matrix) (*matrix.Matrix, error) {
	if len(channels) == 0 {
		return nil, errors.Wrap(ErrInputShape, "no channels")
	}
	shape := channels[0].Shape()
	if n := len(channels) * shape.Rows * shape.Cols; n != s.InputLen() {
		return nil, errors.Wrapf(ErrInputShape, "%d inputs, layer expects %d", n, s.InputLen())
	}

	flat := make([]float64, 0, s.InputLen())
	for i, ch := range channels {
		if ch.Shape() != shape {
			return nil, errors.Wrapf(ErrInputShape, "channel %d is %s, want %s", i, ch.Shape(), shape)
		}
		flat = append(flat, ch.Data()...)
	}
	input := matrix.Must(matrix.FromSlice(flat, 1, len(flat)))

	z := matrix.Must(matrix.Mul(input, s.weights)).Add(s.biases)
	out := matrix.Transpose(nn.Softmax{}.Fn(matrix.Transpose(z)))

	s.lastInput, s.lastOut = input, out
	s.lastShape, s.lastCount = shape, len(channels)
	return out, nil
}

// Backprop takes the loss gradient with respect to the output, whose only
// non-zero entry marks the correct class c, and returns the gradient with
// respect to the input channels. W and b are then updated by gradient
// descent.
//
// The softmax Jacobian column of class c is used analytically:
// ∂a_c/∂z_i = -a_c·a_i for i ≠ c and a_c(1-a_c) for i = c.
func (s *Softmax) Backprop(dLdOut *matrix.Matrix, lr float64) ([]*matrix.Matrix, error) {
	if s.lastOut == nil {
		return nil, ErrNoForward
	}
	if !dLdOut.SameShape(s.lastOut) {
		return nil, errors.Wrapf(ErrInputShape, "gradient %s, output %s", dLdOut.Shape(), s.lastOut.Shape())
	}

	correct := 0
	for i, g := range dLdOut.Data() {
		if g != 0 {
			correct = i
			break
		}
	}
	gradient := dLdOut.At(0, correct)

	a := s.lastOut.Data()
	ac := a[correct]
	dLdZ := matrix.Map(s.lastOut, func(ai float64, _, i int) float64 {
		if i == correct {
			return ac * (1 - ac) * gradient
		}
		return -ac * ai * gradient
	})

	dLdW := matrix.Must(matrix.Mul(matrix.Transpose(s.lastInput), dLdZ))
	dLdInput := matrix.Must(matrix.Mul(dLdZ, matrix.Transpose(s.weights)))

	optim.GradientDescent(s.weights, dLdW, lr)
	optim.GradientDescent(s.biases, dLdZ, lr)

	rows, cols := s.lastShape.Rows, s.lastShape.Cols
	flat := dLdInput.Data()
	channels := make([]*matrix.Matrix, s.lastCount)
	for i := range channels {
		channels[i] = matrix.Must(matrix.FromSlice(flat[i*rows*cols:(i+1)*rows*cols], rows, cols))
	}
	return channels, nil
}
