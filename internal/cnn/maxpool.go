package cnn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/digitnet/internal/matrix"
)

// MaxPool downsamples each channel by taking the maximum of non-overlapping
// poolSize x poolSize blocks. Trailing rows and columns that do not fill a
// block are ignored.
type MaxPool struct {
	poolSize  int
	lastInput []*matrix.Matrix
}

// NewMaxPool creates a max-pooling layer.
func NewMaxPool(poolSize int) *MaxPool {
	return &MaxPool{poolSize: poolSize}
}

// PoolSize returns the block side length.
func (p *MaxPool) PoolSize() int { return p.poolSize }

// Forward pools every channel and caches the channels for Backprop.
func (p *MaxPool) Forward(channels []*matrix.Matrix) []*matrix.Matrix {
	p.lastInput = channels
	s := p.poolSize

	outputs := make([]*matrix.Matrix, len(channels))
	for i, ch := range channels {
		out := matrix.New(ch.Rows()/s, ch.Cols()/s)
		for y := 0; y < out.Rows(); y++ {
			for x := 0; x < out.Cols(); x++ {
				v, _, _ := ch.Region(x*s, y*s, s, s).Max()
				out.Set(y, x, v)
			}
		}
		outputs[i] = out
	}
	return outputs
}

// Backprop routes each pooled gradient to every input position holding its
// block's maximum. Ties all receive the full gradient; other positions get
// zero.
func (p *MaxPool) Backprop(dLdOut []*matrix.Matrix) ([]*matrix.Matrix, error) {
	if p.lastInput == nil {
		return nil, ErrNoForward
	}
	if len(dLdOut) != len(p.lastInput) {
		return nil, errors.Wrapf(ErrInputShape, "%d gradient channels for %d inputs", len(dLdOut), len(p.lastInput))
	}
	s := p.poolSize

	dLdInput := make([]*matrix.Matrix, len(p.lastInput))
	for i, ch := range p.lastInput {
		outRows, outCols := ch.Rows()/s, ch.Cols()/s
		if dLdOut[i].Rows() != outRows || dLdOut[i].Cols() != outCols {
			return nil, errors.Wrapf(ErrInputShape, "gradient %d is %s, want %dx%d", i, dLdOut[i].Shape(), outRows, outCols)
		}

		grad := matrix.New(ch.Rows(), ch.Cols())
		for y := 0; y < outRows; y++ {
			for x := 0; x < outCols; x++ {
				region := ch.Region(x*s, y*s, s, s)
				peak, _, _ := region.Max()
				for r := 0; r < s; r++ {
					for c := 0; c < s; c++ {
						if region.At(r, c) == peak {
							grad.Set(y*s+r, x*s+c, dLdOut[i].At(y, x))
						}
					}
				}
			}
		}
		dLdInput[i] = grad
	}
	return dLdInput, nil
}
