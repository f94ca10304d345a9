package cnn

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/optim"
	"github.com/born-ml/digitnet/internal/parallel"
)

// Conv is a single-channel convolution layer with square filters, stride 1
// and no padding. An h x w image produces one (h-f+1) x (w-f+1) channel per
// filter.
//
// Filters are applied as cross-correlation, without flipping. The layer is
// the first of the network, so Backprop produces no input gradient.
type Conv struct {
	numFilters int
	filterSize int
	filters    []*matrix.Matrix

	lastInput *matrix.Matrix
	parallel  parallel.Config
}

// NewConv creates numFilters filterSize x filterSize filters drawn from
// N(0,1) / filterSize².
func NewConv(numFilters, filterSize int, rng *rand.Rand) *Conv {
	c := &Conv{
		numFilters: numFilters,
		filterSize: filterSize,
		filters:    make([]*matrix.Matrix, numFilters),
	}
	for i := range c.filters {
		c.filters[i] = matrix.New(filterSize, filterSize).
			RandomizeNormal(rng).
			DivScalar(float64(filterSize * filterSize))
	}
	return c
}

// NumFilters returns the number of output channels.
func (c *Conv) NumFilters() int { return c.numFilters }

// FilterSize returns the filter side length.
func (c *Conv) FilterSize() int { return c.filterSize }

// Filters returns the live filter matrices.
func (c *Conv) Filters() []*matrix.Matrix { return c.filters }

// Forward correlates every filter with every valid window of image and caches
// image for Backprop.
func (c *Conv) Forward(image *matrix.Matrix) ([]*matrix.Matrix, error) {
	f := c.filterSize
	if image.Rows() < f || image.Cols() < f {
		return nil, errors.Wrapf(ErrImageTooSmall, "image %s, filter %dx%d", image.Shape(), f, f)
	}
	c.lastInput = image

	outRows, outCols := image.Rows()-f+1, image.Cols()-f+1
	outputs := make([]*matrix.Matrix, c.numFilters)
	for i := range outputs {
		outputs[i] = matrix.New(outRows, outCols)
	}

	parallel.ForBatch(c.numFilters, outRows, func(i, y int) {
		filter, out := c.filters[i], outputs[i]
		for x := 0; x < outCols; x++ {
			var sum float64
			for r := 0; r < f; r++ {
				for col := 0; col < f; col++ {
					sum += image.At(y+r, x+col) * filter.At(r, col)
				}
			}
			out.Set(y, x, sum)
		}
	}, c.parallel)

	return outputs, nil
}

// Backprop accumulates the filter gradients Σ dLdOut[y,x]·window(y,x) over
// the cached input and applies filter -= lr·gradient.
func (c *Conv) Backprop(dLdOut []*matrix.Matrix, lr float64) error {
	if c.lastInput == nil {
		return ErrNoForward
	}
	if len(dLdOut) != c.numFilters {
		return errors.Wrapf(ErrInputShape, "%d gradient channels for %d filters", len(dLdOut), c.numFilters)
	}
	f := c.filterSize
	outRows, outCols := c.lastInput.Rows()-f+1, c.lastInput.Cols()-f+1
	for i, g := range dLdOut {
		if g.Rows() != outRows || g.Cols() != outCols {
			return errors.Wrapf(ErrInputShape, "gradient %d is %s, want %dx%d", i, g.Shape(), outRows, outCols)
		}
	}

	parallel.For(c.numFilters, func(i int) {
		grad := matrix.New(f, f)
		for y := 0; y < outRows; y++ {
			for x := 0; x < outCols; x++ {
				d := dLdOut[i].At(y, x)
				grad.Add(c.lastInput.Region(x, y, f, f).Scale(d))
			}
		}
		optim.GradientDescent(c.filters[i], grad, lr)
	}, c.parallel)

	return nil
}
