// Package optim implements the training-loop building blocks shared by the
// digitnet engines:
//   - Shuffle: in-place Fisher–Yates shuffle driven by an injected source
//   - MiniBatches: contiguous fixed-size partitioning of a shuffled set
//   - SGD: mini-batch gradient step with L2 weight decay and optional momentum
//   - GradientDescent: plain per-sample parameter update
//
// Example usage:
//
//	sgd := optim.NewSGD(optim.SGDConfig{
//	    LR:             0.5,
//	    Regularization: 1.0,
//	    TrainSize:      len(train),
//	})
//
//	for epoch := range epochs {
//	    optim.Shuffle(rng, train)
//	    for _, batch := range optim.MiniBatches(train, 10) {
//	        wGrad, bGrad := accumulate(batch)
//	        sgd.StepWeights(w, wGrad, len(batch))
//	        sgd.StepBias(b, bGrad, len(batch))
//	    }
//	}
package optim

import (
	"math/rand"

	"github.com/pkg/errors"
)

// ErrBatchSize reports a mini-batch size that is not in [1, len(data)].
var ErrBatchSize = errors.New("optim: invalid mini-batch size")

// Shuffle permutes s in place with the Fisher–Yates algorithm.
func Shuffle[T any](rng *rand.Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// MiniBatches partitions s into contiguous batches of exactly size elements.
//
// A trailing remainder shorter than size is dropped. The returned batches are
// views into s and are invalidated by the next Shuffle.
func MiniBatches[T any](s []T, size int) [][]T {
	if size <= 0 {
		return nil
	}
	batches := make([][]T, 0, len(s)/size)
	for j := 0; j+size <= len(s); j += size {
		batches = append(batches, s[j:j+size:j+size])
	}
	return batches
}

// ValidateBatchSize checks that size yields at least one full mini-batch of n
// samples.
func ValidateBatchSize(size, n int) error {
	if size <= 0 || size > n {
		return errors.Wrapf(ErrBatchSize, "size %d for %d samples", size, n)
	}
	return nil
}
