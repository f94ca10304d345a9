// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"math/rand"

	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/optim"
)

// SGD is mini-batch stochastic gradient descent with L2 weight decay.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD.
type SGDConfig = optim.SGDConfig

// ErrBatchSize reports a mini-batch size outside [1, n].
var ErrBatchSize = optim.ErrBatchSize

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	sgd := optim.NewSGD(optim.SGDConfig{
//	    LR:             0.5,
//	    Regularization: 5.0,
//	    TrainSize:      50000,
//	    Momentum:       0.9,
//	})
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}

// GradientDescent applies param -= lr·grad in place.
func GradientDescent(param, grad *matrix.Matrix, lr float64) {
	optim.GradientDescent(param, grad, lr)
}

// Shuffle permutes s in place using rng.
func Shuffle[T any](rng *rand.Rand, s []T) {
	optim.Shuffle(rng, s)
}

// MiniBatches splits s into contiguous batches of size. A trailing remainder
// smaller than size is dropped.
func MiniBatches[T any](s []T, size int) [][]T {
	return optim.MiniBatches(s, size)
}

// ValidateBatchSize checks that size is in [1, n].
func ValidateBatchSize(size, n int) error {
	return optim.ValidateBatchSize(size, n)
}
