// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the gradient descent helpers used to train digitnet
// networks.
//
// # Overview
//
// This package contains:
//   - SGD: mini-batch stochastic gradient descent with L2 weight decay and
//     optional momentum
//   - GradientDescent: the plain param -= lr·grad step
//   - Shuffle and MiniBatches: epoch bookkeeping helpers
//
// # Basic Usage
//
//	sgd := optim.NewSGD(optim.SGDConfig{
//	    LR:             0.03,
//	    Regularization: 1.0,
//	    TrainSize:      len(train),
//	})
//
//	for epoch := range epochs {
//	    optim.Shuffle(rng, train)
//	    for _, batch := range optim.MiniBatches(train, 10) {
//	        // accumulate gradients over batch, then
//	        sgd.StepWeights(w, gradW, len(batch))
//	        sgd.StepBias(b, gradB, len(batch))
//	    }
//	}
package optim
