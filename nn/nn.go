// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/nn"
)

// Activation is an element-wise (or, for Softmax, column-wise) transfer
// function.
type Activation = nn.Activation

// Loss is a cost function together with its output-layer error.
type Loss = nn.Loss

// Sample is one training or evaluation pair.
type Sample = nn.Sample

// Activations

// Sigmoid is the logistic activation.
type Sigmoid = nn.Sigmoid

// ReLU is the rectified linear unit.
type ReLU = nn.ReLU

// LeakyReLU scales negative inputs by LeakySlope.
type LeakyReLU = nn.LeakyReLU

// Softmax normalizes each column into a probability distribution.
type Softmax = nn.Softmax

// LeakySlope is the negative-side slope of LeakyReLU.
const LeakySlope = nn.LeakySlope

// Losses

// Quadratic is the sum-of-squares loss Σ 0.5(a-y)².
type Quadratic = nn.Quadratic

// BinaryCrossEntropy treats every output as an independent Bernoulli variable.
type BinaryCrossEntropy = nn.BinaryCrossEntropy

// CategoricalCrossEntropy is the multi-class cross-entropy loss.
type CategoricalCrossEntropy = nn.CategoricalCrossEntropy

// Epsilon guards logarithms and divisions against zero.
const Epsilon = nn.Epsilon

// Errors.
var (
	ErrUnknownActivation = nn.ErrUnknownActivation
	ErrUnknownLoss       = nn.ErrUnknownLoss
	ErrLabelOutOfRange   = nn.ErrLabelOutOfRange
)

// ActivationByName returns the activation registered under name.
func ActivationByName(name string) (Activation, error) {
	return nn.ActivationByName(name)
}

// LossByName returns the loss registered under name.
func LossByName(name string) (Loss, error) {
	return nn.LossByName(name)
}

// ActivationNames lists the registered activation names.
func ActivationNames() []string { return nn.ActivationNames() }

// LossNames lists the registered loss names.
func LossNames() []string { return nn.LossNames() }

// OneHot returns a classes x 1 column vector with a 1 at label.
//
// Example:
//
//	target, err := nn.OneHot(7, 10)
//	sample := nn.Sample{Input: pixels, Target: target}
func OneHot(label, classes int) (*matrix.Matrix, error) {
	return nn.OneHot(label, classes)
}

// ArgMax returns the index of the largest value in xs.
func ArgMax(xs []float64) int { return nn.ArgMax(xs) }
