// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the activation and loss strategies shared by the
// digitnet networks.
//
// # Overview
//
// This package contains:
//   - Activations: Sigmoid, ReLU, LeakyReLU, Softmax
//   - Losses: Quadratic, BinaryCrossEntropy, CategoricalCrossEntropy
//   - Sample: an (input, one-hot target) pair
//
// Strategies are stateless values. Networks store their names, so a saved
// network is restored with the same strategies:
//
//	act, err := nn.ActivationByName("relu")
//	loss, err := nn.LossByName("binary-cross-entropy")
//
// # Custom Strategies
//
// Any type implementing Activation or Loss can be passed to a network
// configuration. Custom strategies are not registered by name and must be
// supplied again when a network is loaded.
package nn
