// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cnn provides a small convolutional network for digit images.
//
// # Overview
//
// The topology is fixed:
//
//	image (28x28) → Conv(8 filters, 3x3) → MaxPool(2) → Dense+Softmax(10)
//
// Filter count, filter size, pool size, input size and class count can be
// changed through Config. Training is per-sample stochastic gradient descent
// on the cross-entropy loss.
//
// # Basic Usage
//
//	net, err := cnn.New(cnn.Config{})
//
//	stats, err := net.Train(ctx, train, 3, 0.005, test)
//
//	res, err := net.Forward(image, label)
//	fmt.Println(res.Prediction, res.Probs[res.Prediction])
//
// A Network caches activations between Forward and its backward pass and is
// not safe for concurrent use.
package cnn
