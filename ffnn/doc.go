// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ffnn provides a fully connected feed-forward network trained by
// mini-batch stochastic gradient descent.
//
// # Overview
//
// A network is described by its layer widths, e.g. []int{784, 30, 10}.
// Hidden layers share one activation, the output layer has its own and a
// loss drives the output error. Weights decay with L2 regularization.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/digitnet/ffnn"
//	    "github.com/born-ml/digitnet/nn"
//	)
//
//	func main() {
//	    net, err := ffnn.New([]int{784, 30, 10}, ffnn.Config{
//	        Hidden: nn.ReLU{},
//	        Output: nn.Softmax{},
//	        Loss:   nn.BinaryCrossEntropy{},
//	    })
//
//	    stats, err := net.Train(ctx, train, ffnn.TrainOptions{
//	        Epochs:         30,
//	        MiniBatchSize:  10,
//	        LearningRate:   0.03,
//	        Regularization: 1.0,
//	    }, test)
//
//	    class, err := net.Classify(image)
//	}
//
// # Persistence
//
// Save writes a checksummed JSON snapshot; Load restores it together with
// the activation and loss names it was trained with:
//
//	_, err = net.Save("model.json", nil)
//	net, header, err := ffnn.Load("model.json", ffnn.Config{})
package ffnn
