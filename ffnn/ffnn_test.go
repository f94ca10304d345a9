// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ffnn_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/born-ml/digitnet/ffnn"
	"github.com/born-ml/digitnet/matrix"
	"github.com/born-ml/digitnet/nn"
)

// TestPublicAPI trains a tiny network through the public packages only.
func TestPublicAPI(t *testing.T) {
	net, err := ffnn.New([]int{2, 4, 2}, ffnn.Config{
		Hidden: nn.Sigmoid{},
		Output: nn.Softmax{},
		Loss:   nn.CategoricalCrossEntropy{},
		Rand:   rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	samples := make([]nn.Sample, 4)
	for i := range samples {
		target, err := nn.OneHot(i%2, 2)
		if err != nil {
			t.Fatalf("OneHot failed: %v", err)
		}
		samples[i] = nn.Sample{
			Input:  matrix.VectorFromSlice([]float64{float64(i % 2), float64(1 - i%2)}),
			Target: target,
		}
	}

	stats, err := net.Train(context.Background(), samples, ffnn.TrainOptions{
		Epochs:        2,
		MiniBatchSize: 2,
		LearningRate:  0.5,
	}, samples)
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if len(stats) != 2 {
		t.Errorf("len(stats) = %d, want 2", len(stats))
	}

	out, err := net.Predict(samples[0].Input)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("len(Predict) = %d, want 2", len(out))
	}
}

// TestSnapshotAlias verifies FromSnapshot accepts the snapshot of a network.
func TestSnapshotAlias(t *testing.T) {
	net, err := ffnn.New([]int{3, 2}, ffnn.Config{Rand: rand.New(rand.NewSource(2))})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	var s *ffnn.Snapshot = net.Snapshot()
	if _, err := ffnn.FromSnapshot(s, ffnn.Config{}); err != nil {
		t.Errorf("FromSnapshot failed: %v", err)
	}
}
