// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/born-ml/digitnet/nn"
)

// TestStrategyInterfaces verifies that the strategy types implement their
// interfaces.
func TestStrategyInterfaces(_ *testing.T) {
	var _ nn.Activation = nn.Sigmoid{}
	var _ nn.Activation = nn.ReLU{}
	var _ nn.Activation = nn.LeakyReLU{}
	var _ nn.Activation = nn.Softmax{}
	var _ nn.Loss = nn.Quadratic{}
	var _ nn.Loss = nn.BinaryCrossEntropy{}
	var _ nn.Loss = nn.CategoricalCrossEntropy{}
}

// TestRegistry verifies every registered name resolves to its strategy.
func TestRegistry(t *testing.T) {
	for _, name := range nn.ActivationNames() {
		act, err := nn.ActivationByName(name)
		if err != nil {
			t.Fatalf("ActivationByName(%q) failed: %v", name, err)
		}
		if act.Name() != name {
			t.Errorf("ActivationByName(%q).Name() = %q", name, act.Name())
		}
	}
	for _, name := range nn.LossNames() {
		loss, err := nn.LossByName(name)
		if err != nil {
			t.Fatalf("LossByName(%q) failed: %v", name, err)
		}
		if loss.Name() != name {
			t.Errorf("LossByName(%q).Name() = %q", name, loss.Name())
		}
	}
}
