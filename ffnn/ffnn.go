// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ffnn

import (
	"context"

	"github.com/born-ml/digitnet/internal/ffnn"
	"github.com/born-ml/digitnet/internal/nn"
	"github.com/born-ml/digitnet/internal/serialization"
)

// Network is a feed-forward neural network.
type Network = ffnn.Network

// Config holds the strategies and collaborators of a Network.
type Config = ffnn.Config

// TrainOptions holds the hyperparameters of a Train call.
type TrainOptions = ffnn.TrainOptions

// EpochStats summarizes one training epoch.
type EpochStats = ffnn.EpochStats

// Gradients holds per-layer gradients returned by Network.Backprop.
type Gradients = ffnn.Gradients

// Snapshot is the structural JSON form of a Network.
type Snapshot = ffnn.Snapshot

// SearchGrid lists the hyperparameter values tried by SearchHyperparameters.
type SearchGrid = ffnn.SearchGrid

// SearchResult is the best combination found by SearchHyperparameters.
type SearchResult = ffnn.SearchResult

// Header describes a saved snapshot.
type Header = serialization.Header

// Errors.
var (
	ErrTooFewLayers   = ffnn.ErrTooFewLayers
	ErrBadLayerSize   = ffnn.ErrBadLayerSize
	ErrInputShape     = ffnn.ErrInputShape
	ErrTargetShape    = ffnn.ErrTargetShape
	ErrEmptyTrainSet  = ffnn.ErrEmptyTrainSet
	ErrEmptyTestSet   = ffnn.ErrEmptyTestSet
	ErrNegativeEpochs = ffnn.ErrNegativeEpochs
	ErrBadSnapshot    = ffnn.ErrBadSnapshot
	ErrStatsShape     = ffnn.ErrStatsShape
	ErrEmptyGrid      = ffnn.ErrEmptyGrid
)

// New creates a randomly initialized network with the given layer widths.
//
// Example:
//
//	net, err := ffnn.New([]int{2, 3, 2}, ffnn.Config{Rand: rand.New(rand.NewSource(1))})
func New(sizes []int, cfg Config) (*Network, error) {
	return ffnn.New(sizes, cfg)
}

// FromSnapshot rebuilds a network from a snapshot.
func FromSnapshot(s *Snapshot, cfg Config) (*Network, error) {
	return ffnn.FromSnapshot(s, cfg)
}

// Load reads a network saved with Network.Save.
func Load(path string, cfg Config) (*Network, Header, error) {
	return ffnn.Load(path, cfg)
}

// DefaultSearchGrid returns the grid searched by the digitnet CLI.
func DefaultSearchGrid() SearchGrid {
	return ffnn.DefaultSearchGrid()
}

// SearchHyperparameters trains one network per grid combination for a single
// epoch and returns the one with the best validation accuracy.
func SearchHyperparameters(ctx context.Context, sizes []int, train, val, test []nn.Sample, grid SearchGrid, cfg Config) (*SearchResult, error) {
	return ffnn.SearchHyperparameters(ctx, sizes, train, val, test, grid, cfg)
}
