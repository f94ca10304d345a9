// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cnn

import (
	"math/rand"

	"github.com/born-ml/digitnet/internal/cnn"
	"github.com/born-ml/digitnet/internal/serialization"
)

// Network chains Conv, MaxPool and Softmax.
type Network = cnn.Network

// Config describes the network topology and its collaborators.
type Config = cnn.Config

// Result is the outcome of a labelled forward pass.
type Result = cnn.Result

// EpochStats summarizes one training epoch.
type EpochStats = cnn.EpochStats

// Snapshot is the structural JSON form of a Network.
type Snapshot = cnn.Snapshot

// Header describes a saved snapshot.
type Header = serialization.Header

// Layers

// Conv is a single-channel valid convolution with square filters.
type Conv = cnn.Conv

// MaxPool downsamples channels by non-overlapping block maxima.
type MaxPool = cnn.MaxPool

// Softmax is the dense output layer.
type Softmax = cnn.Softmax

// Errors.
var (
	ErrBadConfig     = cnn.ErrBadConfig
	ErrImageTooSmall = cnn.ErrImageTooSmall
	ErrInputShape    = cnn.ErrInputShape
	ErrNoForward     = cnn.ErrNoForward
	ErrEmptyTrainSet = cnn.ErrEmptyTrainSet
	ErrEmptyTestSet  = cnn.ErrEmptyTestSet
	ErrBadSnapshot   = cnn.ErrBadSnapshot
)

// New creates a randomly initialized network.
//
// Example:
//
//	net, err := cnn.New(cnn.Config{NumFilters: 8, Rand: rand.New(rand.NewSource(1))})
func New(cfg Config) (*Network, error) {
	return cnn.New(cfg)
}

// FromSnapshot rebuilds a network from a snapshot.
func FromSnapshot(s *Snapshot, cfg Config) (*Network, error) {
	return cnn.FromSnapshot(s, cfg)
}

// Load reads a network saved with Network.Save.
func Load(path string, cfg Config) (*Network, Header, error) {
	return cnn.Load(path, cfg)
}

// NewConv creates a convolution layer with N(0,1)/filterSize² filters.
func NewConv(numFilters, filterSize int, rng *rand.Rand) *Conv {
	return cnn.NewConv(numFilters, filterSize, rng)
}

// NewMaxPool creates a max-pooling layer.
func NewMaxPool(poolSize int) *MaxPool {
	return cnn.NewMaxPool(poolSize)
}

// NewSoftmax creates a dense softmax layer.
func NewSoftmax(inputLen, classes int, rng *rand.Rand) *Softmax {
	return cnn.NewSoftmax(inputLen, classes, rng)
}
