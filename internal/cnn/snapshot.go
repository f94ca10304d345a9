package cnn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/serialization"
)

// Snapshot is the structural JSON form of a Network.
type Snapshot struct {
	Conv    ConvSnapshot    `json:"conv"`
	Pool    PoolSnapshot    `json:"pool"`
	Softmax SoftmaxSnapshot `json:"softmax"`

	// Input dimensions; snapshots without them assume 28x28.
	InputRows int `json:"inputRows,omitempty"`
	InputCols int `json:"inputCols,omitempty"`
}

// ConvSnapshot holds the convolution filters.
type ConvSnapshot struct {
	NumFilters int              `json:"numFilters"`
	FilterSize int              `json:"filterSize"`
	Filters    []*matrix.Matrix `json:"filters"`
}

// PoolSnapshot holds the pooling block size.
type PoolSnapshot struct {
	PoolSize int `json:"poolSize"`
}

// SoftmaxSnapshot holds the dense layer parameters.
type SoftmaxSnapshot struct {
	Weights *matrix.Matrix `json:"weights"`
	Biases  *matrix.Matrix `json:"biases"`
}

// Snapshot returns a deep copy of the network parameters.
func (n *Network) Snapshot() *Snapshot {
	filters := make([]*matrix.Matrix, len(n.conv.filters))
	for i, f := range n.conv.filters {
		filters[i] = f.Clone()
	}
	return &Snapshot{
		Conv: ConvSnapshot{
			NumFilters: n.conv.numFilters,
			FilterSize: n.conv.filterSize,
			Filters:    filters,
		},
		Pool: PoolSnapshot{PoolSize: n.pool.poolSize},
		Softmax: SoftmaxSnapshot{
			Weights: n.softmax.weights.Clone(),
			Biases:  n.softmax.biases.Clone(),
		},
		InputRows: n.inputRows,
		InputCols: n.inputCols,
	}
}

// FromSnapshot rebuilds a network from a deep copy of s. The topology comes
// from s; cfg only supplies the collaborators and ReportEvery.
func FromSnapshot(s *Snapshot, cfg Config) (*Network, error) {
	if s == nil {
		return nil, errors.Wrap(ErrBadSnapshot, "nil snapshot")
	}
	if s.Softmax.Weights == nil || s.Softmax.Biases == nil {
		return nil, errors.Wrap(ErrBadSnapshot, "missing softmax parameters")
	}

	cfg.NumFilters = s.Conv.NumFilters
	cfg.FilterSize = s.Conv.FilterSize
	cfg.PoolSize = s.Pool.PoolSize
	cfg.InputRows = s.InputRows
	cfg.InputCols = s.InputCols
	cfg.NumClasses = s.Softmax.Weights.Cols()
	if cfg.NumFilters <= 0 || cfg.FilterSize <= 0 || cfg.PoolSize <= 0 {
		return nil, errors.Wrapf(ErrBadSnapshot, "conv %d/%d, pool %d", cfg.NumFilters, cfg.FilterSize, cfg.PoolSize)
	}
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(ErrBadSnapshot, err.Error())
	}

	if len(s.Conv.Filters) != cfg.NumFilters {
		return nil, errors.Wrapf(ErrBadSnapshot, "%d filters, numFilters %d", len(s.Conv.Filters), cfg.NumFilters)
	}
	conv := &Conv{
		numFilters: cfg.NumFilters,
		filterSize: cfg.FilterSize,
		filters:    make([]*matrix.Matrix, cfg.NumFilters),
	}
	for i, f := range s.Conv.Filters {
		if f == nil || f.Rows() != cfg.FilterSize || f.Cols() != cfg.FilterSize {
			return nil, errors.Wrapf(ErrBadSnapshot, "filter %d is not %dx%d", i, cfg.FilterSize, cfg.FilterSize)
		}
		conv.filters[i] = f.Clone()
	}

	w, b := s.Softmax.Weights, s.Softmax.Biases
	if w.Rows() != cfg.inputLen() {
		return nil, errors.Wrapf(ErrBadSnapshot, "softmax weights have %d rows, pooled input is %d", w.Rows(), cfg.inputLen())
	}
	if b.Rows() != 1 || b.Cols() != w.Cols() {
		return nil, errors.Wrapf(ErrBadSnapshot, "softmax biases are %s, want 1x%d", b.Shape(), w.Cols())
	}
	softmax := &Softmax{weights: w.Clone(), biases: b.Clone()}

	return newNetwork(cfg, conv, softmax), nil
}

// Save writes the network snapshot to path. checkpoint may be nil.
func (n *Network) Save(path string, checkpoint *serialization.CheckpointMeta) (serialization.Header, error) {
	return serialization.Save(path, serialization.Header{
		Format:     serialization.FormatCNN,
		Checkpoint: checkpoint,
	}, n.Snapshot())
}

// Load reads a network snapshot from path.
func Load(path string, cfg Config) (*Network, serialization.Header, error) {
	var s Snapshot
	h, err := serialization.Load(path, serialization.FormatCNN, &s)
	if err != nil {
		return nil, serialization.Header{}, err
	}
	n, err := FromSnapshot(&s, cfg)
	if err != nil {
		return nil, serialization.Header{}, errors.Wrapf(err, "load %s", path)
	}
	return n, h, nil
}
