package ffnn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/nn"
	"github.com/born-ml/digitnet/internal/serialization"
)

// Snapshot is the structural JSON form of a Network.
type Snapshot struct {
	Sizes     []int            `json:"sizes"`
	Weights   []*matrix.Matrix `json:"weights"`
	Biases    []*matrix.Matrix `json:"biases"`
	TrainMean *matrix.Matrix   `json:"trainMean,omitempty"`
	TrainSTD  *matrix.Matrix   `json:"trainSTD,omitempty"`
	Hidden    string           `json:"hidden,omitempty"`
	Output    string           `json:"output,omitempty"`
	Loss      string           `json:"loss,omitempty"`
}

// Snapshot returns a deep copy of the network state.
func (n *Network) Snapshot() *Snapshot {
	s := &Snapshot{
		Sizes:   n.Sizes(),
		Weights: cloneAll(n.weights),
		Biases:  cloneAll(n.biases),
		Hidden:  n.hidden.Name(),
		Output:  n.output.Name(),
		Loss:    n.loss.Name(),
	}
	if n.trainMean != nil {
		s.TrainMean = n.trainMean.Clone()
		s.TrainSTD = n.trainSTD.Clone()
	}
	return s
}

// FromSnapshot rebuilds a network from a deep copy of s.
//
// Strategy names stored in s take precedence over cfg. Snapshots without
// names use cfg, whose defaults match the strategies older snapshots were
// trained with.
func FromSnapshot(s *Snapshot, cfg Config) (*Network, error) {
	if s == nil {
		return nil, errors.Wrap(ErrBadSnapshot, "nil snapshot")
	}
	if err := validateSizes(s.Sizes); err != nil {
		return nil, errors.Wrap(ErrBadSnapshot, err.Error())
	}
	if err := resolveStrategies(s, &cfg); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	layers := len(s.Sizes) - 1
	if len(s.Weights) != layers || len(s.Biases) != layers {
		return nil, errors.Wrapf(ErrBadSnapshot, "%d layers, %d weights, %d biases", layers, len(s.Weights), len(s.Biases))
	}

	n := newNetwork(s.Sizes, cfg)
	for i := 0; i < layers; i++ {
		w, b := s.Weights[i], s.Biases[i]
		if w == nil || w.Rows() != s.Sizes[i+1] || w.Cols() != s.Sizes[i] {
			return nil, errors.Wrapf(ErrBadSnapshot, "weight %d is not %dx%d", i, s.Sizes[i+1], s.Sizes[i])
		}
		if b == nil || b.Rows() != s.Sizes[i+1] || b.Cols() != 1 {
			return nil, errors.Wrapf(ErrBadSnapshot, "bias %d is not %dx1", i, s.Sizes[i+1])
		}
		n.weights = append(n.weights, w.Clone())
		n.biases = append(n.biases, b.Clone())
	}

	if s.TrainMean != nil || s.TrainSTD != nil {
		if err := n.SetStandardization(s.TrainMean, s.TrainSTD); err != nil {
			return nil, errors.Wrap(ErrBadSnapshot, err.Error())
		}
	}

	return n, nil
}

func resolveStrategies(s *Snapshot, cfg *Config) error {
	if s.Hidden != "" {
		act, err := nn.ActivationByName(s.Hidden)
		if err != nil {
			return err
		}
		cfg.Hidden = act
	}
	if s.Output != "" {
		act, err := nn.ActivationByName(s.Output)
		if err != nil {
			return err
		}
		cfg.Output = act
	}
	if s.Loss != "" {
		loss, err := nn.LossByName(s.Loss)
		if err != nil {
			return err
		}
		cfg.Loss = loss
	}
	return nil
}

// Save writes the network snapshot to path. checkpoint may be nil.
func (n *Network) Save(path string, checkpoint *serialization.CheckpointMeta) (serialization.Header, error) {
	return serialization.Save(path, serialization.Header{
		Format:     serialization.FormatFFNN,
		Checkpoint: checkpoint,
	}, n.Snapshot())
}

// Load reads a network snapshot from path.
func Load(path string, cfg Config) (*Network, serialization.Header, error) {
	var s Snapshot
	h, err := serialization.Load(path, serialization.FormatFFNN, &s)
	if err != nil {
		return nil, serialization.Header{}, err
	}
	n, err := FromSnapshot(&s, cfg)
	if err != nil {
		return nil, serialization.Header{}, errors.Wrapf(err, "load %s", path)
	}
	return n, h, nil
}

func cloneAll(ms []*matrix.Matrix) []*matrix.Matrix {
	out := make([]*matrix.Matrix, len(ms))
	for i, m := range ms {
		out[i] = m.Clone()
	}
	return out
}
