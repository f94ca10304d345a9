// Package ffnn implements a fully connected feed-forward neural network
// trained by mini-batch stochastic gradient descent with manual
// backpropagation and L2 weight decay.
//
// A network is a sequence of layer widths. Layer i holds a weight matrix of
// shape sizes[i+1] x sizes[i] and a bias column vector of length sizes[i+1].
// Hidden layers share one activation; the output layer has its own, and a
// single loss drives the output error.
package ffnn

import (
	"io"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/nn"
	"github.com/born-ml/digitnet/internal/parallel"
)

// Config holds the strategies and collaborators of a Network.
//
// Zero fields are filled with defaults: ReLU hidden layers, Softmax output,
// BinaryCrossEntropy loss, a time-seeded random source, a discarding logger and
// sequential gradient computation.
type Config struct {
	Hidden   nn.Activation
	Output   nn.Activation
	Loss     nn.Loss
	Rand     *rand.Rand
	Logger   *slog.Logger
	Parallel parallel.Config
}

func (c Config) withDefaults() Config {
	if c.Hidden == nil {
		c.Hidden = nn.ReLU{}
	}
	if c.Output == nil {
		c.Output = nn.Softmax{}
	}
	if c.Loss == nil {
		c.Loss = nn.BinaryCrossEntropy{}
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Network is a feed-forward neural network.
//
// A Network is not safe for concurrent use while training.
type Network struct {
	sizes   []int
	weights []*matrix.Matrix
	biases  []*matrix.Matrix

	// Optional input standardization statistics, sizes[0] x 1 each.
	trainMean *matrix.Matrix
	trainSTD  *matrix.Matrix

	hidden nn.Activation
	output nn.Activation
	loss   nn.Loss

	rng      *rand.Rand
	logger   *slog.Logger
	parallel parallel.Config
}

// New creates a randomly initialized network with the given layer widths.
//
// With a ReLU hidden activation, weights use He initialization
// N(0,1)·sqrt(2/fan_in) and biases start at zero. Otherwise weights and biases
// are drawn from the standard normal distribution.
func New(sizes []int, cfg Config) (*Network, error) {
	if err := validateSizes(sizes); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	n := newNetwork(sizes, cfg)
	_, he := cfg.Hidden.(nn.ReLU)
	for i := 1; i < len(sizes); i++ {
		bias := matrix.New(sizes[i], 1)
		if !he {
			bias.RandomizeNormal(cfg.Rand)
		}
		n.biases = append(n.biases, bias)
	}
	for i := 1; i < len(sizes); i++ {
		weight := matrix.New(sizes[i], sizes[i-1]).RandomizeNormal(cfg.Rand)
		if he {
			weight.Scale(math.Sqrt(2 / float64(sizes[i-1])))
		}
		n.weights = append(n.weights, weight)
	}

	return n, nil
}

func newNetwork(sizes []int, cfg Config) *Network {
	s := make([]int, len(sizes))
	copy(s, sizes)
	return &Network{
		sizes:    s,
		weights:  make([]*matrix.Matrix, 0, len(sizes)-1),
		biases:   make([]*matrix.Matrix, 0, len(sizes)-1),
		hidden:   cfg.Hidden,
		output:   cfg.Output,
		loss:     cfg.Loss,
		rng:      cfg.Rand,
		logger:   cfg.Logger,
		parallel: cfg.Parallel,
	}
}

func validateSizes(sizes []int) error {
	if len(sizes) < 2 {
		return errors.Wrapf(ErrTooFewLayers, "got %d", len(sizes))
	}
	for i, s := range sizes {
		if s <= 0 {
			return errors.Wrapf(ErrBadLayerSize, "layer %d has size %d", i, s)
		}
	}
	return nil
}

// Sizes returns a copy of the layer widths.
func (n *Network) Sizes() []int {
	s := make([]int, len(n.sizes))
	copy(s, n.sizes)
	return s
}

// NumLayers returns the number of layers including the input layer.
func (n *Network) NumLayers() int {
	return len(n.sizes)
}

// Weights returns the live weight matrices, one per non-input layer.
//
// Mutating them mutates the network.
func (n *Network) Weights() []*matrix.Matrix {
	return n.weights
}

// Biases returns the live bias vectors, one per non-input layer.
func (n *Network) Biases() []*matrix.Matrix {
	return n.biases
}

// Hidden returns the hidden layer activation.
func (n *Network) Hidden() nn.Activation { return n.hidden }

// Output returns the output layer activation.
func (n *Network) Output() nn.Activation { return n.output }

// Loss returns the loss function.
func (n *Network) Loss() nn.Loss { return n.loss }

// Predict runs a forward pass and returns the output activations.
//
// input must be a sizes[0] x 1 column vector.
func (n *Network) Predict(input *matrix.Matrix) ([]float64, error) {
	if err := n.checkInput(input); err != nil {
		return nil, err
	}
	return n.feedforward(input).ToSlice(), nil
}

// Classify returns the index of the largest output activation.
func (n *Network) Classify(input *matrix.Matrix) (int, error) {
	out, err := n.Predict(input)
	if err != nil {
		return -1, err
	}
	return nn.ArgMax(out), nil
}

func (n *Network) feedforward(input *matrix.Matrix) *matrix.Matrix {
	a := input
	last := len(n.weights) - 1
	for i, w := range n.weights {
		z := matrix.Must(matrix.Mul(w, a)).Add(n.biases[i])
		if i == last {
			a = n.output.Fn(z)
		} else {
			a = n.hidden.Fn(z)
		}
	}
	return a
}

// forward runs a forward pass recording every layer's pre-activation and
// activation. activations[0] is the input.
func (n *Network) forward(input *matrix.Matrix) (zs, activations []*matrix.Matrix) {
	zs = make([]*matrix.Matrix, 0, len(n.weights))
	activations = make([]*matrix.Matrix, 0, len(n.sizes))
	activations = append(activations, input)

	last := len(n.weights) - 1
	for i, w := range n.weights {
		z := matrix.Must(matrix.Mul(w, activations[i])).Add(n.biases[i])
		zs = append(zs, z)
		if i == last {
			activations = append(activations, n.output.Fn(z))
		} else {
			activations = append(activations, n.hidden.Fn(z))
		}
	}
	return zs, activations
}

func (n *Network) checkInput(input *matrix.Matrix) error {
	if input == nil || input.Rows() != n.sizes[0] || input.Cols() != 1 {
		var got matrix.Shape
		if input != nil {
			got = input.Shape()
		}
		return errors.Wrapf(ErrInputShape, "want %dx1, got %s", n.sizes[0], got)
	}
	return nil
}

func (n *Network) checkSample(s nn.Sample) error {
	if err := n.checkInput(s.Input); err != nil {
		return err
	}
	out := n.sizes[len(n.sizes)-1]
	if s.Target == nil || s.Target.Rows() != out || s.Target.Cols() != 1 {
		var got matrix.Shape
		if s.Target != nil {
			got = s.Target.Shape()
		}
		return errors.Wrapf(ErrTargetShape, "want %dx1, got %s", out, got)
	}
	return nil
}

func (n *Network) checkSamples(samples []nn.Sample) error {
	for i, s := range samples {
		if err := n.checkSample(s); err != nil {
			return errors.Wrapf(err, "sample %d", i)
		}
	}
	return nil
}

// emptyLike returns zero matrices shaped like params.
func emptyLike(params []*matrix.Matrix) []*matrix.Matrix {
	out := make([]*matrix.Matrix, len(params))
	for i, p := range params {
		out[i] = matrix.New(p.Rows(), p.Cols())
	}
	return out
}
