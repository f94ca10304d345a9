// Package cnn implements a fixed-topology convolutional network for
// single-channel images:
//
//	image (h x w) → Conv(n, f) → MaxPool(s) → Dense+Softmax(classes)
//
// The network is trained one sample at a time by plain stochastic gradient
// descent on the cross-entropy loss -ln(p[label]). Layers cache their last
// input during Forward, so a Network must not be shared between goroutines.
package cnn

import (
	"context"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/nn"
	"github.com/born-ml/digitnet/internal/optim"
	"github.com/born-ml/digitnet/internal/parallel"
)

// Defaults of the MNIST configuration.
const (
	DefaultNumFilters  = 8
	DefaultFilterSize  = 3
	DefaultPoolSize    = 2
	DefaultInputSize   = 28
	DefaultNumClasses  = 10
	DefaultReportEvery = 100
)

// Config describes the network topology and its collaborators. Zero fields
// take the defaults above, a time-seeded random source and a discarding
// logger.
//
// Parallel only spreads the convolution over filters; every filter writes its
// own output, so results do not depend on it.
type Config struct {
	NumFilters  int
	FilterSize  int
	PoolSize    int
	InputRows   int
	InputCols   int
	NumClasses  int
	ReportEvery int // Log running averages every ReportEvery training samples

	Rand     *rand.Rand
	Logger   *slog.Logger
	Parallel parallel.Config
}

func (c Config) withDefaults() Config {
	if c.NumFilters == 0 {
		c.NumFilters = DefaultNumFilters
	}
	if c.FilterSize == 0 {
		c.FilterSize = DefaultFilterSize
	}
	if c.PoolSize == 0 {
		c.PoolSize = DefaultPoolSize
	}
	if c.InputRows == 0 {
		c.InputRows = DefaultInputSize
	}
	if c.InputCols == 0 {
		c.InputCols = DefaultInputSize
	}
	if c.NumClasses == 0 {
		c.NumClasses = DefaultNumClasses
	}
	if c.ReportEvery == 0 {
		c.ReportEvery = DefaultReportEvery
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

func (c Config) validate() error {
	switch {
	case c.NumFilters < 0, c.FilterSize < 0, c.PoolSize < 0, c.NumClasses < 0,
		c.InputRows < 0, c.InputCols < 0, c.ReportEvery < 0:
		return errors.Wrap(ErrBadConfig, "negative size")
	case c.NumClasses < 2:
		return errors.Wrapf(ErrBadConfig, "need at least 2 classes, got %d", c.NumClasses)
	case c.InputRows < c.FilterSize || c.InputCols < c.FilterSize:
		return errors.Wrapf(ErrImageTooSmall, "input %dx%d, filter %dx%d",
			c.InputRows, c.InputCols, c.FilterSize, c.FilterSize)
	}
	rows, cols := c.pooledShape()
	if rows == 0 || cols == 0 {
		return errors.Wrapf(ErrBadConfig, "pool %d leaves no output for %dx%d feature maps",
			c.PoolSize, c.InputRows-c.FilterSize+1, c.InputCols-c.FilterSize+1)
	}
	return nil
}

// pooledShape returns the per-channel shape after Conv and MaxPool.
func (c Config) pooledShape() (rows, cols int) {
	return (c.InputRows - c.FilterSize + 1) / c.PoolSize, (c.InputCols - c.FilterSize + 1) / c.PoolSize
}

// inputLen returns the flattened length seen by the softmax layer.
func (c Config) inputLen() int {
	rows, cols := c.pooledShape()
	return c.NumFilters * rows * cols
}

// Network chains the three layers.
type Network struct {
	conv    *Conv
	pool    *MaxPool
	softmax *Softmax

	inputRows   int
	inputCols   int
	reportEvery int

	rng    *rand.Rand
	logger *slog.Logger
}

// New creates a randomly initialized network. Conv filters are drawn before
// the softmax weights, so a seeded cfg.Rand reproduces the same network.
func New(cfg Config) (*Network, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	conv := NewConv(cfg.NumFilters, cfg.FilterSize, cfg.Rand)
	softmax := NewSoftmax(cfg.inputLen(), cfg.NumClasses, cfg.Rand)
	return newNetwork(cfg, conv, softmax), nil
}

func newNetwork(cfg Config, conv *Conv, softmax *Softmax) *Network {
	conv.parallel = cfg.Parallel
	return &Network{
		conv:        conv,
		pool:        NewMaxPool(cfg.PoolSize),
		softmax:     softmax,
		inputRows:   cfg.InputRows,
		inputCols:   cfg.InputCols,
		reportEvery: cfg.ReportEvery,
		rng:         cfg.Rand,
		logger:      cfg.Logger,
	}
}

// Conv returns the convolution layer.
func (n *Network) Conv() *Conv { return n.conv }

// Pool returns the max-pooling layer.
func (n *Network) Pool() *MaxPool { return n.pool }

// Softmax returns the output layer.
func (n *Network) Softmax() *Softmax { return n.softmax }

// InputShape returns the expected image shape.
func (n *Network) InputShape() matrix.Shape {
	return matrix.Shape{Rows: n.inputRows, Cols: n.inputCols}
}

// NumClasses returns the number of output classes.
func (n *Network) NumClasses() int { return n.softmax.Classes() }

// Result is the outcome of a labelled forward pass.
type Result struct {
	Probs      []float64 // Class probabilities, summing to 1
	Loss       float64   // -ln(Probs[label])
	Correct    bool      // Prediction == label
	Prediction int       // Index of the largest probability
}

// Forward runs image through the network and scores it against label. The
// layers keep their caches for a following backward pass.
func (n *Network) Forward(image *matrix.Matrix, label int) (Result, error) {
	if label < 0 || label >= n.NumClasses() {
		return Result{}, errors.Wrapf(nn.ErrLabelOutOfRange, "label %d, classes %d", label, n.NumClasses())
	}
	out, err := n.forward(image)
	if err != nil {
		return Result{}, err
	}
	probs := out.ToSlice()
	prediction := nn.ArgMax(probs)
	return Result{
		Probs:      probs,
		Loss:       -math.Log(probs[label]),
		Correct:    prediction == label,
		Prediction: prediction,
	}, nil
}

// Predict returns the class probabilities of image.
func (n *Network) Predict(image *matrix.Matrix) ([]float64, error) {
	out, err := n.forward(image)
	if err != nil {
		return nil, err
	}
	return out.ToSlice(), nil
}

// Classify returns the most probable class of image.
func (n *Network) Classify(image *matrix.Matrix) (int, error) {
	probs, err := n.Predict(image)
	if err != nil {
		return 0, err
	}
	return nn.ArgMax(probs), nil
}

func (n *Network) forward(image *matrix.Matrix) (*matrix.Matrix, error) {
	if image == nil || image.Rows() != n.inputRows || image.Cols() != n.inputCols {
		return nil, errors.Wrapf(ErrInputShape, "want %dx%d image", n.inputRows, n.inputCols)
	}
	maps, err := n.conv.Forward(image)
	if err != nil {
		return nil, err
	}
	return n.softmax.Forward(n.pool.Forward(maps))
}

// step backpropagates the gradient of -ln(p[label]) from the last Forward
// and updates every layer.
func (n *Network) step(res Result, label int, lr float64) error {
	gradient := matrix.New(1, n.NumClasses())
	gradient.Set(0, label, -1/res.Probs[label])

	grad, err := n.softmax.Backprop(gradient, lr)
	if err != nil {
		return errors.Wrap(err, "softmax")
	}
	grad, err = n.pool.Backprop(grad)
	if err != nil {
		return errors.Wrap(err, "maxpool")
	}
	return errors.Wrap(n.conv.Backprop(grad, lr), "conv")
}

// TrainStep runs one forward and backward pass on a single image.
func (n *Network) TrainStep(image *matrix.Matrix, label int, lr float64) (Result, error) {
	res, err := n.Forward(image, label)
	if err != nil {
		return Result{}, err
	}
	if err := n.step(res, label, lr); err != nil {
		return Result{}, err
	}
	return res, nil
}

// EpochStats summarizes one training epoch.
type EpochStats struct {
	Epoch   int // 1-based
	Samples int
	Loss    float64 // Mean training loss over the epoch
	Correct int     // Training samples classified correctly before their update

	TestLoss    float64 // Mean test loss, 0 without a test set
	TestCorrect int
	TestTotal   int

	Elapsed time.Duration
}

// Accuracy returns the training accuracy of the epoch.
func (s EpochStats) Accuracy() float64 {
	if s.Samples == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Samples)
}

// TestAccuracy returns TestCorrect/TestTotal, or 0 without a test set.
func (s EpochStats) TestAccuracy() float64 {
	if s.TestTotal == 0 {
		return 0
	}
	return float64(s.TestCorrect) / float64(s.TestTotal)
}

// Train runs per-sample stochastic gradient descent for the given number of
// epochs. Every epoch shuffles samples in place. Running averages of loss and
// accuracy are logged every ReportEvery samples and reset afterwards. When test
// is non-empty it is evaluated after every epoch.
//
// ctx is checked before every sample; on cancellation Train returns the
// statistics of completed epochs together with the context error.
func (n *Network) Train(ctx context.Context, samples []nn.Sample, epochs int, lr float64, test []nn.Sample) ([]EpochStats, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyTrainSet
	}
	if epochs < 0 {
		return nil, errors.Wrapf(ErrBadConfig, "epochs %d", epochs)
	}

	logger := n.logger.With("run", uuid.NewString())
	logger.Info("training started", "samples", len(samples), "epochs", epochs, "lr", lr)

	stats := make([]EpochStats, 0, epochs)
	for epoch := 1; epoch <= epochs; epoch++ {
		start := time.Now()
		optim.Shuffle(n.rng, samples)

		st := EpochStats{Epoch: epoch, Samples: len(samples)}
		var windowLoss float64
		var windowCorrect int
		for i, s := range samples {
			if err := ctx.Err(); err != nil {
				return stats, errors.Wrapf(err, "epoch %d, sample %d", epoch, i)
			}
			res, err := n.TrainStep(s.Input, s.Label(), lr)
			if err != nil {
				return stats, errors.Wrapf(err, "epoch %d, sample %d", epoch, i)
			}

			st.Loss += res.Loss
			windowLoss += res.Loss
			if res.Correct {
				st.Correct++
				windowCorrect++
			}
			if (i+1)%n.reportEvery == 0 {
				logger.Info("training progress",
					"epoch", epoch,
					"sample", i+1,
					"loss", windowLoss/float64(n.reportEvery),
					"accuracy", 100*float64(windowCorrect)/float64(n.reportEvery),
				)
				windowLoss, windowCorrect = 0, 0
			}
		}
		st.Loss /= float64(len(samples))

		if len(test) > 0 {
			loss, correct, err := n.Test(test)
			if err != nil {
				return stats, errors.Wrap(err, "test set")
			}
			st.TestLoss, st.TestCorrect, st.TestTotal = loss, correct, len(test)
		}
		st.Elapsed = time.Since(start)

		logger.Info("epoch finished",
			"epoch", epoch,
			"epochs", epochs,
			"loss", st.Loss,
			"accuracy", st.TestCorrect,
			"total", st.TestTotal,
			"elapsed", st.Elapsed,
		)
		stats = append(stats, st)
	}

	return stats, nil
}

// Test returns the mean loss over samples and the number classified
// correctly. The network is not updated.
func (n *Network) Test(samples []nn.Sample) (avgLoss float64, correct int, err error) {
	if len(samples) == 0 {
		return 0, 0, ErrEmptyTestSet
	}
	var total float64
	for i, s := range samples {
		res, err := n.Forward(s.Input, s.Label())
		if err != nil {
			return 0, 0, errors.Wrapf(err, "sample %d", i)
		}
		total += res.Loss
		if res.Correct {
			correct++
		}
	}
	return total / float64(len(samples)), correct, nil
}
