package ffnn

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/nn"
	"github.com/born-ml/digitnet/internal/optim"
	"github.com/born-ml/digitnet/internal/parallel"
)

// TrainOptions holds the hyperparameters and diagnostics of a Train call.
type TrainOptions struct {
	Epochs         int     // Number of passes over the training set; 0 is a no-op
	MiniBatchSize  int     // Samples per gradient step, in [1, len(train)]
	LearningRate   float64 // η
	Regularization float64 // L2 coefficient λ
	Momentum       float64 // Optional momentum μ, 0 for plain SGD

	// LogMiniBatchAccuracy logs test accuracy after every mini-batch.
	LogMiniBatchAccuracy bool
	// LogMiniBatchCost logs the regularized training cost after every mini-batch.
	LogMiniBatchCost bool
	// CheckGradients logs a finite-difference gradient check for every sample.
	// It is very slow and meant for debugging small networks.
	CheckGradients bool

	// Checkpoint, when set, is called after every epoch. A non-nil error
	// stops training.
	Checkpoint func(epoch int, n *Network) error
}

// EpochStats summarizes one training epoch.
type EpochStats struct {
	Epoch   int // 1-based
	Batches int
	Correct int // Test samples classified correctly, 0 without a test set
	Total   int // Test set size
	Elapsed time.Duration
}

// Accuracy returns Correct/Total, or 0 without a test set.
func (s EpochStats) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// Train runs mini-batch stochastic gradient descent.
//
// Every epoch shuffles train in place, splits it into contiguous mini-batches
// of opts.MiniBatchSize (a trailing remainder is dropped) and applies one
// gradient step per mini-batch. When test is non-empty the test accuracy is
// measured after every epoch.
//
// ctx is checked before every mini-batch; on cancellation Train returns the
// statistics of completed epochs together with the context error.
func (n *Network) Train(ctx context.Context, train []nn.Sample, opts TrainOptions, test []nn.Sample) ([]EpochStats, error) {
	if len(train) == 0 {
		return nil, ErrEmptyTrainSet
	}
	if opts.Epochs < 0 {
		return nil, errors.Wrapf(ErrNegativeEpochs, "got %d", opts.Epochs)
	}
	if err := optim.ValidateBatchSize(opts.MiniBatchSize, len(train)); err != nil {
		return nil, err
	}
	if err := n.checkSamples(train); err != nil {
		return nil, errors.Wrap(err, "training set")
	}
	if err := n.checkSamples(test); err != nil {
		return nil, errors.Wrap(err, "test set")
	}

	sgd := optim.NewSGD(optim.SGDConfig{
		LR:             opts.LearningRate,
		Regularization: opts.Regularization,
		TrainSize:      len(train),
		Momentum:       opts.Momentum,
	})
	logger := n.logger.With("run", uuid.NewString())
	logger.Info("training started",
		"samples", len(train),
		"epochs", opts.Epochs,
		"batch", opts.MiniBatchSize,
		"lr", opts.LearningRate,
		"reg", opts.Regularization,
	)

	stats := make([]EpochStats, 0, opts.Epochs)
	for epoch := 1; epoch <= opts.Epochs; epoch++ {
		start := time.Now()
		optim.Shuffle(n.rng, train)
		batches := optim.MiniBatches(train, opts.MiniBatchSize)

		for j, batch := range batches {
			if err := ctx.Err(); err != nil {
				return stats, errors.Wrapf(err, "epoch %d, batch %d", epoch, j+1)
			}
			n.updateMiniBatch(batch, sgd, opts, logger)
			n.logMiniBatch(logger, j+1, len(batches), train, test, opts)
		}

		st := EpochStats{
			Epoch:   epoch,
			Batches: len(batches),
			Total:   len(test),
			Elapsed: time.Since(start),
		}
		if len(test) > 0 {
			st.Correct = n.accuracy(test)
			logger.Info("epoch finished",
				"epoch", epoch,
				"epochs", opts.Epochs,
				"accuracy", st.Correct,
				"total", st.Total,
				"percent", 100*st.Accuracy(),
				"elapsed", st.Elapsed,
			)
		} else {
			logger.Info("epoch finished", "epoch", epoch, "epochs", opts.Epochs, "elapsed", st.Elapsed)
		}
		stats = append(stats, st)

		if opts.Checkpoint != nil {
			if err := opts.Checkpoint(epoch, n); err != nil {
				return stats, errors.Wrapf(err, "checkpoint after epoch %d", epoch)
			}
		}
	}

	return stats, nil
}

// updateMiniBatch accumulates the gradients of every sample in batch and
// applies a single SGD step.
//
// Per-sample gradients may be computed concurrently but are always summed in
// sample order, so the result does not depend on the parallel configuration.
func (n *Network) updateMiniBatch(batch []nn.Sample, sgd *optim.SGD, opts TrainOptions, logger *slog.Logger) {
	grads := parallel.Map(len(batch), func(i int) Gradients {
		return n.backprop(batch[i].Input, batch[i].Target)
	}, n.parallel)

	if opts.CheckGradients {
		for i, g := range grads {
			logger.Info("gradient check",
				"sample", i,
				"biases", n.GradientCheck(g.Biases, n.biases, batch[i].Input, batch[i].Target),
				"weights", n.GradientCheck(g.Weights, n.weights, batch[i].Input, batch[i].Target),
			)
		}
	}

	sum := Gradients{Biases: emptyLike(n.biases), Weights: emptyLike(n.weights)}
	for _, g := range grads {
		for l := range sum.Biases {
			sum.Biases[l].Add(g.Biases[l])
			sum.Weights[l].Add(g.Weights[l])
		}
	}

	m := len(batch)
	for l := range n.weights {
		sgd.StepBias(n.biases[l], sum.Biases[l], m)
		sgd.StepWeights(n.weights[l], sum.Weights[l], m)
	}
}

func (n *Network) logMiniBatch(logger *slog.Logger, batch, batches int, train, test []nn.Sample, opts TrainOptions) {
	if opts.LogMiniBatchAccuracy && len(test) > 0 {
		correct := n.accuracy(test)
		logger.Info("mini-batch tested",
			"batch", batch,
			"batches", batches,
			"accuracy", correct,
			"total", len(test),
			"percent", 100*float64(correct)/float64(len(test)),
		)
	} else {
		logger.Debug("mini-batch finished", "batch", batch, "batches", batches)
	}

	if opts.LogMiniBatchCost {
		cost, correct := n.trainCost(train, opts.Regularization)
		logger.Info("training cost",
			"batch", batch,
			"loss", cost,
			"accuracy", correct,
			"total", len(train),
		)
	}
}

// sumSquares returns Σw² over every weight of the network.
func (n *Network) sumSquares() float64 {
	var s float64
	for _, w := range n.weights {
		d, _ := matrix.Dot(w, w)
		s += d
	}
	return s
}
