package ffnn

import (
	"context"

	"github.com/pkg/errors"

	"github.com/born-ml/digitnet/internal/nn"
)

// SearchGrid lists the candidate values of a hyperparameter search.
type SearchGrid struct {
	MiniBatchSizes  []int
	LearningRates   []float64
	Regularizations []float64
}

// DefaultSearchGrid returns the 5x7x7 grid used for digit classifiers.
func DefaultSearchGrid() SearchGrid {
	return SearchGrid{
		MiniBatchSizes:  []int{1, 10, 20, 50, 100},
		LearningRates:   []float64{0.01, 0.03, 0.1, 0.3, 1, 3, 10},
		Regularizations: []float64{0.01, 0.03, 0.1, 0.3, 1, 3, 10},
	}
}

// SearchResult describes the winning combination of a search.
type SearchResult struct {
	MiniBatchSize  int
	LearningRate   float64
	Regularization float64

	ValidationCorrect int
	ValidationTotal   int
	TestCorrect       int
	TestTotal         int

	Network *Network
}

// SearchHyperparameters trains a fresh network of the given sizes for one
// epoch per grid combination and keeps the one with the best validation
// accuracy. Earlier combinations win ties. The winner is then evaluated on
// test when it is non-empty.
//
// Mini-batch sizes larger than the training set are skipped.
func SearchHyperparameters(ctx context.Context, sizes []int, train, val, test []nn.Sample, grid SearchGrid, cfg Config) (*SearchResult, error) {
	if len(val) == 0 {
		return nil, errors.Wrap(ErrEmptyTestSet, "validation set")
	}
	cfg = cfg.withDefaults()

	var best *SearchResult
	for _, batch := range grid.MiniBatchSizes {
		if batch <= 0 || batch > len(train) {
			cfg.Logger.Debug("skipping mini-batch size", "batch", batch, "samples", len(train))
			continue
		}
		for _, lr := range grid.LearningRates {
			for _, reg := range grid.Regularizations {
				net, err := New(sizes, cfg)
				if err != nil {
					return nil, err
				}
				opts := TrainOptions{Epochs: 1, MiniBatchSize: batch, LearningRate: lr, Regularization: reg}
				if _, err := net.Train(ctx, train, opts, nil); err != nil {
					return nil, err
				}
				correct, err := net.Accuracy(val)
				if err != nil {
					return nil, errors.Wrap(err, "validation set")
				}
				cfg.Logger.Debug("combination evaluated",
					"batch", batch, "lr", lr, "reg", reg, "accuracy", correct, "total", len(val))

				if best == nil || correct > best.ValidationCorrect {
					best = &SearchResult{
						MiniBatchSize:     batch,
						LearningRate:      lr,
						Regularization:    reg,
						ValidationCorrect: correct,
						ValidationTotal:   len(val),
						Network:           net,
					}
				}
			}
		}
	}
	if best == nil {
		return nil, ErrEmptyGrid
	}

	if len(test) > 0 {
		correct, err := best.Network.Accuracy(test)
		if err != nil {
			return nil, errors.Wrap(err, "test set")
		}
		best.TestCorrect, best.TestTotal = correct, len(test)
	}

	cfg.Logger.Info("hyperparameter search finished",
		"batch", best.MiniBatchSize,
		"lr", best.LearningRate,
		"reg", best.Regularization,
		"validation", best.ValidationCorrect,
		"validationTotal", best.ValidationTotal,
		"test", best.TestCorrect,
		"testTotal", best.TestTotal,
	)
	return best, nil
}
