package main

import (
	"log/slog"
	"math/rand"
	"os"

	"github.com/pkg/errors"

	"github.com/born-ml/digitnet/internal/dataset"
)

// syntheticSamples is the training set size used with -synthetic when no
// sample limit is given.
const syntheticSamples = 1000

// loadData returns the raw training and test sets: generated images with
// -synthetic, the MNIST train and t10k splits otherwise.
func loadData(logger *slog.Logger, dataDir string, synthetic bool, trainN, testN int, r *rand.Rand) (train, test *dataset.Raw, err error) {
	if synthetic {
		if trainN <= 0 {
			trainN = syntheticSamples
		}
		if testN <= 0 {
			testN = syntheticSamples / 5
		}
		logger.Info("using synthetic data", "train", trainN, "test", testN)
		return dataset.Synthetic(trainN, 28, 28, r), dataset.Synthetic(testN, 28, 28, r), nil
	}

	logger.Info("loading MNIST", "dir", dataDir)
	train, err = dataset.LoadMNIST(dataDir, dataset.Train, trainN)
	if err != nil {
		return nil, nil, missingHint(err)
	}
	test, err = dataset.LoadMNIST(dataDir, dataset.Test, testN)
	if err != nil {
		return nil, nil, missingHint(err)
	}
	logger.Info("loaded MNIST", "train", train.Len(), "test", test.Len(), "rows", train.Rows, "cols", train.Cols)
	return train, test, nil
}

// loadTest returns only the test set.
func loadTest(logger *slog.Logger, dataDir string, synthetic bool, testN int, r *rand.Rand) (*dataset.Raw, error) {
	if synthetic {
		if testN <= 0 {
			testN = syntheticSamples / 5
		}
		logger.Info("using synthetic data", "test", testN)
		return dataset.Synthetic(testN, 28, 28, r), nil
	}
	test, err := dataset.LoadMNIST(dataDir, dataset.Test, testN)
	if err != nil {
		return nil, missingHint(err)
	}
	return test, nil
}

func missingHint(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "MNIST files not found; download train-images-idx3-ubyte.gz, "+
			"train-labels-idx1-ubyte.gz, t10k-images-idx3-ubyte.gz and t10k-labels-idx1-ubyte.gz "+
			"into the data directory, or run with -synthetic")
	}
	return err
}
