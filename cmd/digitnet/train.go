package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/born-ml/digitnet/internal/cnn"
	"github.com/born-ml/digitnet/internal/config"
	"github.com/born-ml/digitnet/internal/dataset"
	"github.com/born-ml/digitnet/internal/ffnn"
	"github.com/born-ml/digitnet/internal/nn"
	"github.com/born-ml/digitnet/internal/parallel"
	"github.com/born-ml/digitnet/internal/serialization"
)

// searchValidation is the fraction of the training set held out for
// validation during a hyperparameter search.
const searchValidation = 0.2

func logCPU(logger *slog.Logger, workers int) {
	cpu := parallel.DetectCPU()
	logger.Info("cpu",
		"brand", cpu.Brand,
		"physical", cpu.PhysicalCores,
		"logical", cpu.LogicalCores,
		"avx2", cpu.AVX2,
		"avx512", cpu.AVX512,
		"workers", workers,
	)
}

func trainFFNN(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, c, err := parseFlags("train-ffnn", args, registerFFNN)
	if err != nil {
		return err
	}
	logger := newLogger(c.verbose)
	par := parallelConfig(cfg.Workers)
	logCPU(logger, par.NumWorkers)
	r := rng(cfg.Seed)

	rawTrain, rawTest, err := loadData(logger, cfg.Data, cfg.Synthetic, cfg.FFNN.TrainSamples, cfg.FFNN.TestSamples, r)
	if err != nil {
		return err
	}
	train, err := rawTrain.Vectors()
	if err != nil {
		return errors.Wrap(err, "training set")
	}
	test, err := rawTest.Vectors()
	if err != nil {
		return errors.Wrap(err, "test set")
	}

	hidden, output, loss, err := cfg.FFNN.Activations()
	if err != nil {
		return err
	}
	netCfg := ffnn.Config{
		Hidden:   hidden,
		Output:   output,
		Loss:     loss,
		Rand:     r,
		Logger:   logger,
		Parallel: par,
	}

	var prepare func(*ffnn.Network) error
	if cfg.FFNN.Standardize {
		mean, std, err := dataset.Standardization(train)
		if err != nil {
			return err
		}
		if err := dataset.ApplyStandardization(train, mean, std); err != nil {
			return err
		}
		if err := dataset.ApplyStandardization(test, mean, std); err != nil {
			return err
		}
		logger.Debug("standardized inputs")
		prepare = func(n *ffnn.Network) error {
			return n.SetStandardization(mean, std)
		}
	}
	return runFFNN(ctx, cfg.FFNN, netCfg, c.out, train, test, stdout, prepare)
}

// runFFNN trains or searches a network. prepare, when set, is applied to
// every network before it is saved.
func runFFNN(ctx context.Context, fc config.FFNN, netCfg ffnn.Config, out string, train, test []nn.Sample, stdout io.Writer, prepare func(*ffnn.Network) error) error {
	if fc.Search {
		return searchFFNN(ctx, fc, netCfg, out, train, test, stdout, prepare)
	}

	net, err := ffnn.New(fc.Sizes, netCfg)
	if err != nil {
		return err
	}
	if prepare != nil {
		if err := prepare(net); err != nil {
			return err
		}
	}

	opts := ffnn.TrainOptions{
		Epochs:               fc.Epochs,
		MiniBatchSize:        fc.MiniBatchSize,
		LearningRate:         fc.LearningRate,
		Regularization:       fc.Regularization,
		Momentum:             fc.Momentum,
		LogMiniBatchAccuracy: fc.LogMiniBatchAccuracy,
		LogMiniBatchCost:     fc.LogMiniBatchCost,
		CheckGradients:       fc.CheckGradients,
	}
	if out != "" {
		opts.Checkpoint = func(epoch int, n *ffnn.Network) error {
			meta := &serialization.CheckpointMeta{
				Epoch:          epoch,
				Samples:        len(train),
				LearningRate:   fc.LearningRate,
				Regularization: fc.Regularization,
				MiniBatchSize:  fc.MiniBatchSize,
			}
			if len(test) > 0 {
				correct, err := n.Accuracy(test)
				if err != nil {
					return err
				}
				meta.Correct, meta.Total = correct, len(test)
			}
			h, err := n.Save(out, meta)
			if err != nil {
				return err
			}
			netCfg.Logger.Debug("checkpoint saved", "path", out, "id", h.ID, "epoch", epoch)
			return nil
		}
	}

	stats, err := net.Train(ctx, train, opts, test)
	if err != nil {
		return err
	}

	for _, st := range stats {
		fmt.Fprintf(stdout, "Epoch %d: %d / %d (%.2f%%) in %s\n",
			st.Epoch, st.Correct, st.Total, 100*st.Accuracy(), st.Elapsed.Round(time.Millisecond))
	}
	if out != "" {
		fmt.Fprintf(stdout, "Saved network to %s\n", out)
	}
	return nil
}

func searchFFNN(ctx context.Context, fc config.FFNN, netCfg ffnn.Config, out string, train, test []nn.Sample, stdout io.Writer, prepare func(*ffnn.Network) error) error {
	fit, val, err := dataset.Split(train, searchValidation)
	if err != nil {
		return err
	}
	res, err := ffnn.SearchHyperparameters(ctx, fc.Sizes, fit, val, test, ffnn.DefaultSearchGrid(), netCfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Best: batch %d, lr %g, reg %g: validation %d / %d, test %d / %d\n",
		res.MiniBatchSize, res.LearningRate, res.Regularization,
		res.ValidationCorrect, res.ValidationTotal, res.TestCorrect, res.TestTotal)

	if out == "" {
		return nil
	}
	if prepare != nil {
		if err := prepare(res.Network); err != nil {
			return err
		}
	}
	_, err = res.Network.Save(out, &serialization.CheckpointMeta{
		Epoch:          1,
		Samples:        len(fit),
		LearningRate:   res.LearningRate,
		Regularization: res.Regularization,
		MiniBatchSize:  res.MiniBatchSize,
		Correct:        res.TestCorrect,
		Total:          res.TestTotal,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Saved network to %s\n", out)
	return nil
}

func trainCNN(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, c, err := parseFlags("train-cnn", args, registerCNN)
	if err != nil {
		return err
	}
	logger := newLogger(c.verbose)
	par := parallelConfig(cfg.Workers)
	logCPU(logger, par.NumWorkers)
	r := rng(cfg.Seed)

	rawTrain, rawTest, err := loadData(logger, cfg.Data, cfg.Synthetic, cfg.CNN.TrainSamples, cfg.CNN.TestSamples, r)
	if err != nil {
		return err
	}
	train, err := rawTrain.Grids()
	if err != nil {
		return errors.Wrap(err, "training set")
	}
	test, err := rawTest.Grids()
	if err != nil {
		return errors.Wrap(err, "test set")
	}

	net, err := cnn.New(cnn.Config{
		NumFilters:  cfg.CNN.NumFilters,
		FilterSize:  cfg.CNN.FilterSize,
		PoolSize:    cfg.CNN.PoolSize,
		InputRows:   rawTrain.Rows,
		InputCols:   rawTrain.Cols,
		NumClasses:  dataset.NumClasses,
		ReportEvery: cfg.CNN.ReportEvery,
		Rand:        r,
		Logger:      logger,
		Parallel:    par,
	})
	if err != nil {
		return err
	}

	stats, err := net.Train(ctx, train, cfg.CNN.Epochs, cfg.CNN.LearningRate, test)
	if err != nil {
		return err
	}
	for _, st := range stats {
		fmt.Fprintf(stdout, "Epoch %d: train loss %.3f, accuracy %.2f%%; test loss %.3f, accuracy %d / %d (%.2f%%) in %s\n",
			st.Epoch, st.Loss, 100*st.Accuracy(), st.TestLoss, st.TestCorrect, st.TestTotal,
			100*st.TestAccuracy(), st.Elapsed.Round(time.Millisecond))
	}

	if c.out == "" {
		return nil
	}
	meta := &serialization.CheckpointMeta{
		Epoch:        len(stats),
		Samples:      len(train),
		LearningRate: cfg.CNN.LearningRate,
	}
	if n := len(stats); n > 0 {
		meta.Correct, meta.Total = stats[n-1].TestCorrect, stats[n-1].TestTotal
	}
	if _, err := net.Save(c.out, meta); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Saved network to %s\n", c.out)
	return nil
}
