package main

import (
	"flag"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/born-ml/digitnet/internal/config"
	"github.com/born-ml/digitnet/internal/parallel"
)

// common holds the flags that are not part of config.Config.
type common struct {
	configPath string
	out        string
	model      string
	verbose    bool
}

type registerFunc func(fs *flag.FlagSet, cfg *config.Config, c *common)

// parseFlags parses args into a configuration. Values from -config are
// loaded first and explicitly given flags override them.
func parseFlags(name string, args []string, register registerFunc) (config.Config, common, error) {
	cfg := config.Default()
	var c common
	if err := newFlagSet(name, &cfg, &c, register).Parse(args); err != nil {
		return config.Config{}, common{}, err
	}

	if c.configPath != "" {
		fileCfg, err := config.Load(c.configPath)
		if err != nil {
			return config.Config{}, common{}, err
		}
		cfg = fileCfg
		if err := newFlagSet(name, &cfg, &c, register).Parse(args); err != nil {
			return config.Config{}, common{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, common{}, err
	}
	return cfg, c, nil
}

func newFlagSet(name string, cfg *config.Config, c *common, register registerFunc) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&c.configPath, "config", c.configPath, "YAML configuration file; flags override its values")
	fs.StringVar(&cfg.Data, "data", cfg.Data, "Directory containing MNIST data files")
	fs.BoolVar(&cfg.Synthetic, "synthetic", cfg.Synthetic, "Use synthetic data (for testing without MNIST files)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 = time based)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Parallel workers (0 = one per core, 1 = sequential)")
	fs.BoolVar(&c.verbose, "v", c.verbose, "Verbose (debug) logging")
	register(fs, cfg, c)
	return fs
}

func registerFFNN(fs *flag.FlagSet, cfg *config.Config, c *common) {
	f := &cfg.FFNN
	fs.IntVar(&f.TrainSamples, "samples", f.TrainSamples, "Max training samples to load (0 = all)")
	fs.IntVar(&f.TestSamples, "test-samples", f.TestSamples, "Max test samples to load (0 = all)")
	fs.IntVar(&f.Epochs, "epochs", f.Epochs, "Number of training epochs")
	fs.IntVar(&f.MiniBatchSize, "batch", f.MiniBatchSize, "Mini-batch size")
	fs.Float64Var(&f.LearningRate, "lr", f.LearningRate, "Learning rate")
	fs.Float64Var(&f.Regularization, "reg", f.Regularization, "L2 regularization")
	fs.Float64Var(&f.Momentum, "momentum", f.Momentum, "Momentum (0 = plain SGD)")
	fs.BoolVar(&f.Standardize, "standardize", f.Standardize, "Standardize inputs with training set statistics")
	fs.BoolVar(&f.Search, "search", f.Search, "Grid search mini-batch size, learning rate and regularization")
	fs.BoolVar(&f.LogMiniBatchAccuracy, "log-batch-accuracy", f.LogMiniBatchAccuracy, "Log test accuracy after every mini-batch")
	fs.BoolVar(&f.LogMiniBatchCost, "log-batch-cost", f.LogMiniBatchCost, "Log training cost after every mini-batch")
	fs.BoolVar(&f.CheckGradients, "check-gradients", f.CheckGradients, "Log a numerical gradient check for every sample (slow)")
	fs.StringVar(&c.out, "out", c.out, "Save the trained network to this file")
}

func registerCNN(fs *flag.FlagSet, cfg *config.Config, c *common) {
	n := &cfg.CNN
	fs.IntVar(&n.TrainSamples, "samples", n.TrainSamples, "Max training samples to load (0 = all)")
	fs.IntVar(&n.TestSamples, "test-samples", n.TestSamples, "Max test samples to load (0 = all)")
	fs.IntVar(&n.Epochs, "epochs", n.Epochs, "Number of training epochs")
	fs.Float64Var(&n.LearningRate, "lr", n.LearningRate, "Learning rate")
	fs.IntVar(&n.NumFilters, "filters", n.NumFilters, "Number of convolution filters")
	fs.StringVar(&c.out, "out", c.out, "Save the trained network to this file")
}

func registerEval(fs *flag.FlagSet, cfg *config.Config, c *common) {
	fs.IntVar(&cfg.FFNN.TestSamples, "samples", cfg.FFNN.TestSamples, "Max test samples to load (0 = all)")
	fs.StringVar(&c.model, "model", c.model, "Saved network file")
}

// rng returns a random source seeded from seed, or from the clock for 0.
func rng(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// parallelConfig maps the workers setting onto a parallel.Config.
func parallelConfig(workers int) parallel.Config {
	switch workers {
	case 0:
		return parallel.DefaultConfig()
	case 1:
		return parallel.Sequential
	default:
		cfg := parallel.DefaultConfig()
		cfg.Enabled, cfg.NumWorkers = true, workers
		return cfg
	}
}

func requireModel(c common) error {
	if c.model == "" {
		return errors.New("-model is required")
	}
	return nil
}
