// Package config loads digitnet training configuration from YAML files.
//
// A file only needs the keys it changes; everything else keeps the values of
// Default. Example:
//
//	data: ./data
//	seed: 42
//	ffnn:
//	  sizes: [784, 100, 10]
//	  epochs: 30
//	  learningRate: 0.1
//	cnn:
//	  numFilters: 8
//	  learningRate: 0.005
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/digitnet/internal/nn"
)

// ErrInvalid is returned for configurations that fail validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the complete training configuration.
type Config struct {
	Data      string `yaml:"data"`      // Directory holding the MNIST IDX files
	Synthetic bool   `yaml:"synthetic"` // Use generated images instead of Data
	Seed      int64  `yaml:"seed"`      // Random seed, 0 seeds from the clock
	Workers   int    `yaml:"workers"`   // Parallel workers, 0 for one per core, 1 for sequential

	FFNN FFNN `yaml:"ffnn"`
	CNN  CNN  `yaml:"cnn"`
}

// FFNN configures the fully connected network and its training run.
type FFNN struct {
	Sizes  []int  `yaml:"sizes"`
	Hidden string `yaml:"hidden"`
	Output string `yaml:"output"`
	Loss   string `yaml:"loss"`

	TrainSamples int `yaml:"trainSamples"`
	TestSamples  int `yaml:"testSamples"`

	Epochs         int     `yaml:"epochs"`
	MiniBatchSize  int     `yaml:"miniBatchSize"`
	LearningRate   float64 `yaml:"learningRate"`
	Regularization float64 `yaml:"regularization"`
	Momentum       float64 `yaml:"momentum"`

	Standardize          bool `yaml:"standardize"`
	Search               bool `yaml:"search"`
	LogMiniBatchAccuracy bool `yaml:"logMiniBatchAccuracy"`
	LogMiniBatchCost     bool `yaml:"logMiniBatchCost"`
	CheckGradients       bool `yaml:"checkGradients"`
}

// CNN configures the convolutional network and its training run.
type CNN struct {
	TrainSamples int `yaml:"trainSamples"`
	TestSamples  int `yaml:"testSamples"`

	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learningRate"`

	NumFilters  int `yaml:"numFilters"`
	FilterSize  int `yaml:"filterSize"`
	PoolSize    int `yaml:"poolSize"`
	ReportEvery int `yaml:"reportEvery"`
}

// Default returns the configuration of a short MNIST run.
func Default() Config {
	return Config{
		Data: "./data",
		FFNN: FFNN{
			Sizes:          []int{784, 30, 10},
			Hidden:         nn.ReLU{}.Name(),
			Output:         nn.Softmax{}.Name(),
			Loss:           nn.BinaryCrossEntropy{}.Name(),
			TrainSamples:   300,
			TestSamples:    100,
			Epochs:         1,
			MiniBatchSize:  10,
			LearningRate:   0.03,
			Regularization: 1.0,
		},
		CNN: CNN{
			TrainSamples: 1000,
			TestSamples:  1000,
			Epochs:       1,
			LearningRate: 0.005,
			NumFilters:   8,
			FilterSize:   3,
			PoolSize:     2,
			ReportEvery:  100,
		},
	}
}

// Load reads the YAML file at path on top of Default.
func Load(path string) (Config, error) {
	//nolint:gosec // G304: path is the user's configuration file
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "config: open")
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load %s", path)
	}
	return cfg, nil
}

// Decode reads YAML from r on top of Default. Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, errors.Wrap(err, "config: read")
	}
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "config: decode")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as YAML.
func Encode(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return errors.Wrap(err, "config: encode")
	}
	return errors.Wrap(enc.Close(), "config: encode")
}

// Validate checks value ranges and strategy names.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return errors.Wrapf(ErrInvalid, "workers %d", c.Workers)
	}
	if err := c.FFNN.validate(); err != nil {
		return errors.Wrap(err, "ffnn")
	}
	return errors.Wrap(c.CNN.validate(), "cnn")
}

func (f FFNN) validate() error {
	if len(f.Sizes) < 2 {
		return errors.Wrapf(ErrInvalid, "sizes %v: need input and output layers", f.Sizes)
	}
	for _, s := range f.Sizes {
		if s <= 0 {
			return errors.Wrapf(ErrInvalid, "sizes %v", f.Sizes)
		}
	}
	switch {
	case f.TrainSamples < 0, f.TestSamples < 0:
		return errors.Wrapf(ErrInvalid, "samples %d/%d", f.TrainSamples, f.TestSamples)
	case f.Epochs < 0:
		return errors.Wrapf(ErrInvalid, "epochs %d", f.Epochs)
	case f.MiniBatchSize <= 0:
		return errors.Wrapf(ErrInvalid, "miniBatchSize %d", f.MiniBatchSize)
	case f.LearningRate <= 0:
		return errors.Wrapf(ErrInvalid, "learningRate %g", f.LearningRate)
	case f.Regularization < 0:
		return errors.Wrapf(ErrInvalid, "regularization %g", f.Regularization)
	case f.Momentum < 0 || f.Momentum >= 1:
		return errors.Wrapf(ErrInvalid, "momentum %g", f.Momentum)
	}
	for _, name := range []string{f.Hidden, f.Output} {
		if _, err := nn.ActivationByName(name); err != nil {
			return err
		}
	}
	_, err := nn.LossByName(f.Loss)
	return err
}

func (c CNN) validate() error {
	switch {
	case c.TrainSamples < 0, c.TestSamples < 0:
		return errors.Wrapf(ErrInvalid, "samples %d/%d", c.TrainSamples, c.TestSamples)
	case c.Epochs < 0:
		return errors.Wrapf(ErrInvalid, "epochs %d", c.Epochs)
	case c.LearningRate <= 0:
		return errors.Wrapf(ErrInvalid, "learningRate %g", c.LearningRate)
	case c.NumFilters <= 0, c.FilterSize <= 0, c.PoolSize <= 0, c.ReportEvery <= 0:
		return errors.Wrapf(ErrInvalid, "numFilters %d, filterSize %d, poolSize %d, reportEvery %d",
			c.NumFilters, c.FilterSize, c.PoolSize, c.ReportEvery)
	}
	return nil
}

// Activations resolves the FFNN strategy names.
func (f FFNN) Activations() (hidden, output nn.Activation, loss nn.Loss, err error) {
	if hidden, err = nn.ActivationByName(f.Hidden); err != nil {
		return nil, nil, nil, err
	}
	if output, err = nn.ActivationByName(f.Output); err != nil {
		return nil, nil, nil, err
	}
	if loss, err = nn.LossByName(f.Loss); err != nil {
		return nil, nil, nil, err
	}
	return hidden, output, loss, nil
}
