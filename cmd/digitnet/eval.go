package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/born-ml/digitnet/internal/cnn"
	"github.com/born-ml/digitnet/internal/ffnn"
	"github.com/born-ml/digitnet/internal/serialization"
)

func eval(args []string, stdout io.Writer) error {
	cfg, c, err := parseFlags("eval", args, registerEval)
	if err != nil {
		return err
	}
	if err := requireModel(c); err != nil {
		return err
	}
	logger := newLogger(c.verbose)

	h, err := serialization.Peek(c.model)
	if err != nil {
		return err
	}
	raw, err := loadTest(logger, cfg.Data, cfg.Synthetic, cfg.FFNN.TestSamples, rng(cfg.Seed))
	if err != nil {
		return err
	}

	switch h.Format {
	case serialization.FormatFFNN:
		net, _, err := ffnn.Load(c.model, ffnn.Config{Logger: logger})
		if err != nil {
			return err
		}
		test, err := raw.Vectors()
		if err != nil {
			return err
		}
		for i := range test {
			if test[i].Input, err = net.Standardize(test[i].Input); err != nil {
				return errors.Wrapf(err, "sample %d", i)
			}
		}
		correct, err := net.Accuracy(test)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s: %d / %d (%.2f%%)\n", c.model, correct, len(test), percent(correct, len(test)))

	case serialization.FormatCNN:
		net, _, err := cnn.Load(c.model, cnn.Config{Logger: logger, Parallel: parallelConfig(cfg.Workers)})
		if err != nil {
			return err
		}
		test, err := raw.Grids()
		if err != nil {
			return err
		}
		loss, correct, err := net.Test(test)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s: loss %.4f, %d / %d (%.2f%%)\n", c.model, loss, correct, len(test), percent(correct, len(test)))

	default:
		return errors.Wrapf(serialization.ErrFormatMismatch, "unsupported format %q", h.Format)
	}
	return nil
}

func inspect(args []string, stdout io.Writer) error {
	_, c, err := parseFlags("inspect", args, registerEval)
	if err != nil {
		return err
	}
	if err := requireModel(c); err != nil {
		return err
	}

	h, err := serialization.Peek(c.model)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Format:   %s\n", h.Format)
	fmt.Fprintf(stdout, "Version:  %d\n", h.Version)
	if h.Version == serialization.LegacyVersion {
		fmt.Fprintln(stdout, "          (legacy snapshot without envelope)")
		return nil
	}
	fmt.Fprintf(stdout, "ID:       %s\n", h.ID)
	fmt.Fprintf(stdout, "Created:  %s\n", h.Created.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(stdout, "Checksum: %s\n", h.Checksum)
	for k, v := range h.Metadata {
		fmt.Fprintf(stdout, "Meta:     %s=%s\n", k, v)
	}
	if cp := h.Checkpoint; cp != nil {
		fmt.Fprintf(stdout, "Epoch:    %d (%d samples, lr %g, reg %g, batch %d)\n",
			cp.Epoch, cp.Samples, cp.LearningRate, cp.Regularization, cp.MiniBatchSize)
		if cp.Total > 0 {
			fmt.Fprintf(stdout, "Accuracy: %d / %d (%.2f%%)\n", cp.Correct, cp.Total, percent(cp.Correct, cp.Total))
		}
	}
	return nil
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
