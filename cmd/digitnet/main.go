// Package main provides the digitnet CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
)

const version = "v0.1.0"

const usage = `digitnet - handwritten digit classifiers

Usage:
  digitnet <command> [flags]

Commands:
  train-ffnn   Train the fully connected network
  train-cnn    Train the convolutional network
  eval         Evaluate a saved network
  inspect      Show the header of a saved network
  version      Show version

Run "digitnet <command> -h" for the flags of a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "digitnet: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string, stdout io.Writer) error {
	switch cmd {
	case "train-ffnn":
		return trainFFNN(ctx, args, stdout)
	case "train-cnn":
		return trainCNN(ctx, args, stdout)
	case "eval":
		return eval(args, stdout)
	case "inspect":
		return inspect(args, stdout)
	case "version", "-version", "--version":
		fmt.Fprintf(stdout, "digitnet %s\n", version)
		return nil
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		return errors.Errorf("unknown command %q, run \"digitnet help\"", cmd)
	}
}

// newLogger returns a text logger on stderr. verbose enables debug records.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
