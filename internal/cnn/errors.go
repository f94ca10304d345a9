package cnn

import "github.com/pkg/errors"

// Errors returned by the layers and the network.
var (
	ErrBadConfig     = errors.New("cnn: invalid configuration")
	ErrImageTooSmall = errors.New("cnn: image is smaller than the filter")
	ErrInputShape    = errors.New("cnn: input shape does not match the network")
	ErrNoForward     = errors.New("cnn: backprop called before forward")
	ErrEmptyTrainSet = errors.New("cnn: training set is empty")
	ErrEmptyTestSet  = errors.New("cnn: test set is empty")
	ErrBadSnapshot   = errors.New("cnn: malformed snapshot")
)
