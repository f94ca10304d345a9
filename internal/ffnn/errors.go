package ffnn

import "github.com/pkg/errors"

// Errors returned by network construction, training and evaluation.
var (
	ErrTooFewLayers      = errors.New("ffnn: at least two layers are required")
	ErrBadLayerSize      = errors.New("ffnn: layer sizes must be positive")
	ErrInputShape        = errors.New("ffnn: input shape does not match the input layer")
	ErrTargetShape       = errors.New("ffnn: target shape does not match the output layer")
	ErrEmptyTrainSet     = errors.New("ffnn: training set is empty")
	ErrEmptyTestSet      = errors.New("ffnn: test set is empty")
	ErrNegativeEpochs    = errors.New("ffnn: epochs must not be negative")
	ErrBadSnapshot       = errors.New("ffnn: malformed snapshot")
	ErrStatsShape        = errors.New("ffnn: standardization statistics do not match the input layer")
	ErrEmptyGrid         = errors.New("ffnn: no hyperparameter combination fits the training set")
)
