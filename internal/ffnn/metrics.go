package ffnn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/digitnet/internal/nn"
)

// Accuracy returns how many samples are classified correctly, comparing the
// argmax of the output with the argmax of the target.
func (n *Network) Accuracy(test []nn.Sample) (int, error) {
	if len(test) == 0 {
		return 0, ErrEmptyTestSet
	}
	if err := n.checkSamples(test); err != nil {
		return 0, err
	}
	return n.accuracy(test), nil
}

func (n *Network) accuracy(test []nn.Sample) int {
	var correct int
	for _, s := range test {
		if n.feedforward(s.Input).ArgMax() == s.Label() {
			correct++
		}
	}
	return correct
}

// TrainCost returns the mean loss over data plus the L2 penalty
// 0.5·(λ/n)·Σw², together with the number of correctly classified samples.
func (n *Network) TrainCost(data []nn.Sample, regularization float64) (cost float64, correct int, err error) {
	if len(data) == 0 {
		return 0, 0, errors.Wrap(ErrEmptyTestSet, "cost data")
	}
	if err := n.checkSamples(data); err != nil {
		return 0, 0, err
	}
	cost, correct = n.trainCost(data, regularization)
	return cost, correct, nil
}

func (n *Network) trainCost(data []nn.Sample, regularization float64) (float64, int) {
	size := float64(len(data))
	var cost float64
	var correct int
	for _, s := range data {
		out := n.feedforward(s.Input)
		if out.ArgMax() == s.Label() {
			correct++
		}
		cost += n.loss.Fn(out, s.Target) / size
	}
	cost += 0.5 * (regularization / size) * n.sumSquares()
	return cost, correct
}
