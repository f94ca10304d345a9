package nn

import (
	"sort"

	"github.com/pkg/errors"
)

// Lookup errors.
var (
	ErrUnknownActivation = errors.New("nn: unknown activation")
	ErrUnknownLoss       = errors.New("nn: unknown loss")
)

var activations = map[string]Activation{
	Sigmoid{}.Name():   Sigmoid{},
	ReLU{}.Name():      ReLU{},
	LeakyReLU{}.Name(): LeakyReLU{},
	Softmax{}.Name():   Softmax{},
}

var losses = map[string]Loss{
	Quadratic{}.Name():               Quadratic{},
	BinaryCrossEntropy{}.Name():      BinaryCrossEntropy{},
	CategoricalCrossEntropy{}.Name(): CategoricalCrossEntropy{},
}

// ActivationByName returns the activation registered under name.
func ActivationByName(name string) (Activation, error) {
	a, ok := activations[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownActivation, "%q (known: %v)", name, ActivationNames())
	}
	return a, nil
}

// LossByName returns the loss registered under name.
func LossByName(name string) (Loss, error) {
	l, ok := losses[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownLoss, "%q (known: %v)", name, LossNames())
	}
	return l, nil
}

// ActivationNames lists the registered activation names in sorted order.
func ActivationNames() []string {
	return sortedKeys(activations)
}

// LossNames lists the registered loss names in sorted order.
func LossNames() []string {
	return sortedKeys(losses)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
