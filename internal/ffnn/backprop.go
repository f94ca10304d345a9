package ffnn

import (
	"math"

	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/nn"
)

// GradientCheckEpsilon is the perturbation used by GradientCheck.
const GradientCheckEpsilon = 1e-7

// Gradients holds the per-layer cost gradients of one or more samples.
type Gradients struct {
	Biases  []*matrix.Matrix
	Weights []*matrix.Matrix
}

// Backprop computes the cost gradient of a single sample with respect to
// every bias and weight. The network is not modified.
func (n *Network) Backprop(input, target *matrix.Matrix) (Gradients, error) {
	if err := n.checkSample(nn.Sample{Input: input, Target: target}); err != nil {
		return Gradients{}, err
	}
	return n.backprop(input, target), nil
}

func (n *Network) backprop(input, target *matrix.Matrix) Gradients {
	layers := len(n.weights)
	g := Gradients{
		Biases:  make([]*matrix.Matrix, layers),
		Weights: make([]*matrix.Matrix, layers),
	}

	zs, activations := n.forward(input)

	delta := n.loss.OutputError(zs[layers-1], activations[layers], target, n.output)
	g.Biases[layers-1] = delta
	g.Weights[layers-1] = matrix.Must(matrix.Mul(delta, matrix.Transpose(activations[layers-1])))

	for l := layers - 2; l >= 0; l-- {
		delta = matrix.Must(matrix.Mul(matrix.Transpose(n.weights[l+1]), delta)).
			Mul(n.hidden.Derivative(zs[l]))
		g.Biases[l] = delta
		g.Weights[l] = matrix.Must(matrix.Mul(delta, matrix.Transpose(activations[l])))
	}

	return g
}

// GradientCheck estimates the gradient of the configured loss with respect to
// params by centered finite differences and returns the relative error
//
//	‖approx - analytic‖ / (‖approx‖ + ‖analytic‖)
//
// params must be the live Biases() or Weights() of n, and analytic the
// matching half of a Backprop result. Each parameter is perturbed in place and
// restored exactly. A well implemented backprop yields values around 1e-7.
func (n *Network) GradientCheck(analytic, params []*matrix.Matrix, input, target *matrix.Matrix) float64 {
	var analyticSq, approxSq, errSq float64

	for i, p := range params {
		data := p.Data()
		grad := analytic[i].Data()
		for k, original := range data {
			data[k] = original + GradientCheckEpsilon
			plus := n.loss.Fn(n.feedforward(input), target)

			data[k] = original - GradientCheckEpsilon
			minus := n.loss.Fn(n.feedforward(input), target)

			data[k] = original

			approx := (plus - minus) / (2 * GradientCheckEpsilon)
			analyticSq += grad[k] * grad[k]
			approxSq += approx * approx
			errSq += (approx - grad[k]) * (approx - grad[k])
		}
	}

	denom := math.Sqrt(approxSq) + math.Sqrt(analyticSq)
	if denom == 0 {
		return 0
	}
	return math.Sqrt(errSq) / denom
}
