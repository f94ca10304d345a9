package optim

import (
	"github.com/born-ml/digitnet/internal/matrix"
)

// SGD implements mini-batch stochastic gradient descent with L2 weight decay.
//
// Update rule without momentum, for a mini-batch of m samples out of a
// training set of n:
//
//	bias   = bias - (lr/m)·∇b
//	weight = weight·(1 - lr·λ/n) - (lr/m)·∇W
//
// The decay is applied multiplicatively before the gradient step and never to
// biases.
//
// With momentum μ each parameter keeps a velocity:
//
//	velocity = μ·velocity + ∇/m
//	param    = decay(param) - lr·velocity
//
// With μ = 0 both rules coincide.
type SGD struct {
	lr             float64
	regularization float64
	trainSize      int
	momentum       float64
	velocities     map[*matrix.Matrix]*matrix.Matrix
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR             float64 // Learning rate η
	Regularization float64 // L2 coefficient λ (0 disables decay)
	TrainSize      int     // Size n of the full training set, scales the decay
	Momentum       float64 // Momentum factor μ in [0, 1), default 0
}

// NewSGD creates an SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.TrainSize <= 0 {
		config.TrainSize = 1
	}
	return &SGD{
		lr:             config.LR,
		regularization: config.Regularization,
		trainSize:      config.TrainSize,
		momentum:       config.Momentum,
		velocities:     make(map[*matrix.Matrix]*matrix.Matrix),
	}
}

// StepWeights applies decay and the averaged gradient step to w in place.
// grad holds the gradient summed over batchSize samples and is not modified.
func (s *SGD) StepWeights(w, grad *matrix.Matrix, batchSize int) {
	w.Scale(s.Decay())
	s.step(w, grad, batchSize)
}

// StepBias applies the averaged gradient step to b in place, without decay.
func (s *SGD) StepBias(b, grad *matrix.Matrix, batchSize int) {
	s.step(b, grad, batchSize)
}

// Decay returns the multiplicative weight-decay factor 1 - lr·λ/n.
func (s *SGD) Decay() float64 {
	return 1 - s.lr*s.regularization/float64(s.trainSize)
}

func (s *SGD) step(param, grad *matrix.Matrix, batchSize int) {
	if s.momentum == 0 {
		param.Sub(grad.Clone().Scale(s.lr / float64(batchSize)))
		return
	}

	velocity, ok := s.velocities[param]
	if !ok {
		velocity = matrix.New(param.Rows(), param.Cols())
		s.velocities[param] = velocity
	}
	velocity.Scale(s.momentum).Add(grad.Clone().DivScalar(float64(batchSize)))
	param.Sub(velocity.Clone().Scale(s.lr))
}

// LR returns the current learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// GradientDescent performs param -= lr·grad in place. grad is not modified.
func GradientDescent(param, grad *matrix.Matrix, lr float64) {
	param.Sub(grad.Clone().Scale(lr))
}
