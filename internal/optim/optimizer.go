// Package optim implements optimization algorithms for training networks.
//
// This package provides:
//   - Optimizer interface: base interface for all optimizers
//   - SGD: stochastic gradient descent with momentum and weight decay
//   - Adam: adaptive moment estimation
//   - New: builds either one from a Config
//
// Example usage:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.01})
//
//	backend.Tape().StartRecording()
//	loss := lossFunc.Forward(model.Forward(input), targets)
//	grads := autodiff.Backward(loss, backend)
//	optimizer.Step(grads)
//	optimizer.ZeroGrad()
package optim

import (
	"fmt"
	"strings"

	"github.com/born-ml/fitlab/internal/nn"
	"github.com/born-ml/fitlab/internal/tensor"
)

// ErrInvalidArgument is returned by New for unknown kinds or bad hyperparameters.
var ErrInvalidArgument = tensor.ErrInvalidArgument

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies gradient updates to all parameters in place.
	//
	// grads is the map returned by autodiff.Backward. Parameters without an
	// entry did not take part in the forward pass and are left unchanged.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// ZeroGrad clears all parameter gradients.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64
}

// Kind selects an optimizer implementation.
type Kind string

// Supported optimizers.
const (
	KindSGD  Kind = "sgd"
	KindAdam Kind = "adam"
)

// Config describes any supported optimizer. Fields that do not apply to
// Kind are ignored. Zero values take the optimizer defaults.
type Config struct {
	Kind        Kind    `yaml:"kind"`
	LR          float64 `yaml:"lr"`
	Momentum    float64 `yaml:"momentum"`
	WeightDecay float64 `yaml:"weight_decay"`
	Beta1       float64 `yaml:"beta1"`
	Beta2       float64 `yaml:"beta2"`
	Eps         float64 `yaml:"eps"`
}

// New builds the optimizer described by cfg for params.
func New[B tensor.Backend](params []*nn.Parameter[B], cfg Config) (Optimizer, error) {
	if cfg.LR < 0 {
		return nil, fmt.Errorf("optimizer: negative learning rate %g: %w", cfg.LR, ErrInvalidArgument)
	}
	switch Kind(strings.ToLower(string(cfg.Kind))) {
	case KindSGD, "":
		if cfg.Momentum < 0 || cfg.Momentum >= 1 {
			return nil, fmt.Errorf("sgd: momentum %g outside [0, 1): %w", cfg.Momentum, ErrInvalidArgument)
		}
		return NewSGD(params, SGDConfig{LR: cfg.LR, Momentum: cfg.Momentum, WeightDecay: cfg.WeightDecay}), nil
	case KindAdam:
		for i, b := range []float64{cfg.Beta1, cfg.Beta2} {
			if b < 0 || b >= 1 {
				return nil, fmt.Errorf("adam: beta%d %g outside [0, 1): %w", i+1, b, ErrInvalidArgument)
			}
		}
		if cfg.Eps < 0 {
			return nil, fmt.Errorf("adam: negative eps %g: %w", cfg.Eps, ErrInvalidArgument)
		}
		return NewAdam(params, AdamConfig{LR: cfg.LR, Betas: [2]float64{cfg.Beta1, cfg.Beta2}, Eps: cfg.Eps}), nil
	default:
		return nil, fmt.Errorf("unknown optimizer %q: %w", cfg.Kind, ErrInvalidArgument)
	}
}

// getGradient returns the gradient for param, or nil if it has none.
// A found gradient is also attached to param until the next ZeroGrad.
func getGradient[B tensor.Backend](param *nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) *tensor.RawTensor {
	if param == nil {
		return nil
	}
	grad := grads[param.Tensor().Raw()]
	if grad != nil {
		param.SetGrad(tensor.New(grad, param.Tensor().Backend()))
	}
	return grad
}

// zeroGrads clears the gradient of every parameter.
func zeroGrads[B tensor.Backend](params []*nn.Parameter[B]) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
