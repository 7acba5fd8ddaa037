package optim

import (
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/fitlab/internal/nn"
	"github.com/born-ml/fitlab/internal/tensor"
)

// SGD implements Stochastic Gradient Descent with optional momentum and
// L2 weight decay.
//
// Update rule:
//
//	g = gradient + weight_decay * param
//	velocity = momentum * velocity + g
//	param = param - lr * velocity
//
// With zero momentum this is plain gradient descent: param -= lr * g.
type SGD[B tensor.Backend] struct {
	params      []*nn.Parameter[B]
	lr          float64
	momentum    float64
	weightDecay float64
	velocities  map[*nn.Parameter[B]][]float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR          float64 // Learning rate (default: 0.01)
	Momentum    float64 // Momentum factor in [0, 1) (default: 0)
	WeightDecay float64 // L2 penalty (default: 0)
}

// NewSGD creates a new SGD optimizer.
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], config SGDConfig) *SGD[B] {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD[B]{
		params:      params,
		lr:          config.LR,
		momentum:    config.Momentum,
		weightDecay: config.WeightDecay,
		velocities:  make(map[*nn.Parameter[B]][]float64),
	}
}

// Step performs a single optimization step.
func (s *SGD[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	for _, param := range s.params {
		grad := getGradient(param, grads)
		if grad == nil {
			continue
		}

		p := param.Tensor().Data()
		g := grad.Data()
		if s.weightDecay != 0 {
			g = floats.AddScaledTo(make([]float64, len(g)), g, s.weightDecay, p)
		}

		if s.momentum == 0 {
			floats.AddScaled(p, -s.lr, g)
			continue
		}

		v, ok := s.velocities[param]
		if !ok {
			v = make([]float64, len(p))
			s.velocities[param] = v
		}
		floats.Scale(s.momentum, v)
		floats.Add(v, g)
		floats.AddScaled(p, -s.lr, v)
	}
}

// ZeroGrad clears all parameter gradients.
func (s *SGD[B]) ZeroGrad() {
	zeroGrads(s.params)
}

// GetLR returns the current learning rate.
func (s *SGD[B]) GetLR() float64 {
	return s.lr
}

// SetLR sets the learning rate.
func (s *SGD[B]) SetLR(lr float64) {
	s.lr = lr
}
