package optim

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/fitlab/internal/nn"
	"github.com/born-ml/fitlab/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²
//	m_hat = m_t / (1 - beta1^t)
//	v_hat = v_t / (1 - beta2^t)
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam[B tensor.Backend] struct {
	params []*nn.Parameter[B]
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int                            // timestep for bias correction
	m      map[*nn.Parameter[B]][]float64 // first moment estimates
	v      map[*nn.Parameter[B]][]float64 // second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Running average coefficients (default: [0.9, 0.999])
	Eps   float64    // Numerical stability term (default: 1e-8)
}

// NewAdam creates a new Adam optimizer. Zero fields take the defaults.
func NewAdam[B tensor.Backend](params []*nn.Parameter[B], config AdamConfig) *Adam[B] {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam[B]{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      make(map[*nn.Parameter[B]][]float64),
		v:      make(map[*nn.Parameter[B]][]float64),
	}
}

// Step performs a single optimization step.
func (a *Adam[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	a.t++
	bc1 := 1 - math.Pow(a.beta1, float64(a.t))
	bc2 := 1 - math.Pow(a.beta2, float64(a.t))

	for _, param := range a.params {
		grad := getGradient(param, grads)
		if grad == nil {
			continue
		}
		p := param.Tensor().Data()
		g := grad.Data()

		m, ok := a.m[param]
		if !ok {
			m = make([]float64, len(p))
			a.m[param] = m
			a.v[param] = make([]float64, len(p))
		}
		v := a.v[param]

		floats.Scale(a.beta1, m)
		floats.AddScaled(m, 1-a.beta1, g)

		floats.Scale(a.beta2, v)
		for i, gi := range g {
			v[i] += (1 - a.beta2) * gi * gi
		}

		for i := range p {
			mHat := m[i] / bc1
			vHat := v[i] / bc2
			p[i] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
		}
	}
}

// ZeroGrad clears all parameter gradients.
func (a *Adam[B]) ZeroGrad() {
	zeroGrads(a.params)
}

// GetLR returns the current learning rate.
func (a *Adam[B]) GetLR() float64 {
	return a.lr
}

// SetLR sets the learning rate.
func (a *Adam[B]) SetLR(lr float64) {
	a.lr = lr
}
