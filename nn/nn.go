// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/fitlab/internal/nn"
	"github.com/born-ml/fitlab/internal/tensor"
)

// ErrInvalidArgument is wrapped by constructor errors.
var ErrInvalidArgument = nn.ErrInvalidArgument

// Module interface defines the common interface for all network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a trainable parameter in a network.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Initializer is the seeded random source for parameter initialization.
type Initializer = nn.Initializer

// NewInitializer creates an Initializer. Every seed is deterministic.
func NewInitializer(seed int64) *Initializer {
	return nn.NewInitializer(seed)
}

// NewRandomInitializer creates an Initializer seeded from the clock.
func NewRandomInitializer() *Initializer {
	return nn.NewRandomInitializer()
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	layer := nn.NewLinear(4, 16, backend, nn.NewInitializer(1))
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B, init *Initializer) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend, init)
}

// NewLinearNoBias creates a linear layer without a bias term.
func NewLinearNoBias[B tensor.Backend](inFeatures, outFeatures int, backend B, init *Initializer) *Linear[B] {
	return nn.NewLinearNoBias(inFeatures, outFeatures, backend, init)
}

// Sequential chains modules in order.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a container running modules in order.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential[B](modules...)
}

// Activations

// ActivationKind names an activation function.
type ActivationKind = nn.ActivationKind

// Supported activations.
const (
	ActivationIdentity = nn.ActivationIdentity
	ActivationReLU     = nn.ActivationReLU
	ActivationTanh     = nn.ActivationTanh
	ActivationSigmoid  = nn.ActivationSigmoid
)

// ParseActivation maps a case-insensitive name to an ActivationKind.
func ParseActivation(name string) (ActivationKind, error) {
	return nn.ParseActivation(name)
}

// ReLU represents the Rectified Linear Unit activation function.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a new ReLU activation layer.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Tanh represents the hyperbolic tangent activation.
type Tanh[B tensor.Backend] = nn.Tanh[B]

// NewTanh creates a new Tanh activation layer.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return nn.NewTanh[B]()
}

// Sigmoid represents the logistic activation.
type Sigmoid[B tensor.Backend] = nn.Sigmoid[B]

// NewSigmoid creates a new Sigmoid activation layer.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return nn.NewSigmoid[B]()
}

// Loss

// MSELoss is half the mean squared error over the batch.
type MSELoss[B tensor.Backend] = nn.MSELoss[B]

// NewMSELoss creates an MSE loss bound to backend.
func NewMSELoss[B tensor.Backend](backend B) *MSELoss[B] {
	return nn.NewMSELoss(backend)
}

// Models

// NewLinearModel returns a single affine layer mapping nx inputs to ny outputs.
func NewLinearModel[B tensor.Backend](nx, ny int, bias bool, backend B, init *Initializer) (*Sequential[B], error) {
	return nn.NewLinearModel(nx, ny, bias, backend, init)
}

// NewDeepModel stacks affine layers of the given sizes with act between them.
func NewDeepModel[B tensor.Backend](sizes []int, act ActivationKind, backend B, init *Initializer) (*Sequential[B], error) {
	return nn.NewDeepModel(sizes, act, backend, init)
}

// Flatten copies all parameter values into one slice, in parameter order.
func Flatten[B tensor.Backend](params []*Parameter[B]) []float64 {
	return nn.Flatten(params)
}

// Restore writes values produced by Flatten back into params.
func Restore[B tensor.Backend](params []*Parameter[B], values []float64) error {
	return nn.Restore(params, values)
}
