// Package nn implements neural network modules for fitting regression models.
//
// This package provides building blocks for constructing networks:
//   - Module interface: base interface for all NN components
//   - Parameter: trainable parameters with gradient tracking
//   - Linear: fully connected layer
//   - Activations: ReLU, Tanh, Sigmoid, Identity
//   - MSELoss: half squared error averaged over the batch
//   - Sequential: container for stacking layers
//   - NewLinearModel, NewDeepModel: ready-made regression models
package nn

import (
	"github.com/born-ml/fitlab/internal/tensor"
)

// ErrInvalidArgument is returned by model constructors for unusable sizes or kinds.
var ErrInvalidArgument = tensor.ErrInvalidArgument

// Module is the base interface for all neural network components.
//
// Modules can be composed to build deeper architectures:
//
//	model := nn.NewSequential[B](
//	    nn.NewLinear(4, 16, backend, init),
//	    nn.NewTanh[B](),
//	    nn.NewLinear(16, 4, backend, init),
//	)
type Module[B tensor.Backend] interface {
	// Forward computes the output for a [batch, features] input.
	Forward(input *tensor.Tensor[B]) *tensor.Tensor[B]

	// Parameters returns all trainable parameters, including nested ones.
	// Activations return nil.
	Parameters() []*Parameter[B]
}
