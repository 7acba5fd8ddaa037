package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/fitlab/internal/tensor"
)

// ActivationKind names an element-wise activation.
type ActivationKind string

// Supported activations.
const (
	ActivationIdentity ActivationKind = "identity"
	ActivationReLU     ActivationKind = "relu"
	ActivationTanh     ActivationKind = "tanh"
	ActivationSigmoid  ActivationKind = "sigmoid"
)

// ParseActivation maps a case-insensitive name to an ActivationKind.
// The empty string means identity.
func ParseActivation(name string) (ActivationKind, error) {
	switch kind := ActivationKind(strings.ToLower(strings.TrimSpace(name))); kind {
	case "":
		return ActivationIdentity, nil
	case ActivationIdentity, ActivationReLU, ActivationTanh, ActivationSigmoid:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown activation %q: %w", name, ErrInvalidArgument)
	}
}

// NewActivation builds the activation module for kind.
func NewActivation[B tensor.Backend](kind ActivationKind) (Module[B], error) {
	switch kind {
	case ActivationIdentity, "":
		return NewIdentity[B](), nil
	case ActivationReLU:
		return NewReLU[B](), nil
	case ActivationTanh:
		return NewTanh[B](), nil
	case ActivationSigmoid:
		return NewSigmoid[B](), nil
	default:
		return nil, fmt.Errorf("unknown activation %q: %w", kind, ErrInvalidArgument)
	}
}

// ReLU is a Rectified Linear Unit activation module: f(x) = max(0, x).
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a new ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward applies max(0, x).
func (r *ReLU[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	return input.ReLU()
}

// Parameters returns nil (ReLU has no trainable parameters).
func (r *ReLU[B]) Parameters() []*Parameter[B] {
	return nil
}

// Tanh is a hyperbolic tangent activation module.
//
// Tanh squashes values to (-1, 1) and is zero-centered.
type Tanh[B tensor.Backend] struct{}

// NewTanh creates a new Tanh activation module.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return &Tanh[B]{}
}

// Forward applies tanh(x).
func (t *Tanh[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	return input.Tanh()
}

// Parameters returns nil (Tanh has no trainable parameters).
func (t *Tanh[B]) Parameters() []*Parameter[B] {
	return nil
}

// Sigmoid is a logistic activation module: σ(x) = 1 / (1 + exp(-x)).
type Sigmoid[B tensor.Backend] struct{}

// NewSigmoid creates a new Sigmoid activation module.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return &Sigmoid[B]{}
}

// Forward applies σ(x).
func (s *Sigmoid[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	return input.Sigmoid()
}

// Parameters returns nil (Sigmoid has no trainable parameters).
func (s *Sigmoid[B]) Parameters() []*Parameter[B] {
	return nil
}

// Identity passes its input through unchanged.
type Identity[B tensor.Backend] struct{}

// NewIdentity creates a new Identity module.
func NewIdentity[B tensor.Backend]() *Identity[B] {
	return &Identity[B]{}
}

// Forward returns input.
func (i *Identity[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	return input
}

// Parameters returns nil.
func (i *Identity[B]) Parameters() []*Parameter[B] {
	return nil
}
