package nn

import (
	"github.com/born-ml/fitlab/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [batch_size, out_features]
//
// Weights use Xavier/Glorot initialization. Biases start at zero.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	layer := nn.NewLinear(4, 4, backend, nn.NewInitializer(42))
//	output := layer.Forward(input) // [batch, 4]
type Linear[B tensor.Backend] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[B] // [out_features, in_features]
	bias        *Parameter[B] // [out_features], nil without bias
}

// NewLinear creates a Linear layer with a bias.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B, init *Initializer) *Linear[B] {
	l := NewLinearNoBias(inFeatures, outFeatures, backend, init)
	l.bias = NewParameter("bias", tensor.Zeros(tensor.Shape{outFeatures}, backend))
	return l
}

// NewLinearNoBias creates a Linear layer computing y = x @ W.T.
func NewLinearNoBias[B tensor.Backend](inFeatures, outFeatures int, backend B, init *Initializer) *Linear[B] {
	weight := Xavier(inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}, init, backend)
	return &Linear[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter("weight", weight),
	}
}

// Forward computes y = x @ W.T + b.
//
// Panics with a *tensor.ShapeError if the input is not [batch, in_features].
func (l *Linear[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		panic(&tensor.ShapeError{Op: "linear", Left: inputShape.Clone()})
	}
	if inputShape[1] != l.inFeatures {
		panic(&tensor.ShapeError{
			Op:    "linear",
			Left:  inputShape.Clone(),
			Right: tensor.Shape{inputShape[0], l.inFeatures},
		})
	}

	output := input.MatMul(l.weight.Tensor().Transpose())

	if l.bias != nil {
		// [out] -> [1, out] broadcasts over the batch.
		output = output.Add(l.bias.Tensor().Reshape(1, l.outFeatures))
	}
	return output
}

// Parameters returns [weight, bias], or [weight] without bias.
func (l *Linear[B]) Parameters() []*Parameter[B] {
	if l.bias != nil {
		return []*Parameter[B]{l.weight, l.bias}
	}
	return []*Parameter[B]{l.weight}
}

// Weight returns the weight parameter.
func (l *Linear[B]) Weight() *Parameter[B] {
	return l.weight
}

// Bias returns the bias parameter (nil for NewLinearNoBias layers).
func (l *Linear[B]) Bias() *Parameter[B] {
	return l.bias
}

// InFeatures returns the input width.
func (l *Linear[B]) InFeatures() int { return l.inFeatures }

// OutFeatures returns the output width.
func (l *Linear[B]) OutFeatures() int { return l.outFeatures }
