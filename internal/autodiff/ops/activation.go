package ops

import "github.com/born-ml/fitlab/internal/tensor"

// ReLUOp represents ReLU activation: output = max(0, x).
//
// Backward: grad_x = outputGrad where x > 0, else 0.
type ReLUOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewReLUOp creates a new ReLUOp.
func NewReLUOp(x, output *tensor.RawTensor) *ReLUOp {
	return &ReLUOp{input: x, output: output}
}

// Backward computes the input gradient for ReLU.
func (op *ReLUOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	mask := tensor.MustNewRaw(op.input.Shape(), backend.Device())
	m := mask.Data()
	for i, v := range op.input.Data() {
		if v > 0 {
			m[i] = 1
		}
	}
	return []*tensor.RawTensor{backend.Mul(outputGrad, mask)}
}

// Inputs returns the input tensor [x].
func (op *ReLUOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor.
func (op *ReLUOp) Output() *tensor.RawTensor { return op.output }

// TanhOp represents the hyperbolic tangent activation.
type TanhOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewTanhOp creates a new TanhOp.
func NewTanhOp(x, output *tensor.RawTensor) *TanhOp {
	return &TanhOp{input: x, output: output}
}

// Backward computes the gradient for tanh.
//
// d(tanh(x))/dx = 1 - tanh²(x), and tanh(x) is the recorded output:
// grad_input = grad_output * (1 - output²).
func (op *TanhOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	squared := backend.Mul(op.output, op.output)
	derivative := backend.AddScalar(backend.MulScalar(squared, -1), 1)
	return []*tensor.RawTensor{backend.Mul(outputGrad, derivative)}
}

// Inputs returns the input tensor [x].
func (op *TanhOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor.
func (op *TanhOp) Output() *tensor.RawTensor { return op.output }

// SigmoidOp represents the logistic activation σ(x) = 1 / (1 + e^-x).
//
// Backward: grad_x = outputGrad * σ(x) * (1 - σ(x)).
type SigmoidOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSigmoidOp creates a new SigmoidOp.
func NewSigmoidOp(x, output *tensor.RawTensor) *SigmoidOp {
	return &SigmoidOp{input: x, output: output}
}

// Backward computes the input gradient for sigmoid.
func (op *SigmoidOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	oneMinus := backend.AddScalar(backend.MulScalar(op.output, -1), 1)
	derivative := backend.Mul(op.output, oneMinus)
	return []*tensor.RawTensor{backend.Mul(outputGrad, derivative)}
}

// Inputs returns the input tensor [x].
func (op *SigmoidOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor.
func (op *SigmoidOp) Output() *tensor.RawTensor { return op.output }
