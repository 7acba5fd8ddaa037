package ops

import "github.com/born-ml/fitlab/internal/tensor"

// SumOp represents a full reduction: output = sum(x), shape [].
//
// Every input element contributes 1 to the sum, so the scalar gradient
// is broadcast back to the input shape.
type SumOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(x, output *tensor.RawTensor) *SumOp {
	return &SumOp{input: x, output: output}
}

// Backward computes the input gradient for sum.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{broadcastTo(outputGrad, op.input.Shape(), backend)}
}

// Inputs returns the input tensor [x].
func (op *SumOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor.
func (op *SumOp) Output() *tensor.RawTensor { return op.output }

// SumDimOp represents a reduction along one dimension: output = sum(x, dim).
//
// Backward:
//
//	grad_x = broadcast(grad_y, x.shape)
//
// If keepDim=false the reduced dimension is restored as size 1 first.
type SumDimOp struct {
	input   *tensor.RawTensor
	output  *tensor.RawTensor
	dim     int
	keepDim bool
}

// NewSumDimOp creates a new SumDimOp.
func NewSumDimOp(x, output *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	return &SumDimOp{input: x, output: output, dim: dim, keepDim: keepDim}
}

// Backward computes the input gradient for a dimension sum.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := outputGrad
	if !op.keepDim {
		kept := op.input.Shape().Clone()
		kept[op.dim] = 1
		grad = backend.Reshape(grad, kept)
	}
	return []*tensor.RawTensor{broadcastTo(grad, op.input.Shape(), backend)}
}

// Inputs returns the input tensor [x].
func (op *SumDimOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor.
func (op *SumDimOp) Output() *tensor.RawTensor { return op.output }

// broadcastTo expands t to targetShape by adding it onto zeros.
func broadcastTo(t *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	if t.Shape().Equal(targetShape) {
		return t.Clone()
	}
	return backend.Add(filled(targetShape, 0, backend.Device()), t)
}
