package ops

import (
	"github.com/born-ml/fitlab/internal/tensor"
)

// reduceBroadcast reduces a gradient tensor to match the target shape.
// This is necessary when broadcasting was used in the forward pass.
//
// Example:
//
//	Forward: a[3,1] + b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()

	// Clone so callers never alias the incoming gradient.
	if gradShape.Equal(targetShape) {
		return grad.Clone()
	}

	if len(targetShape) == 0 {
		return backend.Sum(grad)
	}

	// A scalar or lower-rank gradient flowing into a larger input.
	if len(gradShape) < len(targetShape) {
		return broadcastTo(grad, targetShape, backend)
	}

	// Shapes align from the right: sum away leading dimensions first.
	result := grad
	for len(result.Shape()) > len(targetShape) {
		result = backend.SumDim(result, 0, false)
	}

	for i, dim := range targetShape {
		if dim == 1 && result.Shape()[i] > 1 {
			result = backend.SumDim(result, i, true)
		}
	}

	if !result.Shape().Equal(targetShape) {
		result = backend.Reshape(result, targetShape)
	}
	return result
}

// filled returns a tensor of the given shape with every element set to value.
func filled(shape tensor.Shape, value float64, device tensor.Device) *tensor.RawTensor {
	r := tensor.MustNewRaw(shape, device)
	r.Fill(value)
	return r
}
