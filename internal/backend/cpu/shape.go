package cpu

import (
	"github.com/born-ml/fitlab/internal/tensor"
)

// Reshape returns a copy of t with a new shape of the same element count.
//
// The copy keeps the result a distinct RawTensor, which the autodiff tape
// relies on to route gradients back to the original.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil || newShape.NumElements() != t.NumElements() {
		panic(&tensor.ShapeError{Op: "reshape", Left: t.Shape(), Right: newShape})
	}

	result := tensor.MustNewRaw(newShape, cpu.device)
	copy(result.Data(), t.Data())
	return result
}
