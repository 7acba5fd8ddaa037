package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/fitlab/internal/tensor"
)

// Sum reduces all elements to a scalar (shape []).
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := tensor.MustNewRaw(tensor.Shape{}, cpu.device)
	result.Data()[0] = floats.Sum(x.Data())
	return result
}

// SumDim sums along dim. With keepDim the reduced dimension stays with size 1.
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("sumdim: invalid dimension %d for shape %v", dim, shape))
	}

	// View the tensor as [outer, size, inner] and reduce the middle axis.
	outer := 1
	for _, d := range shape[:dim] {
		outer *= d
	}
	size := shape[dim]
	inner := 1
	for _, d := range shape[dim+1:] {
		inner *= d
	}

	outShape := make(tensor.Shape, 0, len(shape))
	outShape = append(outShape, shape[:dim]...)
	if keepDim {
		outShape = append(outShape, 1)
	}
	outShape = append(outShape, shape[dim+1:]...)

	result := tensor.MustNewRaw(outShape, cpu.device)
	src, dst := x.Data(), result.Data()
	for o := 0; o < outer; o++ {
		for s := 0; s < size; s++ {
			base := (o*size + s) * inner
			floats.Add(dst[o*inner:(o+1)*inner], src[base:base+inner])
		}
	}
	return result
}
