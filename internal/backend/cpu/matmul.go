package cpu

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/fitlab/internal/tensor"
)

// MatMul performs matrix multiplication: (M, K) @ (K, N) -> (M, N).
//
// Operands are wrapped as gonum Dense matrices without copying and the
// product is written straight into the result buffer.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 || aShape[1] != bShape[0] {
		panic(&tensor.ShapeError{Op: "matmul", Left: aShape, Right: bShape})
	}

	m, k, n := aShape[0], aShape[1], bShape[1]
	result := tensor.MustNewRaw(tensor.Shape{m, n}, cpu.device)

	am := mat.NewDense(m, k, a.Data())
	bm := mat.NewDense(k, n, b.Data())
	out := mat.NewDense(m, n, result.Data())
	out.Mul(am, bm)

	return result
}

// Transpose swaps the two dimensions of a 2D tensor.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor) *tensor.RawTensor {
	shape := t.Shape()
	if len(shape) != 2 {
		panic(&tensor.ShapeError{Op: "transpose", Left: shape})
	}

	rows, cols := shape[0], shape[1]
	result := tensor.MustNewRaw(tensor.Shape{cols, rows}, cpu.device)

	src := mat.NewDense(rows, cols, t.Data())
	dst := mat.NewDense(cols, rows, result.Data())
	dst.Copy(src.T())

	return result
}
