package cpu

import (
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/fitlab/internal/tensor"
)

// MulScalar multiplies each element by scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	result := tensor.MustNewRaw(x.Shape(), cpu.device)
	floats.ScaleTo(result.Data(), scalar, x.Data())
	return result
}

// AddScalar adds scalar to each element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	result := x.Clone()
	floats.AddConst(scalar, result.Data())
	return result
}
