package cpu

import (
	"math"

	"github.com/born-ml/fitlab/internal/parallel"
	"github.com/born-ml/fitlab/internal/tensor"
)

// ReLU applies max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary(x, func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// Tanh applies the hyperbolic tangent element-wise.
func (cpu *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary(x, math.Tanh)
}

// Sigmoid applies 1 / (1 + exp(-x)) element-wise.
func (cpu *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary(x, sigmoid)
}

// sigmoid is evaluated on the side that cannot overflow exp.
func sigmoid(v float64) float64 {
	if v >= 0 {
		return 1 / (1 + math.Exp(-v))
	}
	e := math.Exp(v)
	return e / (1 + e)
}

func (cpu *CPUBackend) unary(x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result := tensor.MustNewRaw(x.Shape(), cpu.device)
	src, dst := x.Data(), result.Data()
	parallel.For(len(src), func(i int) {
		dst[i] = f(src[i])
	}, cpu.parallel)
	return result
}
