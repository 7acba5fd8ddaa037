// Package cpu implements the CPU backend on top of gonum's dense matrix and
// vector kernels.
package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/fitlab/internal/parallel"
	"github.com/born-ml/fitlab/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// New creates a new CPU backend with default parallelism.
func New() *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: parallel.DefaultConfig(),
	}
}

// NewWithConfig creates a CPU backend with an explicit parallel config.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, floats.AddTo, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, floats.SubTo, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, floats.MulTo, func(x, y float64) float64 { return x * y })
}

// binary dispatches to the gonum vector kernel when shapes match and to the
// strided broadcast loop otherwise.
func (cpu *CPUBackend) binary(
	name string,
	a, b *tensor.RawTensor,
	vectorized func(dst, s, t []float64) []float64,
	scalar func(x, y float64) float64,
) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(err)
	}

	result, err := tensor.NewRaw(outShape, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	if !needsBroadcast {
		vectorized(result.Data(), a.Data(), b.Data())
		return result
	}

	broadcastBinary(result, a, b, scalar)
	return result
}

// broadcastBinary fills out[i] = f(a[ia], b[ib]) walking the output in
// row-major order with broadcast strides for each operand.
func broadcastBinary(out, a, b *tensor.RawTensor, f func(x, y float64) float64) {
	shape := out.Shape()
	aStrides := tensor.BroadcastStrides(a.Shape(), shape)
	bStrides := tensor.BroadcastStrides(b.Shape(), shape)
	aData, bData, outData := a.Data(), b.Data(), out.Data()

	index := make([]int, len(shape))
	ia, ib := 0, 0
	for i := range outData {
		outData[i] = f(aData[ia], bData[ib])

		// Increment the multi-index, carrying from the last dimension.
		for d := len(shape) - 1; d >= 0; d-- {
			index[d]++
			ia += aStrides[d]
			ib += bStrides[d]
			if index[d] < shape[d] {
				break
			}
			ia -= aStrides[d] * shape[d]
			ib -= bStrides[d] * shape[d]
			index[d] = 0
		}
	}
}
