// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/born-ml/fitlab/internal/tensor"
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3} is a matrix with 2 rows and 3 columns.
type Shape = tensor.Shape

// Device represents where tensor data resides.
type Device = tensor.Device

// CPU is the only device.
const CPU Device = tensor.CPU

// RawTensor is the low-level float64 buffer behind a Tensor.
type RawTensor = tensor.RawTensor

// Backend is the compute interface every backend implements.
type Backend = tensor.Backend

// Tensor is a float64 tensor bound to backend B.
type Tensor[B Backend] = tensor.Tensor[B]

// ShapeError reports incompatible operand shapes.
type ShapeError = tensor.ShapeError

// Errors shared by every package of the module.
var (
	ErrShapeMismatch   = tensor.ErrShapeMismatch
	ErrInvalidArgument = tensor.ErrInvalidArgument
)

// NewRaw allocates a zeroed raw tensor.
func NewRaw(shape Shape, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, device)
}

// New wraps raw as a tensor on backend b.
func New[B Backend](raw *RawTensor, b B) *Tensor[B] {
	return tensor.New(raw, b)
}

// Zeros creates a tensor filled with zeros.
func Zeros[B Backend](shape Shape, b B) *Tensor[B] {
	return tensor.Zeros(shape, b)
}

// Ones creates a tensor filled with ones.
func Ones[B Backend](shape Shape, b B) *Tensor[B] {
	return tensor.Ones(shape, b)
}

// Full creates a tensor filled with value.
func Full[B Backend](shape Shape, value float64, b B) *Tensor[B] {
	return tensor.Full(shape, value, b)
}

// FromSlice copies data into a tensor of the given shape.
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
func FromSlice[B Backend](data []float64, shape Shape, b B) (*Tensor[B], error) {
	return tensor.FromSlice(data, shape, b)
}

// FromRows builds an [len(rows), len(rows[0])] matrix.
func FromRows[B Backend](rows [][]float64, b B) (*Tensor[B], error) {
	return tensor.FromRows(rows, b)
}

// RandUniform draws every element from U[lo, hi) using rng.
func RandUniform[B Backend](shape Shape, lo, hi float64, rng *rand.Rand, b B) *Tensor[B] {
	return tensor.RandUniform(shape, lo, hi, rng, b)
}

// AsShapeError converts a recovered panic value into a *ShapeError, or nil.
func AsShapeError(recovered any) *ShapeError {
	return tensor.AsShapeError(recovered)
}
