// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides float64 tensors for fitting small models.
//
// # Overview
//
// Tensors are dense, row-major and bound to a compute backend:
//   - Tensor[B]: generic tensor dispatching every operation to backend B
//   - RawTensor: the underlying buffer with its shape
//   - Backend: interface implemented by backend/cpu and by autodiff
//
// # Basic Usage
//
//	backend := cpu.New()
//	x, _ := tensor.FromRows([][]float64{{1, 2}, {3, 4}}, backend)
//	w := tensor.Ones(tensor.Shape{2, 1}, backend)
//	y := x.MatMul(w) // [[3], [7]]
//
// # Broadcasting
//
// Element-wise operations follow NumPy broadcasting rules:
//
//	a := tensor.Zeros(tensor.Shape{3, 1}, backend) // (3, 1)
//	b := tensor.Ones(tensor.Shape{3, 4}, backend)  // (3, 4)
//	c := a.Add(b)                                  // (3, 4)
//
// Incompatible shapes panic with a *ShapeError wrapping ErrShapeMismatch.
package tensor
