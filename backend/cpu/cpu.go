// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend.
//
// Matrix products run on gonum, element-wise kernels are split across
// goroutines for large tensors. Results do not depend on the worker count.
//
//	backend := cpu.New()
//	x := tensor.Zeros(tensor.Shape{2, 3}, backend)
package cpu

import (
	internalcpu "github.com/born-ml/fitlab/internal/backend/cpu"
	"github.com/born-ml/fitlab/internal/parallel"
	"github.com/born-ml/fitlab/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// ParallelConfig controls how element-wise kernels are split across goroutines.
type ParallelConfig = parallel.Config

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a CPU backend with the default parallel settings.
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with explicit parallel settings.
//
// Example:
//
//	backend := cpu.NewWithConfig(cpu.Sequential())
func NewWithConfig(cfg ParallelConfig) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// Sequential returns a config that runs every kernel on the calling goroutine.
func Sequential() ParallelConfig {
	return parallel.Sequential()
}
