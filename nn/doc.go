// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the building blocks of small regression networks.
//
// # Overview
//
// This package contains:
//   - Layers: Linear (affine, Xavier initialized)
//   - Activations: ReLU, Tanh, Sigmoid, Identity
//   - Loss: MSELoss, half the mean squared error over the batch
//   - Utilities: Sequential, Module, Parameter, Initializer
//   - Models: NewLinearModel, NewDeepModel
//
// # Basic Usage
//
//	backend := autodiff.New(cpu.New())
//	initializer := nn.NewInitializer(42)
//
//	model, err := nn.NewDeepModel([]int{4, 16, 4}, nn.ActivationTanh, backend, initializer)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	criterion := nn.NewMSELoss(backend)
//	loss := criterion.Forward(model.Forward(x), y)
//
// Seeding the Initializer makes models reproducible: two models built from
// the same seed and sizes start from identical parameters.
package nn
