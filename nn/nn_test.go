// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fitlab/backend/cpu"
	"github.com/born-ml/fitlab/nn"
	"github.com/born-ml/fitlab/tensor"
)

// TestModuleInterface verifies that concrete types implement Module.
func TestModuleInterface(t *testing.T) {
	backend := cpu.New()
	initializer := nn.NewInitializer(3)

	tests := []struct {
		name   string
		module nn.Module[*cpu.Backend]
		params int
	}{
		{"Linear", nn.NewLinear(4, 2, backend, initializer), 2},
		{"LinearNoBias", nn.NewLinearNoBias(4, 2, backend, initializer), 1},
		{"Sequential", nn.NewSequential[*cpu.Backend](
			nn.NewLinear(4, 3, backend, initializer),
			nn.NewTanh[*cpu.Backend](),
			nn.NewLinear(3, 2, backend, initializer),
		), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.module.Forward(tensor.Ones(tensor.Shape{5, 4}, backend))
			assert.Equal(t, tensor.Shape{5, 2}, out.Shape())
			assert.Len(t, tt.module.Parameters(), tt.params)
		})
	}
}

func TestModelsAreSeeded(t *testing.T) {
	backend := cpu.New()
	build := func() []float64 {
		m, err := nn.NewDeepModel([]int{3, 5, 2}, nn.ActivationReLU, backend, nn.NewInitializer(11))
		require.NoError(t, err)
		return nn.Flatten(m.Parameters())
	}
	assert.Equal(t, build(), build())

	_, err := nn.NewLinearModel(0, 2, true, backend, nn.NewInitializer(1))
	assert.ErrorIs(t, err, nn.ErrInvalidArgument)
}
