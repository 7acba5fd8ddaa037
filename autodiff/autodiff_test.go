// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fitlab/autodiff"
	"github.com/born-ml/fitlab/backend/cpu"
	"github.com/born-ml/fitlab/tensor"
)

func TestBackward_Quadratic(t *testing.T) {
	backend := autodiff.New(cpu.New())
	x, err := tensor.FromSlice([]float64{1, -2, 3}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	backend.Tape().StartRecording()
	y := x.Mul(x).Sum() // sum(x^2)
	grads := autodiff.Backward(y, backend)
	backend.Tape().StopRecording()

	assert.Equal(t, 14.0, y.Item())
	require.Contains(t, grads, x.Raw())
	assert.Equal(t, []float64{2, -4, 6}, grads[x.Raw()].Data())
}
