package data_test

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/fitlab/internal/backend/cpu"
	"github.com/born-ml/fitlab/internal/data"
	"github.com/born-ml/fitlab/internal/tensor"
)

func linear4x4(t *testing.T, seed int64) data.MappingFunc {
	t.Helper()
	mapping, _, err := data.RandomLinearMap(4, 4, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return mapping
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := data.GenerateConfig{Seed: 42, NX: 4, NY: 4, NumSamples: 100, InputScale: 1}

	a, err := data.Generate(cfg, linear4x4(t, 1), data.GaussianNoise(0.1))
	require.NoError(t, err)
	b, err := data.Generate(cfg, linear4x4(t, 1), data.GaussianNoise(0.1))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, 100, a.Len())
	assert.Equal(t, 4, a.NX)
	assert.Equal(t, 4, a.NY)

	cfg.Seed = 43
	c, err := data.Generate(cfg, linear4x4(t, 1), data.GaussianNoise(0.1))
	require.NoError(t, err)
	assert.NotEqual(t, a.Inputs, c.Inputs)
}

func TestGenerate_NoiselessTargetsMatchMapping(t *testing.T) {
	w := mat.NewDense(2, 3, []float64{1, 0, 2, -1, 1, 0})
	ds, err := data.Generate(data.GenerateConfig{Seed: 7, NX: 3, NY: 2, NumSamples: 20, InputScale: 5},
		data.LinearMap(w), nil)
	require.NoError(t, err)

	for i, x := range ds.Inputs {
		for _, v := range x {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 5.0)
		}
		want := []float64{x[0] + 2*x[2], -x[0] + x[1]}
		assert.InDeltaSlice(t, want, ds.Targets[i], 1e-12)
	}
}

func TestGenerate_ZeroInputScale(t *testing.T) {
	w := mat.NewDense(1, 2, []float64{3, -1})
	ds, err := data.Generate(data.GenerateConfig{Seed: 7, NX: 2, NY: 1, NumSamples: 10},
		data.LinearMap(w), nil)
	require.NoError(t, err)

	for i, x := range ds.Inputs {
		assert.Equal(t, []float64{0, 0}, x)
		assert.Equal(t, []float64{0}, ds.Targets[i])
	}
}

func TestGenerate_InvalidArguments(t *testing.T) {
	mapping := linear4x4(t, 1)
	tests := []struct {
		name string
		cfg  data.GenerateConfig
	}{
		{"zero nx", data.GenerateConfig{NX: 0, NY: 4, NumSamples: 10}},
		{"zero ny", data.GenerateConfig{NX: 4, NY: 0, NumSamples: 10}},
		{"zero samples", data.GenerateConfig{NX: 4, NY: 4, NumSamples: 0}},
		{"negative samples", data.GenerateConfig{NX: 4, NY: 4, NumSamples: -5}},
		{"negative input scale", data.GenerateConfig{NX: 4, NY: 4, NumSamples: 10, InputScale: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := data.Generate(tt.cfg, mapping, nil)
			assert.ErrorIs(t, err, data.ErrInvalidArgument)
		})
	}

	_, err := data.Generate(data.GenerateConfig{NX: 4, NY: 4, NumSamples: 1}, nil, nil)
	assert.ErrorIs(t, err, data.ErrInvalidArgument)
}

func TestGenerate_MappingWidthMismatch(t *testing.T) {
	// 3 outputs declared as NY = 4.
	mapping, _, err := data.RandomLinearMap(4, 3, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	_, err = data.Generate(data.GenerateConfig{Seed: 1, NX: 4, NY: 4, NumSamples: 5, InputScale: 1}, mapping, nil)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	// 4 inputs into a map expecting 2.
	_, err = data.Generate(data.GenerateConfig{Seed: 1, NX: 4, NY: 1, NumSamples: 5, InputScale: 1},
		data.LinearMap(mat.NewDense(1, 2, []float64{1, 1})), nil)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestMappings(t *testing.T) {
	w := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	x := []float64{1, -1}

	y, err := data.AffineMap(w, []float64{10, 20})(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 19}, y)

	y, err = data.Nonlinear(data.LinearMap(w), math.Tanh)(x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{math.Tanh(-1), math.Tanh(-1)}, y, 1e-12)

	_, err = data.AffineMap(w, []float64{1})(x)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, _, err = data.RandomLinearMap(0, 2, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, data.ErrInvalidArgument)
}

func TestRandomMatrixRange(t *testing.T) {
	w := data.RandomMatrix(5, 3, rand.New(rand.NewSource(2)))
	r, c := w.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 5, c)
	for _, v := range w.RawMatrix().Data {
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 1.0)
	}
}

func TestGaussianNoise(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Zero(t, data.GaussianNoise(0)(rng))

	noise := data.GaussianNoise(2)
	var sum, sq float64
	const n = 20000
	for range n {
		v := noise(rng)
		sum += v
		sq += v * v
	}
	assert.InDelta(t, 0, sum/n, 0.1)
	assert.InDelta(t, 4, sq/n, 0.2)
}

func TestNewSplit(t *testing.T) {
	ds, err := data.Generate(data.GenerateConfig{Seed: 1, NX: 2, NY: 1, NumSamples: 100, InputScale: 1},
		data.LinearMap(mat.NewDense(1, 2, []float64{1, 1})), nil)
	require.NoError(t, err)

	split, err := data.NewSplit(ds, 0.7, 0.15)
	require.NoError(t, err)

	assert.Equal(t, data.Range{Lo: 0, Hi: 70}, split.TrainRange)
	assert.Equal(t, data.Range{Lo: 70, Hi: 85}, split.DevRange)
	assert.Equal(t, data.Range{Lo: 85, Hi: 100}, split.TestRange)
	assert.Equal(t, ds.Len(), split.Train.Len()+split.Dev.Len()+split.Test.Len())

	// Order preserving and positional.
	assert.Equal(t, ds.Inputs[0], split.Train.Inputs[0])
	assert.Equal(t, ds.Inputs[70], split.Dev.Inputs[0])
	assert.Equal(t, ds.Inputs[99], split.Test.Inputs[14])
}

func TestNewSplit_SizesAlwaysSumToN(t *testing.T) {
	ds, err := data.Generate(data.GenerateConfig{Seed: 1, NX: 1, NY: 1, NumSamples: 1000, InputScale: 1},
		data.LinearMap(mat.NewDense(1, 1, []float64{2})), nil)
	require.NoError(t, err)

	for _, n := range []int{10, 11, 37, 99, 1000} {
		for _, f := range [][2]float64{{0.7, 0.15}, {0.5, 0.25}, {0.33, 0.33}, {0.8, 0.1}} {
			split, err := data.NewSplit(ds.Slice(0, n), f[0], f[1])
			require.NoError(t, err)
			assert.Equal(t, n, split.Train.Len()+split.Dev.Len()+split.Test.Len())
			assert.Equal(t, split.TrainRange.Hi, split.DevRange.Lo)
			assert.Equal(t, split.DevRange.Hi, split.TestRange.Lo)
		}
	}
}

func TestNewSplit_Invalid(t *testing.T) {
	ds, err := data.Generate(data.GenerateConfig{Seed: 1, NX: 1, NY: 1, NumSamples: 10, InputScale: 1},
		data.LinearMap(mat.NewDense(1, 1, []float64{2})), nil)
	require.NoError(t, err)

	tests := []struct {
		name         string
		ds           *data.Dataset
		fTrain, fDev float64
	}{
		{"nil dataset", nil, 0.7, 0.15},
		{"zero train", ds, 0, 0.5},
		{"zero dev", ds, 0.5, 0},
		{"sum one", ds, 0.5, 0.5},
		{"sum above one", ds, 0.8, 0.3},
		{"empty test", ds, 0.7, 0.28},
		{"empty dev", ds, 0.7, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := data.NewSplit(tt.ds, tt.fTrain, tt.fDev)
			assert.ErrorIs(t, err, data.ErrInvalidArgument)
		})
	}
}

func TestNewDataset(t *testing.T) {
	ds, err := data.NewDataset([][]float64{{1, 2}, {3, 4}}, [][]float64{{1}, {2}})
	require.NoError(t, err)
	assert.Equal(t, 2, ds.NX)
	assert.Equal(t, 1, ds.NY)

	_, err = data.NewDataset([][]float64{{1, 2}}, nil)
	assert.ErrorIs(t, err, data.ErrInvalidArgument)

	_, err = data.NewDataset([][]float64{{1, 2}, {3}}, [][]float64{{1}, {2}})
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestDataset_ColumnStats(t *testing.T) {
	ds, err := data.NewDataset([][]float64{{1, 10}, {3, 10}}, [][]float64{{0}, {4}})
	require.NoError(t, err)

	cs := ds.ColumnStats()
	assert.Equal(t, []float64{2, 10}, cs.InputMean)
	assert.InDeltaSlice(t, []float64{math.Sqrt2, 0}, cs.InputStd, 1e-12)
	assert.Equal(t, []float64{2}, cs.TargetMean)
}

func TestTensors(t *testing.T) {
	ds, err := data.NewDataset([][]float64{{1, 2}, {3, 4}, {5, 6}}, [][]float64{{1}, {2}, {3}})
	require.NoError(t, err)

	x, y, err := data.Tensors(ds, cpu.New())
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, x.Shape())
	assert.Equal(t, tensor.Shape{3, 1}, y.Shape())
	assert.Equal(t, ds.Inputs, x.Rows())

	_, _, err = data.Tensors(ds.Slice(0, 0), cpu.New())
	assert.ErrorIs(t, err, data.ErrInvalidArgument)
}

func collect(s *data.BatchSampler) []data.Batch {
	var out []data.Batch
	for b := range s.Batches() {
		out = append(out, b)
	}
	return out
}

func TestBatchSampler_CoversEveryIndexOnce(t *testing.T) {
	ds, err := data.Generate(data.GenerateConfig{Seed: 3, NX: 2, NY: 2, NumSamples: 73, InputScale: 1},
		data.LinearMap(mat.NewDense(2, 2, []float64{1, 0, 0, 1})), nil)
	require.NoError(t, err)

	for _, size := range []int{1, 7, 10, 73, 200} {
		for _, shuffle := range []bool{false, true} {
			s, err := data.NewBatchSampler(ds, size, shuffle, 9)
			require.NoError(t, err)

			batches := collect(s)
			wantBatches := (73 + size - 1) / size
			require.Len(t, batches, wantBatches)
			assert.Equal(t, wantBatches, s.NumBatches())

			var seen []int
			for i, b := range batches {
				if i < len(batches)-1 {
					assert.Len(t, b.Indices, size)
				}
				assert.Len(t, b.Inputs, len(b.Indices))
				for j, idx := range b.Indices {
					assert.Equal(t, ds.Inputs[idx], b.Inputs[j])
					assert.Equal(t, ds.Targets[idx], b.Targets[j])
				}
				seen = append(seen, b.Indices...)
			}
			slices.Sort(seen)
			for i, idx := range seen {
				require.Equal(t, i, idx)
			}
		}
	}
}

func TestBatchSampler_ShuffleIsSeeded(t *testing.T) {
	ds, err := data.Generate(data.GenerateConfig{Seed: 3, NX: 1, NY: 1, NumSamples: 50, InputScale: 1},
		data.LinearMap(mat.NewDense(1, 1, []float64{1})), nil)
	require.NoError(t, err)

	a, err := data.NewBatchSampler(ds, 10, true, 5)
	require.NoError(t, err)
	b, err := data.NewBatchSampler(ds, 10, true, 5)
	require.NoError(t, err)

	epochA1, epochB1 := collect(a), collect(b)
	epochA2, epochB2 := collect(a), collect(b)
	assert.Equal(t, epochA1, epochB1)
	assert.Equal(t, epochA2, epochB2)
	assert.NotEqual(t, epochA1[0].Indices, epochA2[0].Indices, "each epoch draws a new permutation")

	plain, err := data.NewBatchSampler(ds, 10, false, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, collect(plain)[0].Indices)
}

func TestBatchSampler_EarlyBreak(t *testing.T) {
	ds, err := data.NewDataset([][]float64{{1}, {2}, {3}, {4}}, [][]float64{{1}, {2}, {3}, {4}})
	require.NoError(t, err)
	s, err := data.NewBatchSampler(ds, 1, false, 0)
	require.NoError(t, err)

	count := 0
	for range s.Batches() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestBatchSampler_Invalid(t *testing.T) {
	ds, err := data.NewDataset([][]float64{{1}}, [][]float64{{1}})
	require.NoError(t, err)

	_, err = data.NewBatchSampler(ds, 0, false, 0)
	assert.ErrorIs(t, err, data.ErrInvalidArgument)

	_, err = data.NewBatchSampler(ds.Slice(0, 0), 4, false, 0)
	assert.ErrorIs(t, err, data.ErrInvalidArgument)

	_, err = data.NewBatchSampler(nil, 4, false, 0)
	assert.ErrorIs(t, err, data.ErrInvalidArgument)
}
