// Package data generates synthetic regression data and feeds it to training.
//
// The pipeline is:
//
//	ds, _ := data.Generate(cfg, mapping, noise)   // ground truth y = f(x) + noise
//	split, _ := data.NewSplit(ds, 0.7, 0.15)      // positional train/dev/test
//	sampler, _ := data.NewBatchSampler(split.Train, 10, true, seed)
//	for batch := range sampler.Batches() { ... }
package data

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/fitlab/internal/tensor"
)

// ErrInvalidArgument is wrapped by every argument validation error in this package.
var ErrInvalidArgument = tensor.ErrInvalidArgument

// Dataset is a set of (input, target) pairs of fixed widths NX and NY.
//
// Datasets are treated as immutable once built. Slice returns views that
// share rows with the parent.
type Dataset struct {
	Inputs  [][]float64
	Targets [][]float64
	NX      int
	NY      int
}

// NewDataset validates and wraps inputs and targets.
func NewDataset(inputs, targets [][]float64) (*Dataset, error) {
	if len(inputs) != len(targets) {
		return nil, fmt.Errorf("dataset: %d inputs vs %d targets: %w", len(inputs), len(targets), ErrInvalidArgument)
	}
	ds := &Dataset{Inputs: inputs, Targets: targets}
	if len(inputs) == 0 {
		return ds, nil
	}
	ds.NX, ds.NY = len(inputs[0]), len(targets[0])
	for i := range inputs {
		if len(inputs[i]) != ds.NX {
			return nil, fmt.Errorf("dataset: input %d: %w",
				i, &tensor.ShapeError{Op: "dataset", Left: tensor.Shape{len(inputs[i])}, Right: tensor.Shape{ds.NX}})
		}
		if len(targets[i]) != ds.NY {
			return nil, fmt.Errorf("dataset: target %d: %w",
				i, &tensor.ShapeError{Op: "dataset", Left: tensor.Shape{len(targets[i])}, Right: tensor.Shape{ds.NY}})
		}
	}
	return ds, nil
}

// Len returns the number of examples.
func (d *Dataset) Len() int {
	return len(d.Inputs)
}

// Slice returns the examples in [lo, hi) as a view.
func (d *Dataset) Slice(lo, hi int) *Dataset {
	return &Dataset{
		Inputs:  d.Inputs[lo:hi:hi],
		Targets: d.Targets[lo:hi:hi],
		NX:      d.NX,
		NY:      d.NY,
	}
}

// Gather returns the examples at indices, in that order.
func (d *Dataset) Gather(indices []int) *Dataset {
	out := &Dataset{
		Inputs:  make([][]float64, len(indices)),
		Targets: make([][]float64, len(indices)),
		NX:      d.NX,
		NY:      d.NY,
	}
	for i, idx := range indices {
		out.Inputs[i] = d.Inputs[idx]
		out.Targets[i] = d.Targets[idx]
	}
	return out
}

// ColumnStats holds the per-column mean and standard deviation of a dataset.
type ColumnStats struct {
	InputMean, InputStd   []float64
	TargetMean, TargetStd []float64
}

// ColumnStats computes per-column statistics. Standard deviations are the
// unbiased sample estimate and are NaN for a single example.
func (d *Dataset) ColumnStats() ColumnStats {
	var cs ColumnStats
	cs.InputMean, cs.InputStd = columnStats(d.Inputs, d.NX)
	cs.TargetMean, cs.TargetStd = columnStats(d.Targets, d.NY)
	return cs
}

func columnStats(rows [][]float64, width int) (mean, std []float64) {
	mean = make([]float64, width)
	std = make([]float64, width)
	if len(rows) == 0 {
		return mean, std
	}
	col := make([]float64, len(rows))
	for j := 0; j < width; j++ {
		for i, row := range rows {
			col[i] = row[j]
		}
		mean[j], std[j] = stat.MeanStdDev(col, nil)
	}
	return mean, std
}

// Tensors packs a dataset into [N, NX] inputs and [N, NY] targets on b.
func Tensors[B tensor.Backend](d *Dataset, b B) (x, y *tensor.Tensor[B], err error) {
	if d.Len() == 0 {
		return nil, nil, fmt.Errorf("tensors: empty dataset: %w", ErrInvalidArgument)
	}
	if x, err = tensor.FromRows(d.Inputs, b); err != nil {
		return nil, nil, fmt.Errorf("tensors: inputs: %w", err)
	}
	if y, err = tensor.FromRows(d.Targets, b); err != nil {
		return nil, nil, fmt.Errorf("tensors: targets: %w", err)
	}
	return x, y, nil
}
