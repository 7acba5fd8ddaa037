package config

import (
	"errors"
	"fmt"

	"github.com/born-ml/fitlab/internal/nn"
	"github.com/born-ml/fitlab/internal/optim"
)

// Documented ranges of the interactive controls. Values outside them still
// run; OutOfRange reports them so the caller can warn.
const (
	MinDim, MaxDim             = 1, 10
	MinSamples, MaxSamples     = 10, 1000
	MinBatchSize, MaxBatchSize = 10, 200
	BatchSizeStep              = 10
	MinEpochs, MaxEpochs       = 1, 200
)

// Overrides captures CLI supplied values. Zero values leave the config
// unchanged unless their flag name is in Set.
type Overrides struct {
	Seed       int64
	NX         int
	NY         int
	NumSamples int
	NoiseStd   float64
	Mapping    string
	Model      string
	Activation string
	Optimizer  string
	LR         float64
	Epochs     int
	BatchSize  int
	LogEvery   int

	// Set holds the flag names given explicitly, e.g. "seed" or "noise".
	Set map[string]bool
}

func (o Overrides) use(name string, nonZero bool) bool {
	return nonZero || o.Set[name]
}

// ApplyOverrides updates c using any non-zero or explicitly set override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.use("seed", o.Seed != 0) {
		c.Seed = o.Seed
	}
	if o.use("nx", o.NX > 0) {
		c.Data.NX = o.NX
	}
	if o.use("ny", o.NY > 0) {
		c.Data.NY = o.NY
	}
	if o.use("samples", o.NumSamples > 0) {
		c.Data.NumSamples = o.NumSamples
	}
	if o.use("noise", o.NoiseStd > 0) {
		c.Data.NoiseStd = o.NoiseStd
	}
	if o.use("mapping", o.Mapping != "") {
		c.Data.Mapping = Mapping(o.Mapping)
	}
	if o.use("model", o.Model != "") {
		c.Model.Kind = ModelKind(o.Model)
	}
	if o.use("activation", o.Activation != "") {
		c.Model.Activation = o.Activation
	}
	if o.use("optimizer", o.Optimizer != "") {
		c.Optimizer.Kind = optim.Kind(o.Optimizer)
	}
	if o.use("lr", o.LR > 0) {
		c.Optimizer.LR = o.LR
	}
	if o.use("epochs", o.Epochs > 0) {
		c.Train.Epochs = o.Epochs
	}
	if o.use("batch-size", o.BatchSize > 0) {
		c.Train.BatchSize = o.BatchSize
	}
	if o.use("log-every", o.LogEvery > 0) {
		c.Train.LogEvery = o.LogEvery
	}
}

// Validate verifies the config is runnable. All problems are reported together.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil: %w", ErrInvalidArgument)
	}

	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format+": %w", append(args, ErrInvalidArgument)...))
		}
	}

	check(c.Data.NX > 0, "data.nx must be > 0 (got %d)", c.Data.NX)
	check(c.Data.NY > 0, "data.ny must be > 0 (got %d)", c.Data.NY)
	check(c.Data.NumSamples > 0, "data.num_samples must be > 0 (got %d)", c.Data.NumSamples)
	check(c.Data.InputScale >= 0, "data.input_scale must be >= 0 (got %g)", c.Data.InputScale)
	check(c.Data.NoiseStd >= 0, "data.noise_std must be >= 0 (got %g)", c.Data.NoiseStd)
	switch c.Data.Mapping {
	case MappingLinear, MappingAffine, MappingTanh, MappingSin:
	default:
		check(false, "data.mapping %q is not one of linear, affine, tanh, sin", c.Data.Mapping)
	}

	check(c.Split.Train > 0 && c.Split.Dev > 0 && c.Split.Train+c.Split.Dev < 1,
		"split fractions train=%g dev=%g must be positive with sum < 1", c.Split.Train, c.Split.Dev)

	switch c.Model.Kind {
	case ModelLinear:
	case ModelDeep:
		check(len(c.Model.Hidden) > 0, "model.hidden must list at least one layer for a deep model")
		for i, h := range c.Model.Hidden {
			check(h > 0, "model.hidden[%d] must be > 0 (got %d)", i, h)
		}
	default:
		check(false, "model.kind %q is not one of linear, deep", c.Model.Kind)
	}
	if _, err := nn.ParseActivation(c.Model.Activation); err != nil {
		errs = append(errs, fmt.Errorf("model.activation: %w", err))
	}

	switch c.Optimizer.Kind {
	case optim.KindSGD, optim.KindAdam, "":
	default:
		check(false, "optimizer.kind %q is not one of sgd, adam", c.Optimizer.Kind)
	}
	check(c.Optimizer.LR > 0, "optimizer.lr must be > 0 (got %g)", c.Optimizer.LR)
	check(c.Optimizer.Momentum >= 0 && c.Optimizer.Momentum < 1,
		"optimizer.momentum must be in [0, 1) (got %g)", c.Optimizer.Momentum)
	check(c.Optimizer.Beta1 >= 0 && c.Optimizer.Beta1 < 1,
		"optimizer.beta1 must be in [0, 1) (got %g)", c.Optimizer.Beta1)
	check(c.Optimizer.Beta2 >= 0 && c.Optimizer.Beta2 < 1,
		"optimizer.beta2 must be in [0, 1) (got %g)", c.Optimizer.Beta2)
	check(c.Optimizer.Eps >= 0, "optimizer.eps must be >= 0 (got %g)", c.Optimizer.Eps)

	check(c.Train.Epochs > 0, "train.epochs must be > 0 (got %d)", c.Train.Epochs)
	check(c.Train.BatchSize > 0, "train.batch_size must be > 0 (got %d)", c.Train.BatchSize)
	check(c.Train.LogEvery >= 0, "train.log_every must be >= 0 (got %d)", c.Train.LogEvery)

	return errors.Join(errs...)
}

// OutOfRange lists settings outside the documented control ranges.
func (c *Config) OutOfRange() []string {
	var warnings []string
	outside := func(name string, v, lo, hi int) {
		if v < lo || v > hi {
			warnings = append(warnings, fmt.Sprintf("%s=%d outside [%d, %d]", name, v, lo, hi))
		}
	}

	outside("data.nx", c.Data.NX, MinDim, MaxDim)
	outside("data.ny", c.Data.NY, MinDim, MaxDim)
	outside("data.num_samples", c.Data.NumSamples, MinSamples, MaxSamples)
	outside("train.batch_size", c.Train.BatchSize, MinBatchSize, MaxBatchSize)
	if c.Train.BatchSize%BatchSizeStep != 0 {
		warnings = append(warnings, fmt.Sprintf("train.batch_size=%d is not a multiple of %d", c.Train.BatchSize, BatchSizeStep))
	}
	outside("train.epochs", c.Train.Epochs, MinEpochs, MaxEpochs)
	return warnings
}
