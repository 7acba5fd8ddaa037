// Package experiment assembles one complete fitting run from a config:
// ground truth, data, split, model, optimizer and trainer.
package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/fitlab/internal/autodiff"
	"github.com/born-ml/fitlab/internal/backend/cpu"
	"github.com/born-ml/fitlab/internal/config"
	"github.com/born-ml/fitlab/internal/data"
	"github.com/born-ml/fitlab/internal/nn"
	"github.com/born-ml/fitlab/internal/optim"
	"github.com/born-ml/fitlab/internal/train"
)

// Backend is the differentiable CPU backend every run uses.
type Backend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

// Result is everything a run produced.
type Result struct {
	Truth   *mat.Dense // ground-truth matrix W, ny x nx
	Bias    []float64  // ground-truth bias, affine mapping only
	Split   *data.Split
	Model   *nn.Sequential[Backend]
	History *train.History

	InitialTrainLoss float64
	TestLoss         float64
	Elapsed          time.Duration
}

// Params returns a copy of the fitted parameter values.
func (r *Result) Params() []float64 {
	return nn.Flatten(r.Model.Parameters())
}

// Run executes the experiment described by cfg.
//
// If training stops early (cancellation or a failing step) the partial result
// is returned together with the error. TestLoss is only set on success.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	res := &Result{}
	mapping, err := res.groundTruth(cfg)
	if err != nil {
		return nil, err
	}

	var noise data.NoiseFunc
	if cfg.Data.NoiseStd > 0 {
		noise = data.GaussianNoise(cfg.Data.NoiseStd)
	}
	ds, err := data.Generate(data.GenerateConfig{
		Seed:       cfg.DataSeed(),
		NX:         cfg.Data.NX,
		NY:         cfg.Data.NY,
		NumSamples: cfg.Data.NumSamples,
		InputScale: cfg.Data.InputScale,
	}, mapping, noise)
	if err != nil {
		return nil, fmt.Errorf("experiment: %w", err)
	}

	res.Split, err = data.NewSplit(ds, cfg.Split.Train, cfg.Split.Dev)
	if err != nil {
		return nil, fmt.Errorf("experiment: %w", err)
	}

	backend := autodiff.New(cpu.New())
	res.Model, err = buildModel(cfg, backend)
	if err != nil {
		return nil, fmt.Errorf("experiment: %w", err)
	}
	optimizer, err := optim.New(res.Model.Parameters(), cfg.Optimizer)
	if err != nil {
		return nil, fmt.Errorf("experiment: %w", err)
	}
	loss := nn.NewMSELoss(backend)

	tc := &train.TrainingContext[*cpu.CPUBackend]{
		Backend:   backend,
		Model:     res.Model,
		Loss:      loss,
		Optimizer: optimizer,
		Split:     res.Split,
	}
	trainer, err := train.NewTrainer(tc)
	if err != nil {
		return nil, fmt.Errorf("experiment: %w", err)
	}

	res.InitialTrainLoss, err = train.Evaluate(tc.Model, loss, res.Split.Train, backend)
	if err != nil {
		return nil, fmt.Errorf("experiment: %w", err)
	}

	logger.Info("experiment ready",
		"mapping", cfg.Data.Mapping,
		"model", cfg.Model.Kind,
		"layers", cfg.Layers(),
		"params", nn.NumParameters(res.Model.Parameters()),
		"optimizer", cfg.Optimizer.Kind,
		"train", res.Split.Train.Len(),
		"dev", res.Split.Dev.Len(),
		"test", res.Split.Test.Len(),
		"initial_train_loss", res.InitialTrainLoss)

	start := time.Now()
	res.History, err = trainer.Train(ctx, train.TrainConfig{
		Epochs:    cfg.Train.Epochs,
		BatchSize: cfg.Train.BatchSize,
		Shuffle:   cfg.Train.Shuffle,
		Seed:      cfg.ShuffleSeed(),
		LogEvery:  cfg.Train.LogEvery,
		Logger:    logger,
	})
	res.Elapsed = time.Since(start)
	if err != nil {
		return res, fmt.Errorf("experiment: %w", err)
	}

	res.TestLoss, err = train.Evaluate(tc.Model, loss, res.Split.Test, backend)
	if err != nil {
		return res, fmt.Errorf("experiment: %w", err)
	}

	finalTrain, finalDev, _ := res.History.Final()
	logger.Info("experiment done",
		"steps", res.History.Len(),
		"train_loss", finalTrain,
		"dev_loss", finalDev,
		"test_loss", res.TestLoss,
		"elapsed", res.Elapsed)
	return res, nil
}

// groundTruth draws the hidden mapping from its own seed so that changing
// the mapping kind leaves the inputs untouched.
func (r *Result) groundTruth(cfg *config.Config) (data.MappingFunc, error) {
	//nolint:gosec // Reproducible synthetic data, not security-sensitive.
	rng := rand.New(rand.NewSource(cfg.MappingSeed()))
	r.Truth = data.RandomMatrix(cfg.Data.NX, cfg.Data.NY, rng)
	linear := data.LinearMap(r.Truth)

	switch cfg.Data.Mapping {
	case config.MappingLinear:
		return linear, nil
	case config.MappingAffine:
		r.Bias = make([]float64, cfg.Data.NY)
		for i := range r.Bias {
			r.Bias[i] = rng.Float64()*2 - 1
		}
		return data.AffineMap(r.Truth, r.Bias), nil
	case config.MappingTanh:
		return data.Nonlinear(linear, math.Tanh), nil
	case config.MappingSin:
		return data.Nonlinear(linear, math.Sin), nil
	default:
		return nil, fmt.Errorf("experiment: mapping %q: %w", cfg.Data.Mapping, config.ErrInvalidArgument)
	}
}

func buildModel(cfg *config.Config, backend Backend) (*nn.Sequential[Backend], error) {
	initializer := nn.NewInitializer(cfg.InitSeed())
	if cfg.Model.Kind != config.ModelDeep {
		return nn.NewLinearModel(cfg.Data.NX, cfg.Data.NY, cfg.Model.Bias, backend, initializer)
	}
	act, err := nn.ParseActivation(cfg.Model.Activation)
	if err != nil {
		return nil, err
	}
	return nn.NewDeepModel(cfg.Layers(), act, backend, initializer)
}
