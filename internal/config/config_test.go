package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fitlab/internal/optim"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.OutOfRange())

	assert.Equal(t, 4, cfg.Data.NX)
	assert.Equal(t, 4, cfg.Data.NY)
	assert.Equal(t, 100, cfg.Data.NumSamples)
	assert.InDelta(t, 0.7, cfg.Split.Train, 1e-12)
	assert.InDelta(t, 0.15, cfg.Split.Dev, 1e-12)
	assert.Equal(t, ModelLinear, cfg.Model.Kind)
	assert.Equal(t, optim.KindSGD, cfg.Optimizer.Kind)
	assert.InDelta(t, 0.01, cfg.Optimizer.LR, 1e-12)
	assert.Equal(t, 20, cfg.Train.Epochs)
	assert.Equal(t, 10, cfg.Train.BatchSize)
	assert.Equal(t, []int{4, 4}, cfg.Layers())
}

func TestParse_OverlaysDefaults(t *testing.T) {
	src := `
seed: 7
data:
  nx: 3
  mapping: tanh
model:
  kind: deep
  hidden: [8, 8]
  activation: relu
optimizer:
  kind: adam
  lr: 0.005
train:
  epochs: 50
`
	cfg, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 3, cfg.Data.NX)
	assert.Equal(t, 4, cfg.Data.NY, "unset keys keep defaults")
	assert.Equal(t, MappingTanh, cfg.Data.Mapping)
	assert.Equal(t, []int{3, 8, 8, 4}, cfg.Layers())
	assert.Equal(t, optim.KindAdam, cfg.Optimizer.Kind)
	assert.Equal(t, 50, cfg.Train.Epochs)
	assert.Equal(t, 10, cfg.Train.BatchSize)
	assert.True(t, cfg.Train.Shuffle)
	assert.True(t, cfg.Model.Bias)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse(strings.NewReader("data:\n  widht: 3\n"))
	require.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse(strings.NewReader("data:\n  nx: 0\ntrain:\n  epochs: -1\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Contains(t, err.Error(), "data.nx")
	assert.Contains(t, err.Error(), "train.epochs")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("train:\n  batch_size: 20\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Train.BatchSize)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Seed = 99
	cfg.Model.Kind = ModelDeep

	var buf bytes.Buffer
	require.NoError(t, cfg.WriteYAML(&buf))
	assert.Contains(t, buf.String(), "num_samples: 100")

	back, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.ApplyOverrides(Overrides{
		Seed:       3,
		NX:         2,
		NumSamples: 500,
		Model:      "deep",
		LR:         0.1,
		BatchSize:  50,
	})

	assert.Equal(t, int64(3), cfg.Seed)
	assert.Equal(t, 2, cfg.Data.NX)
	assert.Equal(t, 4, cfg.Data.NY)
	assert.Equal(t, 500, cfg.Data.NumSamples)
	assert.Equal(t, ModelDeep, cfg.Model.Kind)
	assert.InDelta(t, 0.1, cfg.Optimizer.LR, 1e-12)
	assert.Equal(t, 50, cfg.Train.BatchSize)
	assert.Equal(t, 20, cfg.Train.Epochs)

	before := *cfg
	cfg.ApplyOverrides(Overrides{})
	assert.Equal(t, before, *cfg)
}

func TestApplyOverrides_ExplicitZero(t *testing.T) {
	cfg := Default()
	cfg.Data.NoiseStd = 0.3
	cfg.Train.LogEvery = 5

	cfg.ApplyOverrides(Overrides{Set: map[string]bool{"seed": true, "noise": true, "log-every": true}})
	assert.Equal(t, int64(0), cfg.Seed)
	assert.Zero(t, cfg.Data.NoiseStd)
	assert.Zero(t, cfg.Train.LogEvery)
	assert.Equal(t, 4, cfg.Data.NX, "unset flags keep their value")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"ny", func(c *Config) { c.Data.NY = -1 }, "data.ny"},
		{"samples", func(c *Config) { c.Data.NumSamples = 0 }, "data.num_samples"},
		{"noise", func(c *Config) { c.Data.NoiseStd = -0.1 }, "data.noise_std"},
		{"mapping", func(c *Config) { c.Data.Mapping = "cubic" }, "data.mapping"},
		{"split sum", func(c *Config) { c.Split.Train, c.Split.Dev = 0.9, 0.1 }, "split"},
		{"split zero dev", func(c *Config) { c.Split.Dev = 0 }, "split"},
		{"model kind", func(c *Config) { c.Model.Kind = "conv" }, "model.kind"},
		{"deep without hidden", func(c *Config) { c.Model.Kind, c.Model.Hidden = ModelDeep, nil }, "model.hidden"},
		{"hidden width", func(c *Config) { c.Model.Kind, c.Model.Hidden = ModelDeep, []int{4, 0} }, "model.hidden[1]"},
		{"activation", func(c *Config) { c.Model.Activation = "gelu" }, "model.activation"},
		{"optimizer", func(c *Config) { c.Optimizer.Kind = "lbfgs" }, "optimizer.kind"},
		{"lr", func(c *Config) { c.Optimizer.LR = 0 }, "optimizer.lr"},
		{"momentum", func(c *Config) { c.Optimizer.Momentum = 1 }, "optimizer.momentum"},
		{"beta1", func(c *Config) { c.Optimizer.Kind, c.Optimizer.Beta1 = optim.KindAdam, 1 }, "optimizer.beta1"},
		{"beta2", func(c *Config) { c.Optimizer.Kind, c.Optimizer.Beta2 = optim.KindAdam, 1.2 }, "optimizer.beta2"},
		{"eps", func(c *Config) { c.Optimizer.Kind, c.Optimizer.Eps = optim.KindAdam, -1 }, "optimizer.eps"},
		{"input scale", func(c *Config) { c.Data.InputScale = -1 }, "data.input_scale"},
		{"batch", func(c *Config) { c.Train.BatchSize = 0 }, "train.batch_size"},
		{"log every", func(c *Config) { c.Train.LogEvery = -1 }, "train.log_every"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidArgument))
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	var nilCfg *Config
	assert.ErrorIs(t, nilCfg.Validate(), ErrInvalidArgument)
}

func TestOutOfRange(t *testing.T) {
	cfg := Default()
	cfg.Data.NX = 12
	cfg.Data.NumSamples = 5
	cfg.Train.BatchSize = 25
	cfg.Train.Epochs = 500

	warnings := cfg.OutOfRange()
	require.Len(t, warnings, 4)
	assert.Contains(t, warnings[0], "data.nx=12")
	assert.Contains(t, warnings[1], "data.num_samples=5")
	assert.Contains(t, warnings[2], "not a multiple of 10")
	assert.Contains(t, warnings[3], "train.epochs=500")

	assert.NoError(t, cfg.Validate(), "out-of-range values still run")
}

func TestSeeds(t *testing.T) {
	cfg := Default()
	cfg.Seed = 10
	seeds := []int64{cfg.DataSeed(), cfg.InitSeed(), cfg.ShuffleSeed(), cfg.MappingSeed()}
	assert.Equal(t, []int64{10, 11, 12, 13}, seeds)
}
