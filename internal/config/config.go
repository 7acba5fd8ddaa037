// Package config loads and validates experiment settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/fitlab/internal/nn"
	"github.com/born-ml/fitlab/internal/optim"
	"github.com/born-ml/fitlab/internal/tensor"
)

// ErrInvalidArgument is wrapped by every validation error.
var ErrInvalidArgument = tensor.ErrInvalidArgument

// Mapping names the ground-truth function used to label generated data.
type Mapping string

// Supported ground-truth mappings.
const (
	MappingLinear Mapping = "linear" // y = W x
	MappingAffine Mapping = "affine" // y = W x + b
	MappingTanh   Mapping = "tanh"   // y = tanh(W x)
	MappingSin    Mapping = "sin"    // y = sin(W x)
)

// ModelKind selects the model family.
type ModelKind string

// Supported model families.
const (
	ModelLinear ModelKind = "linear"
	ModelDeep   ModelKind = "deep"
)

// Config captures the knobs of one experiment.
type Config struct {
	Seed      int64        `yaml:"seed"`
	Data      DataConfig   `yaml:"data"`
	Split     SplitConfig  `yaml:"split"`
	Model     ModelConfig  `yaml:"model"`
	Optimizer optim.Config `yaml:"optimizer"`
	Train     TrainConfig  `yaml:"train"`
}

// DataConfig describes the synthetic dataset.
type DataConfig struct {
	NX         int     `yaml:"nx"`
	NY         int     `yaml:"ny"`
	NumSamples int     `yaml:"num_samples"`
	InputScale float64 `yaml:"input_scale"`
	Mapping    Mapping `yaml:"mapping"`
	NoiseStd   float64 `yaml:"noise_std"`
}

// SplitConfig holds the train and dev fractions. Test takes the rest.
type SplitConfig struct {
	Train float64 `yaml:"train"`
	Dev   float64 `yaml:"dev"`
}

// ModelConfig describes the network to fit.
type ModelConfig struct {
	Kind       ModelKind `yaml:"kind"`
	Hidden     []int     `yaml:"hidden"`
	Activation string    `yaml:"activation"`
	Bias       bool      `yaml:"bias"`
}

// TrainConfig holds the training loop settings.
type TrainConfig struct {
	Epochs    int  `yaml:"epochs"`
	BatchSize int  `yaml:"batch_size"`
	Shuffle   bool `yaml:"shuffle"`
	LogEvery  int  `yaml:"log_every"`
}

// Default returns the baseline experiment: a 4x4 linear map, 100 samples,
// a 70/15/15 split and one affine layer trained with SGD.
func Default() *Config {
	return &Config{
		Seed: 42,
		Data: DataConfig{
			NX:         4,
			NY:         4,
			NumSamples: 100,
			InputScale: 1,
			Mapping:    MappingLinear,
		},
		Split: SplitConfig{Train: 0.7, Dev: 0.15},
		Model: ModelConfig{
			Kind:       ModelLinear,
			Hidden:     []int{16},
			Activation: string(nn.ActivationTanh),
			Bias:       true,
		},
		Optimizer: optim.Config{Kind: optim.KindSGD, LR: 0.01},
		Train: TrainConfig{
			Epochs:    20,
			BatchSize: 10,
			Shuffle:   true,
			LogEvery:  10,
		},
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r on top of Default and validates the result.
// Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteYAML writes the effective configuration.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// Seeds derived from Config.Seed, one per random consumer.
func (c *Config) DataSeed() int64    { return c.Seed }
func (c *Config) InitSeed() int64    { return c.Seed + 1 }
func (c *Config) ShuffleSeed() int64 { return c.Seed + 2 }
func (c *Config) MappingSeed() int64 { return c.Seed + 3 }

// Layers returns the layer widths of the configured model, input first.
func (c *Config) Layers() []int {
	if c.Model.Kind != ModelDeep {
		return []int{c.Data.NX, c.Data.NY}
	}
	sizes := make([]int, 0, len(c.Model.Hidden)+2)
	sizes = append(sizes, c.Data.NX)
	sizes = append(sizes, c.Model.Hidden...)
	return append(sizes, c.Data.NY)
}
