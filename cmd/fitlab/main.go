// Command fitlab generates a synthetic regression problem, fits a model to it
// by mini-batch gradient descent and writes the train/dev loss curves as CSV.
//
// Usage:
//
//	fitlab [flags]
//	fitlab version
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/born-ml/fitlab/internal/config"
	"github.com/born-ml/fitlab/internal/experiment"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("fitlab %s\n", version)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("fitlab: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("fitlab", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfgPath := fs.String("config", "", "Path to YAML config (defaults built in)")
	out := fs.String("out", "", "Write the loss history CSV here (- for stdout)")
	logFormat := fs.String("log-format", "text", "Log format: text or json")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error")
	printConfig := fs.Bool("print-config", false, "Print the effective config and exit")

	var o config.Overrides
	fs.Int64Var(&o.Seed, "seed", 0, "PRNG seed")
	fs.IntVar(&o.NX, "nx", 0, "Input width")
	fs.IntVar(&o.NY, "ny", 0, "Output width")
	fs.IntVar(&o.NumSamples, "samples", 0, "Number of generated samples")
	fs.Float64Var(&o.NoiseStd, "noise", 0, "Target noise standard deviation")
	fs.StringVar(&o.Mapping, "mapping", "", "Ground truth: linear, affine, tanh, sin")
	fs.StringVar(&o.Model, "model", "", "Model: linear or deep")
	fs.StringVar(&o.Activation, "activation", "", "Hidden activation for deep models")
	fs.StringVar(&o.Optimizer, "optimizer", "", "Optimizer: sgd or adam")
	fs.Float64Var(&o.LR, "lr", 0, "Learning rate")
	fs.IntVar(&o.Epochs, "epochs", 0, "Number of epochs")
	fs.IntVar(&o.BatchSize, "batch-size", 0, "Batch size")
	fs.IntVar(&o.LogEvery, "log-every", 0, "Log every N steps at debug level")

	if err := fs.Parse(args); err != nil {
		return err
	}
	o.Set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.Set[f.Name] = true })

	logger, err := newLogger(stderr, *logFormat, *logLevel)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if *cfgPath != "" {
		if cfg, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}
	cfg.ApplyOverrides(o)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	for _, w := range cfg.OutOfRange() {
		logger.Warn("setting outside documented range", "detail", w)
	}

	if *printConfig {
		return cfg.WriteYAML(stdout)
	}

	res, runErr := experiment.Run(ctx, cfg, logger)
	if res != nil && res.History != nil && *out != "" {
		if err := writeHistory(res, *out, stdout); err != nil {
			return errors.Join(runErr, err)
		}
		logger.Info("history written", "path", *out, "steps", res.History.Len())
	}
	return runErr
}

func writeHistory(res *experiment.Result, path string, stdout io.Writer) error {
	if path == "-" {
		return res.History.WriteCSV(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create history: %w", err)
	}
	if err := res.History.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newLogger(w io.Writer, format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("log format %q: want text or json", format)
	}
}
