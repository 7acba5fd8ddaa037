package train

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/fitlab/internal/autodiff"
	"github.com/born-ml/fitlab/internal/data"
	"github.com/born-ml/fitlab/internal/tensor"
)

// TrainConfig captures the knobs of one training run.
type TrainConfig struct {
	Epochs    int
	BatchSize int
	Shuffle   bool
	Seed      int64        // shuffle seed
	LogEvery  int          // log every N steps at Debug; 0 disables step logs
	Logger    *slog.Logger // nil discards
}

// Trainer runs mini-batch gradient descent over a TrainingContext.
type Trainer[B tensor.Backend] struct {
	tc *TrainingContext[B]
}

// NewTrainer validates tc and returns a Trainer for it.
func NewTrainer[B tensor.Backend](tc *TrainingContext[B]) (*Trainer[B], error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	return &Trainer[B]{tc: tc}, nil
}

// Train runs cfg.Epochs epochs over the train partition.
//
// Every step records the forward pass on the tape, backpropagates the batch
// loss, updates the parameters, then evaluates the whole dev partition
// without recording. Both losses are appended to the returned History.
//
// The context is checked between steps. On cancellation or a failing step,
// the history recorded so far is returned together with the error.
func (t *Trainer[B]) Train(ctx context.Context, cfg TrainConfig) (*History, error) {
	if cfg.Epochs <= 0 {
		return nil, fmt.Errorf("train: epochs %d: %w", cfg.Epochs, ErrInvalidArgument)
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("train: batch size %d: %w", cfg.BatchSize, ErrInvalidArgument)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tc := t.tc
	sampler, err := data.NewBatchSampler(tc.Split.Train, cfg.BatchSize, cfg.Shuffle, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}
	devX, devY, err := data.Tensors(tc.Split.Dev, tc.Backend)
	if err != nil {
		return nil, fmt.Errorf("train: dev: %w", err)
	}

	hist := &History{
		NumTrain:      tc.Split.Train.Len(),
		BatchSize:     cfg.BatchSize,
		StepsPerEpoch: sampler.NumBatches(),
	}

	tape := tc.Backend.Tape()
	defer tape.Clear()
	defer tape.StopRecording()

	logger.Info("training started",
		"epochs", cfg.Epochs,
		"batch_size", cfg.BatchSize,
		"steps_per_epoch", hist.StepsPerEpoch,
		"lr", tc.Optimizer.GetLR(),
	)

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		start := time.Now()
		for batch := range sampler.Batches() {
			if err := ctx.Err(); err != nil {
				return hist, err
			}

			trainLoss, devLoss, err := t.step(batch, devX, devY)
			if err != nil {
				return hist, fmt.Errorf("train: epoch %d step %d: %w", epoch, hist.Len()+1, err)
			}
			hist.Append(trainLoss, devLoss)

			if cfg.LogEvery > 0 && hist.Len()%cfg.LogEvery == 0 {
				logger.Debug("step",
					"epoch", epoch,
					"step", hist.Len(),
					"train_loss", trainLoss,
					"dev_loss", devLoss,
				)
			}
		}

		lo := (epoch - 1) * hist.StepsPerEpoch
		logger.Info("epoch done",
			"epoch", epoch,
			"train_loss", stat.Mean(hist.Train[lo:], nil),
			"dev_loss", hist.Dev[hist.Len()-1],
			"elapsed", time.Since(start),
		)
	}

	return hist, nil
}

// step performs one update on batch and returns the batch loss and the dev
// loss after the update.
func (t *Trainer[B]) step(batch data.Batch, devX, devY *tensor.Tensor[*autodiff.AutodiffBackend[B]]) (trainLoss, devLoss float64, err error) {
	defer recoverShape("step", &err)

	tc := t.tc
	backend := tc.Backend
	tape := backend.Tape()

	x, y, err := data.Tensors(batch.Dataset, backend)
	if err != nil {
		return 0, 0, err
	}

	tape.Clear()
	tape.StartRecording()
	loss := tc.Loss.Forward(tc.Model.Forward(x), y)
	grads := autodiff.Backward(loss, backend)
	tape.StopRecording()
	tape.Clear()

	tc.Optimizer.Step(grads)
	tc.Optimizer.ZeroGrad()

	devLoss = tc.Loss.Forward(tc.Model.Forward(devX), devY).Item()
	return loss.Item(), devLoss, nil
}
