// Package train fits a model to a data split by mini-batch gradient descent
// and records the loss history for plotting.
package train

import (
	"fmt"

	"github.com/born-ml/fitlab/internal/autodiff"
	"github.com/born-ml/fitlab/internal/data"
	"github.com/born-ml/fitlab/internal/nn"
	"github.com/born-ml/fitlab/internal/optim"
	"github.com/born-ml/fitlab/internal/tensor"
)

// ErrInvalidArgument is returned for incomplete contexts and bad run settings.
var ErrInvalidArgument = tensor.ErrInvalidArgument

// TrainingContext bundles everything one training run reads and updates.
// The trainer is the only writer of the model parameters during a run.
type TrainingContext[B tensor.Backend] struct {
	Backend   *autodiff.AutodiffBackend[B]
	Model     nn.Module[*autodiff.AutodiffBackend[B]]
	Loss      *nn.MSELoss[*autodiff.AutodiffBackend[B]]
	Optimizer optim.Optimizer
	Split     *data.Split
}

// Validate reports missing members and a model whose widths do not fit the data.
func (tc *TrainingContext[B]) Validate() error {
	switch {
	case tc == nil:
		return fmt.Errorf("training context: nil: %w", ErrInvalidArgument)
	case tc.Backend == nil:
		return fmt.Errorf("training context: nil backend: %w", ErrInvalidArgument)
	case tc.Model == nil:
		return fmt.Errorf("training context: nil model: %w", ErrInvalidArgument)
	case tc.Loss == nil:
		return fmt.Errorf("training context: nil loss: %w", ErrInvalidArgument)
	case tc.Optimizer == nil:
		return fmt.Errorf("training context: nil optimizer: %w", ErrInvalidArgument)
	case tc.Split == nil || tc.Split.Train == nil || tc.Split.Dev == nil:
		return fmt.Errorf("training context: missing split: %w", ErrInvalidArgument)
	case tc.Split.Train.Len() == 0 || tc.Split.Dev.Len() == 0:
		return fmt.Errorf("training context: empty train or dev partition: %w", ErrInvalidArgument)
	}

	// A one-row forward pass and loss surfaces width mismatches before any step.
	if _, err := Evaluate(tc.Model, tc.Loss, tc.Split.Train.Slice(0, 1), tc.Backend); err != nil {
		return fmt.Errorf("training context: model does not fit data (nx=%d, ny=%d): %w: %w",
			tc.Split.Train.NX, tc.Split.Train.NY, ErrInvalidArgument, err)
	}
	return nil
}
