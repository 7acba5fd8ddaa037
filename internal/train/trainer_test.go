package train_test

import (
	"bytes"
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fitlab/internal/autodiff"
	"github.com/born-ml/fitlab/internal/backend/cpu"
	"github.com/born-ml/fitlab/internal/data"
	"github.com/born-ml/fitlab/internal/nn"
	"github.com/born-ml/fitlab/internal/optim"
	"github.com/born-ml/fitlab/internal/tensor"
	"github.com/born-ml/fitlab/internal/train"
)

type adBackend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

// newContext builds the 4x4 linear setup: 100 samples, 70/15/15, one affine layer.
func newContext(t *testing.T, seed int64, lr float64) *train.TrainingContext[*cpu.CPUBackend] {
	t.Helper()
	mapping, _, err := data.RandomLinearMap(4, 4, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	ds, err := data.Generate(data.GenerateConfig{Seed: seed, NX: 4, NY: 4, NumSamples: 100, InputScale: 1}, mapping, nil)
	require.NoError(t, err)
	split, err := data.NewSplit(ds, 0.7, 0.15)
	require.NoError(t, err)

	backend := autodiff.New(cpu.New())
	model, err := nn.NewLinearModel(4, 4, true, backend, nn.NewInitializer(seed+1))
	require.NoError(t, err)

	return &train.TrainingContext[*cpu.CPUBackend]{
		Backend:   backend,
		Model:     model,
		Loss:      nn.NewMSELoss(backend),
		Optimizer: optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: lr}),
		Split:     split,
	}
}

func TestTrain_EndToEndLinear(t *testing.T) {
	tc := newContext(t, 42, 0.01)
	initial, err := train.Evaluate(tc.Model, tc.Loss, tc.Split.Train, tc.Backend)
	require.NoError(t, err)

	trainer, err := train.NewTrainer(tc)
	require.NoError(t, err)
	hist, err := trainer.Train(context.Background(), train.TrainConfig{
		Epochs: 20, BatchSize: 10, Shuffle: true, Seed: 44,
	})
	require.NoError(t, err)

	assert.Equal(t, 7, hist.StepsPerEpoch)
	assert.Equal(t, 140, hist.Len())
	assert.Len(t, hist.Dev, 140)
	assert.Equal(t, 70, hist.NumTrain)

	final, err := train.Evaluate(tc.Model, tc.Loss, tc.Split.Train, tc.Backend)
	require.NoError(t, err)
	assert.Less(t, final, initial)

	trainMeans, devMeans := hist.EpochMeans()
	require.Len(t, trainMeans, 20)
	assert.Less(t, trainMeans[19], trainMeans[0])
	assert.Less(t, devMeans[19], devMeans[0])
	for _, v := range hist.Train {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestTrain_FitsWithLargerStep(t *testing.T) {
	tc := newContext(t, 7, 0.5)
	trainer, err := train.NewTrainer(tc)
	require.NoError(t, err)

	hist, err := trainer.Train(context.Background(), train.TrainConfig{Epochs: 200, BatchSize: 10, Shuffle: true, Seed: 9})
	require.NoError(t, err)

	_, dev, ok := hist.Final()
	require.True(t, ok)
	assert.Less(t, dev, 1e-3, "noiseless linear data should be fit almost exactly")
}

func TestTrain_Reproducible(t *testing.T) {
	run := func() (*train.History, []float64) {
		tc := newContext(t, 5, 0.05)
		trainer, err := train.NewTrainer(tc)
		require.NoError(t, err)
		hist, err := trainer.Train(context.Background(), train.TrainConfig{Epochs: 5, BatchSize: 16, Shuffle: true, Seed: 7})
		require.NoError(t, err)
		return hist, nn.Flatten(tc.Model.Parameters())
	}

	h1, p1 := run()
	h2, p2 := run()
	assert.Equal(t, h1, h2)
	assert.Equal(t, p1, p2)
}

func TestTrain_LeavesTapeIdle(t *testing.T) {
	tc := newContext(t, 1, 0.01)
	trainer, err := train.NewTrainer(tc)
	require.NoError(t, err)

	_, err = trainer.Train(context.Background(), train.TrainConfig{Epochs: 1, BatchSize: 10})
	require.NoError(t, err)
	assert.False(t, tc.Backend.Tape().IsRecording())
	assert.Zero(t, tc.Backend.Tape().NumOps())
	for _, p := range tc.Model.Parameters() {
		assert.Nil(t, p.Grad(), p.Name())
	}
}

func TestTrain_InvalidConfig(t *testing.T) {
	trainer, err := train.NewTrainer(newContext(t, 1, 0.01))
	require.NoError(t, err)

	tests := []struct {
		name string
		cfg  train.TrainConfig
	}{
		{"zero epochs", train.TrainConfig{Epochs: 0, BatchSize: 10}},
		{"negative epochs", train.TrainConfig{Epochs: -1, BatchSize: 10}},
		{"zero batch", train.TrainConfig{Epochs: 1, BatchSize: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hist, err := trainer.Train(context.Background(), tt.cfg)
			assert.ErrorIs(t, err, train.ErrInvalidArgument)
			assert.Nil(t, hist)
		})
	}
}

func TestNewTrainer_InvalidContext(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(tc *train.TrainingContext[*cpu.CPUBackend])
	}{
		{"nil backend", func(tc *train.TrainingContext[*cpu.CPUBackend]) { tc.Backend = nil }},
		{"nil model", func(tc *train.TrainingContext[*cpu.CPUBackend]) { tc.Model = nil }},
		{"nil loss", func(tc *train.TrainingContext[*cpu.CPUBackend]) { tc.Loss = nil }},
		{"nil optimizer", func(tc *train.TrainingContext[*cpu.CPUBackend]) { tc.Optimizer = nil }},
		{"nil split", func(tc *train.TrainingContext[*cpu.CPUBackend]) { tc.Split = nil }},
		{"input width mismatch", func(tc *train.TrainingContext[*cpu.CPUBackend]) {
			model, err := nn.NewLinearModel(3, 4, true, tc.Backend, nn.NewInitializer(1))
			require.NoError(t, err)
			tc.Model = model
		}},
		{"output width mismatch", func(tc *train.TrainingContext[*cpu.CPUBackend]) {
			model, err := nn.NewLinearModel(4, 2, true, tc.Backend, nn.NewInitializer(1))
			require.NoError(t, err)
			tc.Model = model
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newContext(t, 1, 0.01)
			tt.mutate(tc)
			_, err := train.NewTrainer(tc)
			assert.ErrorIs(t, err, train.ErrInvalidArgument)
		})
	}

	_, err := train.NewTrainer[*cpu.CPUBackend](nil)
	assert.ErrorIs(t, err, train.ErrInvalidArgument)
}

func TestTrain_Cancelled(t *testing.T) {
	trainer, err := train.NewTrainer(newContext(t, 1, 0.01))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hist, err := trainer.Train(ctx, train.TrainConfig{Epochs: 3, BatchSize: 10})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, hist)
	assert.Zero(t, hist.Len())
}

// partialBatchBreaks panics with a shape failure on three-row inputs,
// which only the last batch of a 70-example epoch with batch size 67 has.
type partialBatchBreaks struct {
	nn.Module[adBackend]
}

func (m partialBatchBreaks) Forward(x *tensor.Tensor[adBackend]) *tensor.Tensor[adBackend] {
	if x.Shape()[0] == 3 {
		panic(&tensor.ShapeError{Op: "test", Left: x.Shape()})
	}
	return m.Module.Forward(x)
}

func TestTrain_ShapeFailureBecomesError(t *testing.T) {
	tc := newContext(t, 1, 0.01)
	tc.Model = partialBatchBreaks{tc.Model}
	trainer, err := train.NewTrainer(tc)
	require.NoError(t, err)

	hist, err := trainer.Train(context.Background(), train.TrainConfig{Epochs: 2, BatchSize: 67})
	require.Error(t, err)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
	assert.Equal(t, 1, hist.Len(), "the step before the failure is kept")
	assert.False(t, tc.Backend.Tape().IsRecording())
}

type otherPanic struct {
	nn.Module[adBackend]
	calls *int
}

func (m otherPanic) Forward(x *tensor.Tensor[adBackend]) *tensor.Tensor[adBackend] {
	*m.calls++
	if *m.calls > 1 {
		panic("boom")
	}
	return m.Module.Forward(x)
}

func TestTrain_OtherPanicsPropagate(t *testing.T) {
	tc := newContext(t, 1, 0.01)
	calls := 0
	tc.Model = otherPanic{Module: tc.Model, calls: &calls}
	trainer, err := train.NewTrainer(tc)
	require.NoError(t, err)

	assert.PanicsWithValue(t, "boom", func() {
		_, _ = trainer.Train(context.Background(), train.TrainConfig{Epochs: 1, BatchSize: 10})
	})
}

func TestTrain_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	trainer, err := train.NewTrainer(newContext(t, 1, 0.01))
	require.NoError(t, err)
	_, err = trainer.Train(context.Background(), train.TrainConfig{
		Epochs: 3, BatchSize: 10, LogEvery: 7, Logger: logger,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, `"msg":"training started"`))
	assert.Equal(t, 3, strings.Count(out, `"msg":"epoch done"`))
	assert.Equal(t, 3, strings.Count(out, `"msg":"step"`))
	assert.Contains(t, out, `"dev_loss"`)
}

func TestEvaluateAndPredict(t *testing.T) {
	tc := newContext(t, 3, 0.01)
	tape := tc.Backend.Tape()
	tape.StartRecording()

	loss, err := train.Evaluate(tc.Model, tc.Loss, tc.Split.Dev, tc.Backend)
	require.NoError(t, err)
	assert.Greater(t, loss, 0.0)
	assert.Zero(t, tape.NumOps(), "evaluation must not be recorded")
	assert.True(t, tape.IsRecording(), "recording state is restored")

	rows, err := train.Predict(tc.Model, tc.Split.Test, tc.Backend)
	require.NoError(t, err)
	require.Len(t, rows, tc.Split.Test.Len())
	assert.Len(t, rows[0], 4)

	want, err := nn.MSE(rows, tc.Split.Test.Targets)
	require.NoError(t, err)
	got, err := train.Evaluate(tc.Model, tc.Loss, tc.Split.Test, tc.Backend)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-12)

	narrow, err := data.NewDataset([][]float64{{1, 2}}, [][]float64{{1, 2, 3, 4}})
	require.NoError(t, err)
	_, err = train.Evaluate(tc.Model, tc.Loss, narrow, tc.Backend)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}
