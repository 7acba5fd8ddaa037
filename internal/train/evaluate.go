package train

import (
	"fmt"

	"github.com/born-ml/fitlab/internal/autodiff"
	"github.com/born-ml/fitlab/internal/data"
	"github.com/born-ml/fitlab/internal/nn"
	"github.com/born-ml/fitlab/internal/tensor"
)

// Evaluate returns the loss of model over the whole dataset.
//
// When backend records onto a gradient tape, recording is paused for the
// evaluation. Shape failures come back as errors wrapping tensor.ErrShapeMismatch.
func Evaluate[B tensor.Backend](model nn.Module[B], loss *nn.MSELoss[B], ds *data.Dataset, backend B) (value float64, err error) {
	defer pauseRecording(backend)()
	defer recoverShape("evaluate", &err)

	x, y, err := data.Tensors(ds, backend)
	if err != nil {
		return 0, fmt.Errorf("evaluate: %w", err)
	}
	return loss.Forward(model.Forward(x), y).Item(), nil
}

// Predict runs model over the inputs of ds and returns one row per example.
func Predict[B tensor.Backend](model nn.Module[B], ds *data.Dataset, backend B) (rows [][]float64, err error) {
	defer pauseRecording(backend)()
	defer recoverShape("predict", &err)

	x, err := tensor.FromRows(ds.Inputs, backend)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	return model.Forward(x).Rows(), nil
}

// pauseRecording stops tape recording on autodiff backends and returns the
// function that restores the previous state.
func pauseRecording(backend any) func() {
	bc, ok := backend.(autodiff.BackwardCapable)
	if !ok {
		return func() {}
	}
	tape := bc.GetTape()
	if !tape.IsRecording() {
		return func() {}
	}
	tape.StopRecording()
	return tape.StartRecording
}

// recoverShape turns a *tensor.ShapeError panic into *errp.
// Any other panic is re-raised.
func recoverShape(op string, errp *error) {
	r := recover()
	if r == nil {
		return
	}
	se := tensor.AsShapeError(r)
	if se == nil {
		panic(r)
	}
	*errp = fmt.Errorf("%s: %w", op, se)
}
