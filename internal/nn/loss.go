package nn

import (
	"github.com/born-ml/fitlab/internal/tensor"
)

// MSELoss computes the halved squared error averaged over the batch.
//
//	Loss = sum(0.5 * (predictions - targets)²) / batch_size
//
// The 0.5 factor cancels the 2 of the derivative, so the gradient with
// respect to the predictions is (predictions - targets) / batch_size.
//
// Example:
//
//	mse := nn.NewMSELoss(backend)
//	predictions := model.Forward(input)
//	loss := mse.Forward(predictions, targets) // scalar, recorded on the tape
type MSELoss[B tensor.Backend] struct {
	backend B
}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss[B tensor.Backend](backend B) *MSELoss[B] {
	return &MSELoss[B]{
		backend: backend,
	}
}

// Forward computes the loss as a scalar tensor (shape []).
//
// The result is built from backend operations so that an autodiff backend
// records it. Panics with a *tensor.ShapeError if the shapes differ.
func (m *MSELoss[B]) Forward(predictions, targets *tensor.Tensor[B]) *tensor.Tensor[B] {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic(&tensor.ShapeError{
			Op:    "mse",
			Left:  predictions.Shape().Clone(),
			Right: targets.Shape().Clone(),
		})
	}

	batch := 1
	if shape := predictions.Shape(); len(shape) > 0 && shape[0] > 0 {
		batch = shape[0]
	}

	diff := predictions.Sub(targets)
	return diff.Mul(diff).Sum().MulScalar(0.5 / float64(batch))
}

// Parameters returns nil (loss functions have no trainable parameters).
func (m *MSELoss[B]) Parameters() []*Parameter[B] {
	return nil
}

// MSE is the slice form of MSELoss for plain row-major data.
func MSE(predictions, targets [][]float64) (float64, error) {
	if len(predictions) != len(targets) {
		return 0, &tensor.ShapeError{
			Op:    "mse",
			Left:  tensor.Shape{len(predictions)},
			Right: tensor.Shape{len(targets)},
		}
	}
	if len(predictions) == 0 {
		return 0, nil
	}

	var sum float64
	for i, row := range predictions {
		if len(row) != len(targets[i]) {
			return 0, &tensor.ShapeError{
				Op:    "mse",
				Left:  tensor.Shape{len(predictions), len(row)},
				Right: tensor.Shape{len(targets), len(targets[i])},
			}
		}
		for j, p := range row {
			d := p - targets[i][j]
			sum += 0.5 * d * d
		}
	}
	return sum / float64(len(predictions)), nil
}
