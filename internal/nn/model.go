package nn

import (
	"fmt"

	"github.com/born-ml/fitlab/internal/tensor"
)

// NewLinearModel returns a single affine layer mapping nx inputs to ny outputs.
func NewLinearModel[B tensor.Backend](nx, ny int, bias bool, backend B, init *Initializer) (*Sequential[B], error) {
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("linear model %dx%d: sizes must be positive: %w", nx, ny, ErrInvalidArgument)
	}
	if bias {
		return NewSequential[B](NewLinear(nx, ny, backend, init)), nil
	}
	return NewSequential[B](NewLinearNoBias(nx, ny, backend, init)), nil
}

// NewDeepModel stacks affine layers of the given sizes, e.g. [4, 16, 16, 4].
// act follows every hidden layer. The final layer is left linear.
func NewDeepModel[B tensor.Backend](sizes []int, act ActivationKind, backend B, init *Initializer) (*Sequential[B], error) {
	if len(sizes) < 2 {
		return nil, fmt.Errorf("deep model: need at least 2 layer sizes, got %d: %w", len(sizes), ErrInvalidArgument)
	}
	for i, size := range sizes {
		if size <= 0 {
			return nil, fmt.Errorf("deep model: size[%d] = %d: %w", i, size, ErrInvalidArgument)
		}
	}
	// Validate the kind once up front.
	if _, err := NewActivation[B](act); err != nil {
		return nil, fmt.Errorf("deep model: %w", err)
	}

	model := NewSequential[B]()
	for i := 0; i < len(sizes)-1; i++ {
		model.Add(NewLinear(sizes[i], sizes[i+1], backend, init))
		if i < len(sizes)-2 {
			a, _ := NewActivation[B](act)
			model.Add(a)
		}
	}
	return model, nil
}

// NumParameters returns the total number of scalar parameters.
func NumParameters[B tensor.Backend](params []*Parameter[B]) int {
	n := 0
	for _, p := range params {
		n += p.Tensor().NumElements()
	}
	return n
}

// Flatten copies all parameter values into one slice, in parameter order.
func Flatten[B tensor.Backend](params []*Parameter[B]) []float64 {
	out := make([]float64, 0, NumParameters(params))
	for _, p := range params {
		out = append(out, p.Tensor().Data()...)
	}
	return out
}

// Restore writes values produced by Flatten back into params.
func Restore[B tensor.Backend](params []*Parameter[B], values []float64) error {
	if want := NumParameters(params); want != len(values) {
		return fmt.Errorf("restore: %d values for %d parameters: %w", len(values), want, tensor.ErrShapeMismatch)
	}
	offset := 0
	for _, p := range params {
		data := p.Tensor().Data()
		offset += copy(data, values[offset:offset+len(data)])
	}
	return nil
}
