package tensor

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the pipeline packages.
var (
	// ErrShapeMismatch is wrapped by every error caused by incompatible tensor shapes.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidArgument is wrapped by constructor and configuration errors.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ShapeError describes the operation and operand shapes of a shape failure.
//
// Backend kernels panic with a *ShapeError; callers that need an error value
// can recover it with AsShapeError.
type ShapeError struct {
	Op    string // Operation name (e.g., "matmul", "mse")
	Left  Shape  // First operand shape
	Right Shape  // Second operand shape (nil for unary checks)
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Right == nil {
		return fmt.Sprintf("%s: %s: got %v", e.Op, ErrShapeMismatch, e.Left)
	}
	return fmt.Sprintf("%s: %s: %v vs %v", e.Op, ErrShapeMismatch, e.Left, e.Right)
}

// Unwrap makes errors.Is(err, ErrShapeMismatch) succeed.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

// AsShapeError converts a recovered panic value into a *ShapeError.
// It returns nil when the value is not a shape failure.
func AsShapeError(recovered any) *ShapeError {
	err, ok := recovered.(error)
	if !ok {
		return nil
	}
	var se *ShapeError
	if errors.As(err, &se) {
		return se
	}
	return nil
}
