package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastShapes computes the NumPy-style broadcast of a and b.
//
// Shapes are aligned from the right; a dimension broadcasts when it is 1 or
// missing. The second return value reports whether either operand needs to be
// expanded. Incompatible shapes yield a *ShapeError.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	if a.Equal(b) {
		return a.Clone(), false, nil
	}

	ndim := max(len(a), len(b))
	out := make(Shape, ndim)
	for i := 0; i < ndim; i++ {
		da := dimFromRight(a, ndim-1-i)
		db := dimFromRight(b, ndim-1-i)
		switch {
		case da == db:
			out[i] = da
		case da == 1:
			out[i] = db
		case db == 1:
			out[i] = da
		default:
			return nil, false, &ShapeError{Op: "broadcast", Left: a, Right: b}
		}
	}
	return out, true, nil
}

// BroadcastStrides returns strides for reading src as if it had shape out.
// Broadcast dimensions get stride 0.
func BroadcastStrides(src, out Shape) []int {
	srcStrides := src.ComputeStrides()
	strides := make([]int, len(out))
	offset := len(out) - len(src)
	for i := range out {
		j := i - offset
		if j < 0 || src[j] == 1 {
			continue
		}
		strides[i] = srcStrides[j]
	}
	return strides
}

// dimFromRight returns the dimension k positions from the right, or 1 if the
// shape has fewer dimensions.
func dimFromRight(s Shape, k int) int {
	idx := len(s) - 1 - k
	if idx < 0 {
		return 1
	}
	return s[idx]
}
