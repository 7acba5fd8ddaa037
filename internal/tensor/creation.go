package tensor

import (
	"fmt"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
func Zeros[B Backend](shape Shape, b B) *Tensor[B] {
	return New(MustNewRaw(shape, b.Device()), b)
}

// Ones creates a tensor filled with ones.
func Ones[B Backend](shape Shape, b B) *Tensor[B] {
	return Full(shape, 1, b)
}

// Full creates a tensor filled with value.
func Full[B Backend](shape Shape, value float64, b B) *Tensor[B] {
	raw := MustNewRaw(shape, b.Device())
	raw.Fill(value)
	return New(raw, b)
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice[B Backend](data []float64, shape Shape, b B) (*Tensor[B], error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d: %w",
			shape, shape.NumElements(), len(data), ErrShapeMismatch)
	}

	raw, err := NewRaw(shape, b.Device())
	if err != nil {
		return nil, err
	}
	copy(raw.Data(), data)

	return New(raw, b), nil
}

// FromRows packs equally sized rows into a [len(rows), width] tensor.
func FromRows[B Backend](rows [][]float64, b B) (*Tensor[B], error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("from rows: no rows: %w", ErrShapeMismatch)
	}
	width := len(rows[0])
	raw, err := NewRaw(Shape{len(rows), width}, b.Device())
	if err != nil {
		return nil, err
	}
	data := raw.Data()
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("from rows: row %d: %w",
				i, &ShapeError{Op: "from_rows", Left: Shape{len(row)}, Right: Shape{width}})
		}
		copy(data[i*width:], row)
	}
	return New(raw, b), nil
}

// RandUniform creates a tensor with values drawn from U[lo, hi) using rng.
func RandUniform[B Backend](shape Shape, lo, hi float64, rng *rand.Rand, b B) *Tensor[B] {
	raw := MustNewRaw(shape, b.Device())
	data := raw.Data()
	for i := range data {
		data[i] = lo + rng.Float64()*(hi-lo)
	}
	return New(raw, b)
}
