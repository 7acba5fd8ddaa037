package data

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/fitlab/internal/tensor"
)

// MappingFunc is the ground-truth function from an input vector to a target vector.
type MappingFunc func(x []float64) ([]float64, error)

// NoiseFunc draws one additive noise sample per target element from rng.
type NoiseFunc func(rng *rand.Rand) float64

// LinearMap returns y = W x for a ny x nx matrix W.
func LinearMap(w *mat.Dense) MappingFunc {
	rows, cols := w.Dims()
	return func(x []float64) ([]float64, error) {
		if len(x) != cols {
			return nil, &tensor.ShapeError{Op: "linear_map", Left: tensor.Shape{len(x)}, Right: tensor.Shape{cols}}
		}
		var y mat.VecDense
		y.MulVec(w, mat.NewVecDense(cols, x))
		out := make([]float64, rows)
		copy(out, y.RawVector().Data)
		return out, nil
	}
}

// AffineMap returns y = W x + b.
func AffineMap(w *mat.Dense, b []float64) MappingFunc {
	linear := LinearMap(w)
	return func(x []float64) ([]float64, error) {
		y, err := linear(x)
		if err != nil {
			return nil, err
		}
		if len(b) != len(y) {
			return nil, &tensor.ShapeError{Op: "affine_map", Left: tensor.Shape{len(b)}, Right: tensor.Shape{len(y)}}
		}
		for i := range y {
			y[i] += b[i]
		}
		return y, nil
	}
}

// RandomMatrix draws a ny x nx matrix with entries in [-1, 1) from rng.
func RandomMatrix(nx, ny int, rng *rand.Rand) *mat.Dense {
	values := make([]float64, nx*ny)
	for i := range values {
		values[i] = rng.Float64()*2 - 1
	}
	return mat.NewDense(ny, nx, values)
}

// RandomLinearMap returns a LinearMap with a random ground-truth matrix.
func RandomLinearMap(nx, ny int, rng *rand.Rand) (MappingFunc, *mat.Dense, error) {
	if nx <= 0 || ny <= 0 {
		return nil, nil, fmt.Errorf("random linear map %dx%d: %w", ny, nx, ErrInvalidArgument)
	}
	w := RandomMatrix(nx, ny, rng)
	return LinearMap(w), w, nil
}

// Nonlinear applies fn element-wise to the output of inner,
// e.g. Nonlinear(LinearMap(w), math.Tanh).
func Nonlinear(inner MappingFunc, fn func(float64) float64) MappingFunc {
	return func(x []float64) ([]float64, error) {
		y, err := inner(x)
		if err != nil {
			return nil, err
		}
		for i, v := range y {
			y[i] = fn(v)
		}
		return y, nil
	}
}

// GaussianNoise returns N(0, std²) noise. Zero std gives no noise.
func GaussianNoise(std float64) NoiseFunc {
	return func(rng *rand.Rand) float64 {
		return rng.NormFloat64() * std
	}
}
