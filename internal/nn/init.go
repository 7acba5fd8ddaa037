package nn

import (
	"math"
	"math/rand"
	"time"

	"github.com/born-ml/fitlab/internal/tensor"
)

// Initializer is the random source used for parameter initialization.
// Two initializers built from the same seed produce identical models.
type Initializer struct {
	rng *rand.Rand
}

// NewInitializer creates an Initializer seeded with seed. Every seed,
// including 0 and negative values, is deterministic.
func NewInitializer(seed int64) *Initializer {
	//nolint:gosec // Weight initialization is not security-sensitive.
	return &Initializer{rng: rand.New(rand.NewSource(seed))}
}

// NewRandomInitializer creates an Initializer seeded from the clock.
func NewRandomInitializer() *Initializer {
	return NewInitializer(time.Now().UnixNano())
}

// Xavier (Glorot) initialization for weights.
//
// Draws from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))),
// which keeps activation variance roughly constant across layers.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, init *Initializer, backend B) *tensor.Tensor[B] {
	if init == nil {
		init = NewRandomInitializer()
	}
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return tensor.RandUniform(shape, -bound, bound, init.rng, backend)
}
