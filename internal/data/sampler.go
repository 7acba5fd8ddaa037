package data

import (
	"fmt"
	"iter"
	"math/rand"
)

// Batch is one mini-batch drawn from the training partition.
type Batch struct {
	Indices []int // positions in the sampled dataset
	*Dataset
}

// BatchSampler splits a dataset into mini-batches once per epoch.
type BatchSampler struct {
	ds        *Dataset
	batchSize int
	shuffle   bool
	rng       *rand.Rand
}

// NewBatchSampler creates a sampler over ds. With shuffle, every Batches call
// uses a fresh permutation drawn from a generator seeded with seed.
func NewBatchSampler(ds *Dataset, batchSize int, shuffle bool, seed int64) (*BatchSampler, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, fmt.Errorf("batch sampler: empty dataset: %w", ErrInvalidArgument)
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch sampler: batch size %d: %w", batchSize, ErrInvalidArgument)
	}
	return &BatchSampler{
		ds:        ds,
		batchSize: batchSize,
		shuffle:   shuffle,
		//nolint:gosec // Reproducible shuffling, not security-sensitive.
		rng: rand.New(rand.NewSource(seed)),
	}, nil
}

// BatchSize returns the configured batch size.
func (s *BatchSampler) BatchSize() int {
	return s.batchSize
}

// NumBatches returns ceil(n / batchSize).
func (s *BatchSampler) NumBatches() int {
	return (s.ds.Len() + s.batchSize - 1) / s.batchSize
}

// Batches yields one epoch of batches. Every index appears exactly once.
// All batches hold BatchSize examples except possibly the last.
func (s *BatchSampler) Batches() iter.Seq[Batch] {
	n := s.ds.Len()
	var order []int
	if s.shuffle {
		order = s.rng.Perm(n)
	} else {
		order = make([]int, n)
		for i := range order {
			order[i] = i
		}
	}

	return func(yield func(Batch) bool) {
		for lo := 0; lo < n; lo += s.batchSize {
			hi := min(lo+s.batchSize, n)
			indices := order[lo:hi:hi]
			if !yield(Batch{Indices: indices, Dataset: s.ds.Gather(indices)}) {
				return
			}
		}
	}
}
