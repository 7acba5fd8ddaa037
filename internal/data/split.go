package data

import (
	"fmt"
	"math"
)

// Range is a half-open index range [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Len returns Hi - Lo.
func (r Range) Len() int { return r.Hi - r.Lo }

// Split holds the train, dev and test partitions of a dataset.
type Split struct {
	Train, Dev, Test                *Dataset
	TrainRange, DevRange, TestRange Range
}

// NewSplit partitions ds by position into train, dev and test.
//
// With N examples, train is [0, round(fTrain*N)), dev runs up to
// round((fTrain+fDev)*N) and test takes the rest. The ranges are disjoint
// and their sizes add up to N. The order of ds is preserved.
func NewSplit(ds *Dataset, fTrain, fDev float64) (*Split, error) {
	if ds == nil {
		return nil, fmt.Errorf("split: nil dataset: %w", ErrInvalidArgument)
	}
	if fTrain <= 0 || fDev <= 0 || fTrain+fDev >= 1 {
		return nil, fmt.Errorf("split: fractions train=%g dev=%g must be positive with sum < 1: %w",
			fTrain, fDev, ErrInvalidArgument)
	}

	n := ds.Len()
	nTrain := int(math.Round(fTrain * float64(n)))
	nDevEnd := int(math.Round((fTrain + fDev) * float64(n)))

	train := Range{0, nTrain}
	dev := Range{nTrain, nDevEnd}
	test := Range{nDevEnd, n}
	if train.Len() <= 0 || dev.Len() <= 0 || test.Len() <= 0 {
		return nil, fmt.Errorf("split: %d examples give sizes train=%d dev=%d test=%d: %w",
			n, train.Len(), dev.Len(), test.Len(), ErrInvalidArgument)
	}

	return &Split{
		Train:      ds.Slice(train.Lo, train.Hi),
		Dev:        ds.Slice(dev.Lo, dev.Hi),
		Test:       ds.Slice(test.Lo, test.Hi),
		TrainRange: train,
		DevRange:   dev,
		TestRange:  test,
	}, nil
}
