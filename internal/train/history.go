package train

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// History is the per-step loss record of a training run.
//
// Train[i] is the loss of the batch used in step i and Dev[i] the full dev
// loss right after that step's update. NumTrain, BatchSize and StepsPerEpoch
// let a plotting tool place steps on an epoch axis.
type History struct {
	Train         []float64
	Dev           []float64
	NumTrain      int
	BatchSize     int
	StepsPerEpoch int
}

// Len returns the number of recorded steps.
func (h *History) Len() int {
	return len(h.Train)
}

// Append records one step.
func (h *History) Append(trainLoss, devLoss float64) {
	h.Train = append(h.Train, trainLoss)
	h.Dev = append(h.Dev, devLoss)
}

// EpochAxis returns the x-coordinate of every step measured in epochs.
// The last step of epoch e lands exactly on e.
func (h *History) EpochAxis() []float64 {
	axis := make([]float64, h.Len())
	if h.StepsPerEpoch <= 0 || h.NumTrain <= 0 {
		return axis
	}
	for i := range axis {
		epoch := i / h.StepsPerEpoch
		seen := min((i%h.StepsPerEpoch+1)*h.BatchSize, h.NumTrain)
		axis[i] = float64(epoch) + float64(seen)/float64(h.NumTrain)
	}
	return axis
}

// EpochMeans returns the mean train and dev loss of every (possibly partial) epoch.
func (h *History) EpochMeans() (train, dev []float64) {
	if h.StepsPerEpoch <= 0 {
		return nil, nil
	}
	for lo := 0; lo < h.Len(); lo += h.StepsPerEpoch {
		hi := min(lo+h.StepsPerEpoch, h.Len())
		train = append(train, stat.Mean(h.Train[lo:hi], nil))
		dev = append(dev, stat.Mean(h.Dev[lo:hi], nil))
	}
	return train, dev
}

// Final returns the last recorded train and dev losses.
func (h *History) Final() (train, dev float64, ok bool) {
	if h.Len() == 0 {
		return 0, 0, false
	}
	return h.Train[h.Len()-1], h.Dev[h.Len()-1], true
}

// WriteCSV writes one row per step with columns step,epoch,train_loss,dev_loss.
func (h *History) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "epoch", "train_loss", "dev_loss"}); err != nil {
		return fmt.Errorf("write history header: %w", err)
	}

	axis := h.EpochAxis()
	for i := range h.Train {
		record := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(axis[i], 'f', 4, 64),
			strconv.FormatFloat(h.Train[i], 'g', -1, 64),
			strconv.FormatFloat(h.Dev[i], 'g', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write history row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
