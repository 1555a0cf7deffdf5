package noise

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/dipolesim/internal/record"
)

// Summarize computes, for each time point and axis, the mean and the sample
// standard deviation across trials. A single trial has zero deviation.
func Summarize(trials []*mat.Dense) (record.NoiseStat, error) {
	if len(trials) == 0 {
		return record.NoiseStat{}, ErrNoTrials
	}
	r, c := trials[0].Dims()
	for i, tr := range trials[1:] {
		rows, cols := tr.Dims()
		if rows != r || cols != c {
			return record.NoiseStat{}, fmt.Errorf("%w: trial %d is %dx%d, want %dx%d", ErrTrialShape, i+1, rows, cols, r, c)
		}
	}

	ns := record.NoiseStat{
		Mean: mat.NewDense(r, c, nil),
		SD:   mat.NewDense(r, c, nil),
	}
	samples := make([]float64, len(trials))
	for row := 0; row < r; row++ {
		for col := 0; col < c; col++ {
			for k, tr := range trials {
				samples[k] = tr.At(row, col)
			}
			if len(samples) == 1 {
				ns.Mean.Set(row, col, samples[0])
				continue
			}
			mean, sd := stat.MeanStdDev(samples, nil)
			ns.Mean.Set(row, col, mean)
			ns.SD.Set(row, col, sd)
		}
	}
	return ns, nil
}
