package noise

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrBadEnsemble = errors.New("noise: invalid ensemble parameters")
	ErrNoTrials    = errors.New("noise: no trials to summarize")
	ErrTrialShape  = errors.New("noise: trial shapes differ")
)

// Ensemble draws repeated noisy observations of a path. Trial i uses the seed
// Seed+i, so a run is reproducible regardless of scheduling.
type Ensemble struct {
	Trials int
	Sigma  float64
	Seed   int64
}

func (e Ensemble) validate() error {
	if e.Trials < 1 {
		return fmt.Errorf("%w: trials must be >= 1, got %d", ErrBadEnsemble, e.Trials)
	}
	if e.Sigma < 0 || math.IsNaN(e.Sigma) || math.IsInf(e.Sigma, 0) {
		return fmt.Errorf("%w: sigma must be finite and >= 0, got %g", ErrBadEnsemble, e.Sigma)
	}
	return nil
}

// Sample returns Trials copies of path, each with independent Gaussian noise
// of standard deviation Sigma added to every entry. Each goroutine owns one
// trial matrix; path is only read.
func (e Ensemble) Sample(ctx context.Context, path mat.Matrix) ([]*mat.Dense, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}

	trials := make([]*mat.Dense, e.Trials)
	errs := make([]error, e.Trials)

	var wg sync.WaitGroup
	for i := 0; i < e.Trials; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}

			rng := rand.New(rand.NewSource(e.Seed + int64(idx)))
			trial := mat.DenseCopyOf(path)
			r, c := trial.Dims()
			for row := 0; row < r; row++ {
				for col := 0; col < c; col++ {
					trial.Set(row, col, trial.At(row, col)+e.Sigma*rng.NormFloat64())
				}
			}
			trials[idx] = trial
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return trials, nil
}
