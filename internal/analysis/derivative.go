package analysis

import (
	"errors"
	"fmt"
)

var ErrLength = errors.New("analysis: sample length mismatch or too short")

// SecondDerivative estimates d²y/dt² with centered finite differences on a
// possibly non-uniform grid. Endpoints take the value of the nearest interior
// point; with only two samples the result is zero.
func SecondDerivative(t, y []float64) ([]float64, error) {
	n := len(t)
	if n != len(y) || n < 2 {
		return nil, fmt.Errorf("%w: len(t)=%d len(y)=%d", ErrLength, len(t), len(y))
	}

	d2 := make([]float64, n)
	if n == 2 {
		return d2, nil
	}

	for i := 1; i < n-1; i++ {
		h1 := t[i] - t[i-1]
		h2 := t[i+1] - t[i]
		d2[i] = 2 * (h1*y[i+1] - (h1+h2)*y[i] + h2*y[i-1]) / (h1 * h2 * (h1 + h2))
	}
	d2[0] = d2[1]
	d2[n-1] = d2[n-2]
	return d2, nil
}
