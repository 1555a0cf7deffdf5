package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the real FFT of data for the
// non-negative frequency bins, len(data)/2+1 of them.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	spec := fft.FFTReal(data)

	ps := make([]float64, len(data)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantBin returns the index of the strongest bin, ignoring the DC term.
func DominantBin(ps []float64) int {
	best := 0
	for i := 1; i < len(ps); i++ {
		if best == 0 || ps[i] > ps[best] {
			best = i
		}
	}
	return best
}

// DominantFrequency returns the frequency of the strongest non-DC bin of y
// sampled at times t, over every non-negative bin up to Nyquist. Bin spacing
// assumes a near-uniform grid: n samples over n-1 intervals. ok is false when
// the span is empty or the signal has no non-DC content.
func DominantFrequency(t, y []float64) (freq float64, ok bool) {
	n := len(t)
	if n < 2 || n != len(y) {
		return 0, false
	}
	span := t[n-1] - t[0]
	if span <= 0 {
		return 0, false
	}
	ps := PowerSpectrum(y)
	idx := DominantBin(ps)
	if idx == 0 || ps[idx] == 0 {
		return 0, false
	}
	return float64(idx) * float64(n-1) / (float64(n) * span), true
}
