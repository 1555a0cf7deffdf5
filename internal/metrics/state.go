package metrics

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/dipolesim/internal/record"
)

// StateNorm averages the norm of the state column over the time grid.
type StateNorm struct {
	name    string
	total   float64
	samples int
}

func NewStateNorm() *StateNorm {
	return &StateNorm{name: "state_norm"}
}

func (s *StateNorm) Name() string { return s.name }

func (s *StateNorm) Observe(rec *record.Record, i int) {
	rows, _ := rec.State.Dims()
	sum := 0.0
	for k := 0; k < rows; k++ {
		a := cmplx.Abs(rec.State.At(k, i))
		sum += a * a
	}
	s.total += math.Sqrt(sum)
	s.samples++
}

func (s *StateNorm) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *StateNorm) Reset() {
	s.total = 0
	s.samples = 0
}

// NoiseLevel averages the magnitude of the per-time standard deviation.
type NoiseLevel struct {
	name    string
	total   float64
	samples int
}

func NewNoiseLevel() *NoiseLevel {
	return &NoiseLevel{name: "noise_level"}
}

func (n *NoiseLevel) Name() string { return n.name }

func (n *NoiseLevel) Observe(rec *record.Record, i int) {
	n.total += math.Hypot(rec.Noise.SD.At(i, 0), rec.Noise.SD.At(i, 1))
	n.samples++
}

func (n *NoiseLevel) Value() float64 {
	if n.samples == 0 {
		return 0
	}
	return n.total / float64(n.samples)
}

func (n *NoiseLevel) Reset() {
	n.total = 0
	n.samples = 0
}
