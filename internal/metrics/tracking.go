package metrics

import (
	"math"

	"github.com/san-kum/dipolesim/internal/record"
)

func deviation(rec *record.Record, i int) float64 {
	return math.Hypot(
		rec.PathActual.At(i, 0)-rec.PathDesired.At(i, 0),
		rec.PathActual.At(i, 1)-rec.PathDesired.At(i, 1),
	)
}

// TrackingError is the RMS distance between the desired and observed paths.
type TrackingError struct {
	name    string
	sumSq   float64
	samples int
}

func NewTrackingError() *TrackingError {
	return &TrackingError{name: "tracking_rms"}
}

func (e *TrackingError) Name() string { return e.name }

func (e *TrackingError) Observe(rec *record.Record, i int) {
	d := deviation(rec, i)
	e.sumSq += d * d
	e.samples++
}

func (e *TrackingError) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return math.Sqrt(e.sumSq / float64(e.samples))
}

func (e *TrackingError) Reset() {
	e.sumSq = 0
	e.samples = 0
}

type MaxDeviation struct {
	name string
	max  float64
}

func NewMaxDeviation() *MaxDeviation {
	return &MaxDeviation{name: "max_deviation"}
}

func (m *MaxDeviation) Name() string { return m.name }

func (m *MaxDeviation) Observe(rec *record.Record, i int) {
	m.max = math.Max(m.max, deviation(rec, i))
}

func (m *MaxDeviation) Value() float64 { return m.max }

func (m *MaxDeviation) Reset() { m.max = 0 }
