package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/dipolesim/internal/analysis"
	"github.com/san-kum/dipolesim/internal/record"
)

// PeakAcceleration is the largest |d²r/dt²| along the desired path.
type PeakAcceleration struct {
	name string
	mag  []float64
}

func NewPeakAcceleration() *PeakAcceleration {
	return &PeakAcceleration{name: "peak_acceleration"}
}

func (p *PeakAcceleration) Name() string { return p.name }

// Observe computes the whole profile on the first sample; later calls are no-ops.
func (p *PeakAcceleration) Observe(rec *record.Record, i int) {
	if p.mag != nil {
		return
	}
	ax, err := analysis.SecondDerivative(rec.T, mat.Col(nil, 0, rec.PathDesired))
	if err != nil {
		return
	}
	ay, err := analysis.SecondDerivative(rec.T, mat.Col(nil, 1, rec.PathDesired))
	if err != nil {
		return
	}
	p.mag = make([]float64, len(ax))
	for k := range ax {
		p.mag[k] = math.Hypot(ax[k], ay[k])
	}
}

func (p *PeakAcceleration) Value() float64 {
	if len(p.mag) == 0 {
		return 0
	}
	return floats.Max(p.mag)
}

func (p *PeakAcceleration) Reset() { p.mag = nil }
