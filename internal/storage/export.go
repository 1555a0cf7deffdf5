package storage

import (
	"encoding/json"
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/dipolesim/internal/record"
)

type ExportData struct {
	Run         RunMetadata  `json:"run"`
	Times       []float64    `json:"times"`
	PathDesired [][2]float64 `json:"path_desired"`
	PathActual  [][2]float64 `json:"path_actual"`
	Field       [][2]float64 `json:"field"`
	NoiseMean   [][2]float64 `json:"noise_mean"`
	NoiseSD     [][2]float64 `json:"noise_sd"`
}

func pairs(m *mat.Dense) [][2]float64 {
	r, _ := m.Dims()
	out := make([][2]float64, r)
	for i := range out {
		out[i] = [2]float64{m.At(i, 0), m.At(i, 1)}
	}
	return out
}

// ExportJSON writes the run metadata and every per-time series of rec.
func ExportJSON(w io.Writer, meta *RunMetadata, rec *record.Record) error {
	if !rec.Initialized() {
		return record.ErrUninitialized
	}
	data := ExportData{
		Run:         *meta,
		Times:       rec.T,
		PathDesired: pairs(rec.PathDesired),
		PathActual:  pairs(rec.PathActual),
		Field:       pairs(rec.Field),
		NoiseMean:   pairs(rec.Noise.Mean),
		NoiseSD:     pairs(rec.Noise.SD),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
