package storage

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/dipolesim/internal/record"
)

// snapshot is the on-disk form of a record. Matrices are stored row-major;
// the complex state is split into real and imaginary planes.
type snapshot struct {
	M          int         `msgpack:"m"`
	B          float64     `msgpack:"b"`
	Mu         float64     `msgpack:"mu"`
	Table      [][]float64 `msgpack:"table"`
	PathActual []float64   `msgpack:"path_actual"`
	Field      []float64   `msgpack:"field"`
	StateRe    []float64   `msgpack:"state_re"`
	StateIm    []float64   `msgpack:"state_im"`
	NoiseMean  []float64   `msgpack:"noise_mean"`
	NoiseSD    []float64   `msgpack:"noise_sd"`
}

func newSnapshot(rec *record.Record) snapshot {
	c := rec.Const()
	snap := snapshot{
		M:          c.M,
		B:          c.B,
		Mu:         c.Mu,
		Table:      rec.Table(),
		PathActual: flatten(rec.PathActual),
		Field:      flatten(rec.Field),
		NoiseMean:  flatten(rec.Noise.Mean),
		NoiseSD:    flatten(rec.Noise.SD),
	}

	r, cols := rec.State.Dims()
	snap.StateRe = make([]float64, 0, r*cols)
	snap.StateIm = make([]float64, 0, r*cols)
	for i := 0; i < r; i++ {
		for j := 0; j < cols; j++ {
			v := rec.State.At(i, j)
			snap.StateRe = append(snap.StateRe, real(v))
			snap.StateIm = append(snap.StateIm, imag(v))
		}
	}
	return snap
}

func (snap snapshot) restore() (*record.Record, error) {
	c, err := record.NewConstants(snap.M, snap.B, snap.Mu)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	rec, err := record.FromTable(c, snap.Table)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	for _, p := range []struct {
		name string
		dst  *mat.Dense
		src  []float64
	}{
		{"path_actual", rec.PathActual, snap.PathActual},
		{"field", rec.Field, snap.Field},
		{"noise_mean", rec.Noise.Mean, snap.NoiseMean},
		{"noise_sd", rec.Noise.SD, snap.NoiseSD},
	} {
		if err := unflatten(p.dst, p.src); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptSnapshot, p.name, err)
		}
	}

	r, cols := rec.State.Dims()
	if len(snap.StateRe) != r*cols || len(snap.StateIm) != r*cols {
		return nil, fmt.Errorf("%w: state: want %d entries, got %d/%d", ErrCorruptSnapshot, r*cols, len(snap.StateRe), len(snap.StateIm))
	}
	for i := 0; i < r; i++ {
		for j := 0; j < cols; j++ {
			k := i*cols + j
			rec.State.Set(i, j, complex(snap.StateRe[k], snap.StateIm[k]))
		}
	}
	return rec, nil
}

func flatten(m *mat.Dense) []float64 {
	r, c := m.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		out = append(out, m.RawRowView(i)...)
	}
	return out
}

func unflatten(dst *mat.Dense, src []float64) error {
	r, c := dst.Dims()
	if len(src) != r*c {
		return fmt.Errorf("want %d entries, got %d", r*c, len(src))
	}
	for i := 0; i < r; i++ {
		copy(dst.RawRowView(i), src[i*c:(i+1)*c])
	}
	return nil
}

func writeSnapshot(path string, rec *record.Record) error {
	data, err := msgpack.Marshal(newSnapshot(rec))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
