package record

import (
	"fmt"
	"math"
	"reflect"

	"gonum.org/v1/gonum/mat"
)

const columns = 3

// NoiseStat holds the per-time mean and standard deviation of the observed path.
// Both matrices are n-by-2 with columns (x, y).
type NoiseStat struct {
	Mean *mat.Dense
	SD   *mat.Dense
}

// Record owns every array describing one simulation run. Collaborating stages
// write Field, PathActual, State and Noise in place; the record never resizes.
type Record struct {
	constants Constants
	n         int

	T           []float64
	PathDesired *mat.Dense
	PathActual  *mat.Dense
	Field       *mat.Dense
	State       *mat.CDense
	Noise       NoiseStat
}

// New returns a constants-only record with no path data bound to it.
func New(c Constants) (*Record, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Record{constants: c}, nil
}

// FromTable validates an n-by-3 table of [t, x, y] rows and allocates a zeroed
// record for it. Validation completes before anything is allocated; on error
// the returned record is nil.
func FromTable(c Constants, table any) (*Record, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	rows, err := extract(table)
	if err != nil {
		return nil, err
	}
	if err := checkShape(rows); err != nil {
		return nil, err
	}
	if err := checkFinite(rows); err != nil {
		return nil, err
	}
	if err := checkIncreasing(rows); err != nil {
		return nil, err
	}

	n := len(rows)
	r := &Record{
		constants:   c,
		n:           n,
		T:           make([]float64, n),
		PathDesired: mat.NewDense(n, 2, nil),
		PathActual:  mat.NewDense(n, 2, nil),
		Field:       mat.NewDense(n, 2, nil),
		State:       mat.NewCDense(c.Dim(), n, nil),
		Noise: NoiseStat{
			Mean: mat.NewDense(n, 2, nil),
			SD:   mat.NewDense(n, 2, nil),
		},
	}
	for i, row := range rows {
		r.T[i] = row[0]
		r.PathDesired.Set(i, 0, row[1])
		r.PathDesired.Set(i, 1, row[2])
	}
	return r, nil
}

func (r *Record) Const() Constants { return r.constants }

// N is the number of time points, 0 for a constants-only record.
func (r *Record) N() int { return r.n }

func (r *Record) Initialized() bool { return r.n > 0 }

// Table returns a fresh n-by-3 copy of the input rows.
func (r *Record) Table() [][]float64 {
	if !r.Initialized() {
		return nil
	}
	out := make([][]float64, r.n)
	for i := range out {
		out[i] = []float64{r.T[i], r.PathDesired.At(i, 0), r.PathDesired.At(i, 1)}
	}
	return out
}

func extract(table any) ([][]float64, error) {
	switch v := table.(type) {
	case nil:
		return nil, typeError("table is nil")
	case *mat.Dense:
		if v == nil {
			return nil, typeError("table is a nil matrix")
		}
		return fromMatrix(v), nil
	case [][]float64:
		return convertRows(v), nil
	case [][]float32:
		return convertRows(v), nil
	case [][]int:
		return convertRows(v), nil
	case []float64, []float32, []int:
		return nil, shapeError("table is 1-dimensional, want 2 dimensions", -1)
	case mat.Matrix:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, typeError(fmt.Sprintf("table is a nil %T", table))
		}
		return fromMatrix(v), nil
	default:
		return nil, typeError(fmt.Sprintf("unsupported table type %T", table))
	}
}

func convertRows[T float64 | float32 | int](rows [][]T) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = float64(v)
		}
	}
	return out
}

func fromMatrix(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		out[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

func checkShape(rows [][]float64) error {
	if len(rows) < 2 {
		return shapeError(fmt.Sprintf("need at least 2 rows, got %d", len(rows)), -1)
	}
	for i, row := range rows {
		if len(row) != columns {
			return shapeError(fmt.Sprintf("want %d columns, got %d", columns, len(row)), i)
		}
	}
	return nil
}

func checkFinite(rows [][]float64) error {
	for i, row := range rows {
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &ValidationError{
					Kind:   ValueKind,
					Row:    i,
					Col:    j,
					Reason: fmt.Sprintf("entry %g is not finite", v),
					Err:    ErrNonFinite,
				}
			}
		}
	}
	return nil
}

func checkIncreasing(rows [][]float64) error {
	for i := 1; i < len(rows); i++ {
		if rows[i][0] <= rows[i-1][0] {
			return &ValidationError{
				Kind:   ValueKind,
				Row:    i,
				Col:    0,
				Reason: fmt.Sprintf("t[%d]=%g does not exceed t[%d]=%g", i, rows[i][0], i-1, rows[i-1][0]),
				Err:    ErrNonIncreasingTime,
			}
		}
	}
	return nil
}

func valueError(reason string, err error) *ValidationError {
	return &ValidationError{Kind: ValueKind, Row: -1, Col: -1, Reason: reason, Err: err}
}
