package pathgen

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrUnknownShape = errors.New("pathgen: unknown shape")
	ErrBadParams    = errors.New("pathgen: invalid path parameters")
)

// shape maps normalized time u in [0, 1] to a point on the unit-scale curve.
type shape func(u float64) (x, y float64)

var shapes = map[string]shape{
	"circle": func(u float64) (float64, float64) {
		a := 2 * math.Pi * u
		return math.Cos(a), math.Sin(a)
	},
	"ellipse": func(u float64) (float64, float64) {
		a := 2 * math.Pi * u
		return math.Cos(a), 0.5 * math.Sin(a)
	},
	// Lemniscate of Gerono, a figure eight through the origin.
	"lemniscate": func(u float64) (float64, float64) {
		a := 2 * math.Pi * u
		return math.Sin(a), math.Sin(a) * math.Cos(a)
	},
	"line": func(u float64) (float64, float64) {
		return 2*u - 1, u - 0.5
	},
	// Two turns of an Archimedean spiral.
	"spiral": func(u float64) (float64, float64) {
		a := 4 * math.Pi * u
		return u * math.Cos(a), u * math.Sin(a)
	},
}

func Shapes() []string {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate samples the named curve on a uniform grid of points over [0, duration]
// and returns [t, x, y] rows.
func Generate(name string, points int, duration, scale float64) ([][]float64, error) {
	fn, ok := shapes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownShape, name, Shapes())
	}
	if points < 2 {
		return nil, fmt.Errorf("%w: points must be >= 2, got %d", ErrBadParams, points)
	}
	if !(duration > 0) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("%w: duration must be positive, got %g", ErrBadParams, duration)
	}
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("%w: scale must be finite, got %g", ErrBadParams, scale)
	}

	table := make([][]float64, points)
	last := float64(points - 1)
	for i := range table {
		u := float64(i) / last
		x, y := fn(u)
		table[i] = []float64{u * duration, scale * x, scale * y}
	}
	return table, nil
}
