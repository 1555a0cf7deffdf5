package pathgen

import (
	"fmt"
	"math"
)

// Canvas accumulates pointer positions from a drawing surface. Pixel rows grow
// downward, so stored y values are flipped against the canvas height.
type Canvas struct {
	width  int
	height int
	points [][2]int
}

func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height}
}

// Record stores a pointer position, skipping it when it repeats the last one.
func (c *Canvas) Record(px, py int) {
	p := [2]int{px, c.height - py}
	if n := len(c.points); n > 0 && c.points[n-1] == p {
		return
	}
	c.points = append(c.points, p)
}

func (c *Canvas) Clear() {
	c.points = c.points[:0]
}

func (c *Canvas) Len() int {
	return len(c.points)
}

func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Table returns the recorded stroke as [t, x, y] rows with t_i = i*dt.
func (c *Canvas) Table(dt float64) ([][]float64, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("%w: dt must be positive, got %g", ErrBadParams, dt)
	}
	if len(c.points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, have %d", ErrBadParams, len(c.points))
	}
	table := make([][]float64, len(c.points))
	for i, p := range c.points {
		table[i] = []float64{float64(i) * dt, float64(p[0]), float64(p[1])}
	}
	return table, nil
}
