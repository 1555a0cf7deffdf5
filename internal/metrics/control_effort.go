package metrics

import (
	"github.com/san-kum/dipolesim/internal/record"
)

// ControlEffort integrates |E|² over the time grid with the trapezoid rule.
type ControlEffort struct {
	name string
	sum  float64
	prev float64
	seen bool
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(rec *record.Record, i int) {
	ex, ey := rec.Field.At(i, 0), rec.Field.At(i, 1)
	e2 := ex*ex + ey*ey
	if c.seen && i > 0 {
		c.sum += 0.5 * (e2 + c.prev) * (rec.T[i] - rec.T[i-1])
	}
	c.prev = e2
	c.seen = true
}

func (c *ControlEffort) Value() float64 {
	return c.sum
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.prev = 0
	c.seen = false
}
