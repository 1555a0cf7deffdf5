package solver

import (
	"context"

	"github.com/san-kum/dipolesim/internal/record"
)

// FieldSolver fills a record's Field, PathActual and State from its desired
// path and constants.
type FieldSolver interface {
	Name() string
	Apply(ctx context.Context, rec *record.Record) error
}

// None leaves the field, observed path and state at zero.
type None struct{}

func NewNone() *None { return &None{} }

func (*None) Name() string { return "none" }

func (*None) Apply(ctx context.Context, rec *record.Record) error {
	if !rec.Initialized() {
		return record.ErrUninitialized
	}
	return ctx.Err()
}

// Ideal is a reference tracker that reports the desired path as observed.
// It computes no field and no state.
type Ideal struct{}

func NewIdeal() *Ideal { return &Ideal{} }

func (*Ideal) Name() string { return "ideal" }

func (*Ideal) Apply(ctx context.Context, rec *record.Record) error {
	if !rec.Initialized() {
		return record.ErrUninitialized
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	rec.PathActual.Copy(rec.PathDesired)
	return nil
}
