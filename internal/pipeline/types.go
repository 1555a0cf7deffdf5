package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/dipolesim/internal/record"
)

// Stage is one collaborator acting on a record: a field solver, a noise
// analyzer. Stages run one at a time and may write the record in place.
type Stage interface {
	Name() string
	Apply(ctx context.Context, rec *record.Record) error
}

// Metric reduces a finished record to a number, one time index at a time.
type Metric interface {
	Name() string
	Observe(rec *record.Record, i int)
	Value() float64
	Reset()
}

type Result struct {
	Stages  []string
	Metrics map[string]float64
	Elapsed time.Duration
}

type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline: stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
