package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/san-kum/dipolesim/internal/record"
)

type Pipeline struct {
	stages  []Stage
	metrics []Metric
	log     zerolog.Logger
}

func New(log zerolog.Logger, stages ...Stage) *Pipeline {
	return &Pipeline{
		stages:  stages,
		metrics: make([]Metric, 0),
		log:     log.With().Str("component", "pipeline").Logger(),
	}
}

func (p *Pipeline) AddStage(s Stage)   { p.stages = append(p.stages, s) }
func (p *Pipeline) AddMetric(m Metric) { p.metrics = append(p.metrics, m) }

// Run applies every stage to rec in order, then evaluates the metrics over
// the finished record. Cancellation is checked between stages.
func (p *Pipeline) Run(ctx context.Context, rec *record.Record) (*Result, error) {
	if rec == nil || !rec.Initialized() {
		return nil, record.ErrUninitialized
	}

	start := time.Now()
	result := &Result{
		Stages:  make([]string, 0, len(p.stages)),
		Metrics: make(map[string]float64),
	}

	for _, s := range p.stages {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		stageStart := time.Now()
		if err := s.Apply(ctx, rec); err != nil {
			p.log.Error().Err(err).Str("stage", s.Name()).Msg("stage failed")
			return result, &StageError{Stage: s.Name(), Err: err}
		}
		p.log.Debug().
			Str("stage", s.Name()).
			Dur("elapsed", time.Since(stageStart)).
			Msg("stage done")
		result.Stages = append(result.Stages, s.Name())
	}

	for _, m := range p.metrics {
		m.Reset()
	}
	for i := 0; i < rec.N(); i++ {
		for _, m := range p.metrics {
			m.Observe(rec, i)
		}
	}
	for _, m := range p.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	result.Elapsed = time.Since(start)
	p.log.Info().
		Int("points", rec.N()).
		Int("stages", len(result.Stages)).
		Dur("elapsed", result.Elapsed).
		Msg("pipeline finished")
	return result, nil
}
