package noise

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/san-kum/dipolesim/internal/record"
)

// Analyzer fills a record's noise statistics from repeated noisy
// observations of its observed path.
type Analyzer struct {
	ensemble Ensemble
	log      zerolog.Logger
}

func NewAnalyzer(log zerolog.Logger, ensemble Ensemble) *Analyzer {
	return &Analyzer{
		ensemble: ensemble,
		log:      log.With().Str("component", "noise").Logger(),
	}
}

func (a *Analyzer) Name() string { return "noise" }

func (a *Analyzer) Apply(ctx context.Context, rec *record.Record) error {
	if !rec.Initialized() {
		return record.ErrUninitialized
	}

	trials, err := a.ensemble.Sample(ctx, rec.PathActual)
	if err != nil {
		return err
	}
	ns, err := Summarize(trials)
	if err != nil {
		return err
	}

	r, _ := ns.Mean.Dims()
	if r != rec.N() {
		return fmt.Errorf("%w: summary has %d rows, record has %d", ErrTrialShape, r, rec.N())
	}
	rec.Noise.Mean.Copy(ns.Mean)
	rec.Noise.SD.Copy(ns.SD)

	a.log.Debug().
		Int("trials", a.ensemble.Trials).
		Float64("sigma", a.ensemble.Sigma).
		Int64("seed", a.ensemble.Seed).
		Msg("noise statistics updated")
	return nil
}
