package metrics

import "github.com/san-kum/dipolesim/internal/pipeline"

func Default() []pipeline.Metric {
	return []pipeline.Metric{
		NewTrackingError(),
		NewMaxDeviation(),
		NewControlEffort(),
		NewPeakAcceleration(),
		NewStateNorm(),
		NewNoiseLevel(),
	}
}
