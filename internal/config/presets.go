package config

import "sort"

var Presets = map[string]*Config{
	"ring": {
		Constants: ConstantsConfig{M: 8, B: 1.0, Mu: 1.0},
		Path:      PathConfig{Shape: "circle", Points: 200, Duration: 10.0, Scale: 1.0},
		Solver:    "ideal",
		Noise:     NoiseConfig{Trials: 32, Sigma: 0.05, Seed: seedOf(1)},
	},
	"figure8": {
		Constants: ConstantsConfig{M: 8, B: 1.0, Mu: 1.0},
		Path:      PathConfig{Shape: "lemniscate", Points: 400, Duration: 20.0, Scale: 1.0},
		Solver:    "ideal",
		Noise:     NoiseConfig{Trials: 64, Sigma: 0.02, Seed: seedOf(7)},
	},
	"sweep": {
		Constants: ConstantsConfig{M: 4, B: 0.5, Mu: 1.0},
		Path:      PathConfig{Shape: "line", Points: 50, Duration: 5.0, Scale: 2.0},
		Solver:    "none",
		Noise:     NoiseConfig{Trials: 16, Sigma: 0.1, Seed: seedOf(3)},
	},
	"spiral": {
		Constants: ConstantsConfig{M: 12, B: 1.0, Mu: 0.5},
		Path:      PathConfig{Shape: "spiral", Points: 300, Duration: 30.0, Scale: 1.5},
		Solver:    "ideal",
		Noise:     NoiseConfig{Trials: 32, Sigma: 0.05, Seed: seedOf(11)},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	if cfg.Noise.Seed != nil {
		c.Noise.Seed = seedOf(*cfg.Noise.Seed)
	}
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
