package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dipolesim/internal/record"
)

const (
	DefaultShape    = "circle"
	DefaultPoints   = 200
	DefaultDuration = 10.0
	DefaultScale    = 1.0
	DefaultSolver   = "none"
	DefaultTrials   = 32
	DefaultSigma    = 0.05
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Constants ConstantsConfig `yaml:"constants"`
	Path      PathConfig      `yaml:"path"`
	Solver    string          `yaml:"solver"`
	Noise     NoiseConfig     `yaml:"noise"`
}

type ConstantsConfig struct {
	M  int     `yaml:"m"`
	B  float64 `yaml:"b"`
	Mu float64 `yaml:"mu"`
}

// PathConfig selects the desired path. File takes precedence over Shape.
type PathConfig struct {
	Shape    string  `yaml:"shape"`
	File     string  `yaml:"file"`
	Points   int     `yaml:"points"`
	Duration float64 `yaml:"duration"`
	Scale    float64 `yaml:"scale"`
}

// NoiseConfig configures the noise ensemble. A nil Seed means none was
// configured; an explicit seed of 0 is kept.
type NoiseConfig struct {
	Trials int     `yaml:"trials"`
	Sigma  float64 `yaml:"sigma"`
	Seed   *int64  `yaml:"seed,omitempty"`
}

// ResolveSeed fills an unset seed with fallback and returns the seed in use.
func (n *NoiseConfig) ResolveSeed(fallback int64) int64 {
	if n.Seed == nil {
		n.Seed = &fallback
	}
	return *n.Seed
}

func seedOf(v int64) *int64 { return &v }

func DefaultConfig() *Config {
	return &Config{
		Constants: ConstantsConfig{
			M:  record.DefaultM,
			B:  record.DefaultB,
			Mu: record.DefaultMu,
		},
		Path: PathConfig{
			Shape:    DefaultShape,
			Points:   DefaultPoints,
			Duration: DefaultDuration,
			Scale:    DefaultScale,
		},
		Solver: DefaultSolver,
		Noise: NoiseConfig{
			Trials: DefaultTrials,
			Sigma:  DefaultSigma,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := c.GetConstants(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Path.File == "" {
		if c.Path.Points < 2 {
			return fmt.Errorf("%w: path.points must be >= 2, got %d", ErrInvalidConfig, c.Path.Points)
		}
		if c.Path.Duration <= 0 {
			return fmt.Errorf("%w: path.duration must be positive, got %g", ErrInvalidConfig, c.Path.Duration)
		}
	}
	if c.Solver == "" {
		return fmt.Errorf("%w: solver must be set", ErrInvalidConfig)
	}
	if c.Noise.Trials < 0 {
		return fmt.Errorf("%w: noise.trials must be >= 0, got %d", ErrInvalidConfig, c.Noise.Trials)
	}
	if c.Noise.Sigma < 0 {
		return fmt.Errorf("%w: noise.sigma must be >= 0, got %g", ErrInvalidConfig, c.Noise.Sigma)
	}
	return nil
}

func (c *Config) GetConstants() (record.Constants, error) {
	return record.NewConstants(c.Constants.M, c.Constants.B, c.Constants.Mu)
}
