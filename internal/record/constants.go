package record

import (
	"fmt"
	"math"
)

const (
	DefaultM  = 8
	DefaultB  = 1.0
	DefaultMu = 1.0

	// MaxM bounds the basis so 2M+1 rows always fit a matrix allocation.
	MaxM = 1 << 12

	// Hbar and K are fixed in atomic units.
	Hbar = 1.0
	K    = 1.0
)

// Constants is the physical parameter bundle of a run. It is a value type and
// never changes after construction.
type Constants struct {
	M    int     `yaml:"m" json:"m" msgpack:"m"`
	B    float64 `yaml:"b" json:"b" msgpack:"b"`
	Mu   float64 `yaml:"mu" json:"mu" msgpack:"mu"`
	Hbar float64 `yaml:"-" json:"hbar" msgpack:"hbar"`
	K    float64 `yaml:"-" json:"k" msgpack:"k"`
	W1   float64 `yaml:"-" json:"w1" msgpack:"w1"`
}

func DefaultConstants() Constants {
	c, _ := NewConstants(DefaultM, DefaultB, DefaultMu)
	return c
}

// NewConstants builds the bundle and derives W1 = B / Hbar.
func NewConstants(m int, b, mu float64) (Constants, error) {
	c := Constants{
		M:    m,
		B:    b,
		Mu:   mu,
		Hbar: Hbar,
		K:    K,
		W1:   b / Hbar,
	}
	if err := c.Validate(); err != nil {
		return Constants{}, err
	}
	return c, nil
}

// Validate checks a bundle that may not have come from NewConstants.
func (c Constants) Validate() error {
	if c.M < 1 || c.M > MaxM {
		return valueError(fmt.Sprintf("m must be in [1, %d], got %d", MaxM, c.M), ErrInvalidValue)
	}
	if !(c.B > 0) || math.IsInf(c.B, 0) {
		return valueError(fmt.Sprintf("B must be positive and finite, got %g", c.B), ErrInvalidValue)
	}
	if !(c.Mu > 0) || math.IsInf(c.Mu, 0) {
		return valueError(fmt.Sprintf("mu must be positive and finite, got %g", c.Mu), ErrInvalidValue)
	}
	if c.Hbar != Hbar || c.K != K {
		return valueError(fmt.Sprintf("hbar and K are fixed at %g and %g, got %g and %g", Hbar, K, c.Hbar, c.K), ErrInvalidValue)
	}
	if c.W1 != c.B/c.Hbar {
		return valueError(fmt.Sprintf("w1 must equal B/hbar = %g, got %g", c.B/c.Hbar, c.W1), ErrInvalidValue)
	}
	return nil
}

// Dim is the size of the truncated basis, 2M+1.
func (c Constants) Dim() int {
	return 2*c.M + 1
}

func (c Constants) String() string {
	return fmt.Sprintf("m=%d B=%g mu=%g hbar=%g K=%g w1=%g", c.M, c.B, c.Mu, c.Hbar, c.K, c.W1)
}
