// Package conf holds the tunable parameters of a factorization run. Every
// field has a working default, so the zero value plus FillDefaults -- or
// DefaultParams() -- is a usable configuration.
package conf

// Copyright (c) 2025 Colin McRae

import (
	"runtime"

	"github.com/spf13/viper"
)

const (
	defaultTrivialRetries   = 16
	defaultBoundEscalations = 3
	maxDefaultWorkers       = 8
)

// Params configures one factorization run. A viper (or any yaml based)
// configuration can be unmarshalled into this object; for viper just use
// Unmarshal(&params). Zero-valued fields are replaced by defaults.
type Params struct {
	// SmoothnessBound overrides the ceil(exp(sqrt(ln n * ln ln n)))
	// heuristic when nonzero. The factor base is all primes up to the
	// bound.
	SmoothnessBound uint32 `yaml:"smoothnessBound"`

	// RelationAttempts bounds the number of candidates z sampled during
	// one relation-collection pass. Zero means 1000 attempts per relation
	// needed, which is far above the expected cost for smooth-rich inputs.
	RelationAttempts int64 `yaml:"relationAttempts"`

	// TrivialRetries is the number of consecutive trivial congruences
	// tolerated on one residue before the run is declared a failure.
	TrivialRetries int `yaml:"trivialRetries"`

	// BoundEscalations is the number of times the smoothness bound is
	// doubled after relation collection exhausts its attempt budget.
	BoundEscalations int `yaml:"boundEscalations"`

	// SampleWorkers is the number of goroutines sampling candidates
	// concurrently during relation collection.
	SampleWorkers int `yaml:"sampleWorkers"`
}

// DefaultParams returns the Params used when the caller supplies none.
func DefaultParams() Params {
	params := Params{}
	params.FillDefaults()
	return params
}

// NewParams returns a Params object if it is able to unmarshal the viper
// config, otherwise it returns an error.
func NewParams(vip *viper.Viper) (*Params, error) {
	params := Params{}
	err := vip.Unmarshal(&params)
	if err != nil {
		return nil, err
	}
	params.FillDefaults()
	return &params, nil
}

// FillDefaults replaces zero-valued fields with their defaults. A zero
// SmoothnessBound is kept as-is: it selects the per-residue heuristic, and
// a zero RelationAttempts is resolved per-residue from the factor base size.
func (p *Params) FillDefaults() {
	if p.TrivialRetries == 0 {
		p.TrivialRetries = defaultTrivialRetries
	}
	if p.BoundEscalations == 0 {
		p.BoundEscalations = defaultBoundEscalations
	}
	if p.SampleWorkers == 0 {
		p.SampleWorkers = runtime.NumCPU()
		if p.SampleWorkers > maxDefaultWorkers {
			p.SampleWorkers = maxDefaultWorkers
		}
	}
}
