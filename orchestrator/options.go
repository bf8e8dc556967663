package orchestrator

import (
	"github.com/katalvlaran/meshveil/cover"
	"github.com/katalvlaran/meshveil/socialgraph"
	"github.com/katalvlaran/meshveil/temporal"
)

// Params configures one experiment (spec.md §4.7, §6 sweep surface).
type Params struct {
	HorizonHours       int
	Hmax               int
	CoverEnabled       bool
	NoiseEdgesPerEpoch int

	GraphParams       socialgraph.Params
	RateParams        temporal.RateParams
	DistributorParams temporal.DistributorParams
	CoverParams       cover.Params
}

// DefaultParams returns the baseline sweep configuration (spec.md §6:
// Hmax ∈ {1,3}; this picks the larger of the two as a sane default for
// ad-hoc runs outside a sweep). Per-user daily rates are drawn from
// [5, 30] messages per day.
func DefaultParams() Params {
	rates := temporal.DefaultRateParams()
	rates.MinPerDay, rates.MaxPerDay = 5, 30
	return Params{
		HorizonHours:       200,
		Hmax:               3,
		CoverEnabled:       false,
		NoiseEdgesPerEpoch: 0,
		GraphParams:        socialgraph.DefaultParams(),
		RateParams:         rates,
		DistributorParams:  temporal.DefaultDistributorParams(),
		CoverParams: cover.Params{
			TargetMultiplier:     1.0,
			MinTarget:            1,
			MaxTarget:            20,
			WindowSize:           5,
			NoiseStddev:          1.0,
			ProbabilityThreshold: 0.8,
		},
	}
}
