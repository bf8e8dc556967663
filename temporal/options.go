package temporal

// RateParams configures SampleUserMeans (spec.md §4.3).
type RateParams struct {
	MinPerDay, MaxPerDay int

	// Skew shapes the regular-user rate draw (default 0.6).
	Skew float64

	// HeavyUserFraction is the probability a user is "heavy" (default 0.15).
	HeavyUserFraction float64
}

// DefaultRateParams fills in the spec's documented defaults for Skew and
// HeavyUserFraction; MinPerDay/MaxPerDay have no sane default and must be
// set by the caller.
func DefaultRateParams() RateParams {
	return RateParams{Skew: 0.6, HeavyUserFraction: 0.15}
}

func (p RateParams) normalized() RateParams {
	if p.Skew <= 0 {
		p.Skew = 0.6
	}
	if p.HeavyUserFraction <= 0 {
		p.HeavyUserFraction = 0.15
	}
	return p
}

// DistributorParams configures the sub-epoch distributor (spec.md §4.3).
type DistributorParams struct {
	// SubEpochsPerHour is the number of sub-epoch buckets per hour
	// (default 6).
	SubEpochsPerHour int

	// BurstProbability is the chance an event spawns extra nearby copies
	// (default 0.2).
	BurstProbability float64

	// BurstWindow bounds how far (in buckets) burst copies may land from
	// the original bucket (default 2).
	BurstWindow int
}

// DefaultDistributorParams returns the spec's documented defaults.
func DefaultDistributorParams() DistributorParams {
	return DistributorParams{SubEpochsPerHour: 6, BurstProbability: 0.2, BurstWindow: 2}
}

func (p DistributorParams) normalized() DistributorParams {
	if p.SubEpochsPerHour <= 0 {
		p.SubEpochsPerHour = 6
	}
	if p.BurstWindow <= 0 {
		p.BurstWindow = 2
	}
	return p
}
