package socialgraph

// Coordinate is an optional 2D spatial position for a user, used by the
// distance model (spec.md §4.2) when supplied; otherwise a deterministic
// pseudo-distance is used instead.
type Coordinate struct {
	X, Y float64
}

// Params configures graph construction (spec.md §4.2).
type Params struct {
	// PIntimate, PFriend, PAcquaintance are the target fractions of (N-1)
	// used to derive per-tier degree targets.
	PIntimate, PFriend, PAcquaintance float64

	// PBridge is the per-user probability of adding bridge edges.
	PBridge float64

	// Seed drives every stochastic decision made during construction:
	// Build seeds its own rng stream from it (spec.md §4.1).
	Seed int64

	// BandMultiplier widens the candidate band per tier beyond the exact
	// target count before weighted sampling. Defaults to 2.
	BandMultiplier int

	// BridgeSample is the number of bridge edges attempted per user.
	// Defaults to 3.
	BridgeSample int

	// Coordinates optionally supplies spatial positions, one per user. If
	// nil or shorter than N, the deterministic pseudo-distance model is
	// used for users without coordinates.
	Coordinates []Coordinate
}

// DefaultParams returns Params with the spec's documented defaults for the
// tuning knobs (bandMultiplier=2, bridgeSample=3) and zeroed tier/seed
// fields, which the caller must set explicitly.
func DefaultParams() Params {
	return Params{
		BandMultiplier: 2,
		BridgeSample:   3,
	}
}

// normalized returns a copy of p with zero-valued tuning knobs replaced by
// their documented defaults.
func (p Params) normalized() Params {
	if p.BandMultiplier <= 0 {
		p.BandMultiplier = 2
	}
	if p.BridgeSample <= 0 {
		p.BridgeSample = 3
	}
	return p
}
