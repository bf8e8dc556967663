// Package temporal implements the per-user message-generation rate model
// and its distribution into sub-epoch buckets (spec components C3 and
// C4): daily-rate sampling modulated by a diurnal activity curve, and
// mapping of the resulting events into sub-epoch buckets with bursty
// behavior.
//
// Grounded in the teacher's (lvlath/builder) deterministic sequence
// generators (impl_pulse.go, impl_chirp.go): an injected RNG stream plus
// amplitude/frequency-style tunables produce a reproducible waveform —
// here, a diurnal multiplier curve — rather than consulting wall-clock
// time or global state.
package temporal

// Event is one message-generation opportunity produced by the temporal
// model: a user about to originate a send at a given simulated timestamp.
type Event struct {
	UserID      int
	TimestampMs int64
}

// diurnalMultiplier is the 24-hour "campus curve" from spec.md §4.3: low
// overnight (0.1), rising through the morning, peaking at 1.4 in the
// early afternoon, and tapering into the evening.
var diurnalMultiplier = [24]float64{
	0: 0.10, 1: 0.10, 2: 0.10, 3: 0.10, 4: 0.10, 5: 0.15,
	6: 0.25, 7: 0.45, 8: 0.70, 9: 0.95, 10: 1.15, 11: 1.30,
	12: 1.35, 13: 1.40, 14: 1.35, 15: 1.25, 16: 1.10, 17: 0.90,
	18: 0.70, 19: 0.55, 20: 0.45, 21: 0.35, 22: 0.25, 23: 0.15,
}

const hourMs int64 = 3_600_000

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
