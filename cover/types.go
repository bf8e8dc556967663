// Package cover implements the cover-traffic manager (spec component C7):
// per-link Poisson volume normalization toward an adaptive baseline, so
// real and dummy messages become indistinguishable at the adversary
// interface.
//
// Grounded in hashcloak-Meson-server's internal/decoy package (a decoy
// traffic source shaping emitted volume toward a configured target) for
// the manager's shape; the Poisson sampling step is wired to
// gonum.org/v1/gonum/stat/distuv.Poisson (SPEC_FULL.md §3) instead of a
// hand-rolled Knuth loop, matching the two-regime (Knuth for small λ,
// normal approximation for large λ) algorithm spec.md §4.6 calls for.
package cover

// Params configures the cover traffic manager (spec.md §4.6).
type Params struct {
	TargetMultiplier     float64
	MinTarget, MaxTarget float64
	WindowSize           int
	NoiseStddev          float64
	ProbabilityThreshold float64
}

// Dummy is one emitted cover message (spec.md §3: dummy=true).
type Dummy struct {
	From, To int
	Epoch    int
}

// epochEntry is one epoch's real/cover counts on a link (spec.md §3
// Per-Link Recent History).
type epochEntry struct {
	epoch int
	real  int
	cover int
}

type linkHistory struct {
	entries []epochEntry // ascending epoch, one entry per epoch at most
}

func (h *linkHistory) entryAt(epoch int) *epochEntry {
	for i := range h.entries {
		if h.entries[i].epoch == epoch {
			return &h.entries[i]
		}
	}
	h.entries = append(h.entries, epochEntry{epoch: epoch})
	return &h.entries[len(h.entries)-1]
}

// trim keeps only entries within the last window+10 epochs of t
// (spec.md §3 Per-Link Recent History invariant).
func (h *linkHistory) trim(t, window int) {
	cutoff := t - (window + 10)
	i := 0
	for i < len(h.entries) && h.entries[i].epoch < cutoff {
		i++
	}
	if i > 0 {
		h.entries = h.entries[i:]
	}
}

// sumSince sums real+cover over epochs in [from, to) (exclusive of to).
func (h *linkHistory) sumSince(from, to int) int {
	total := 0
	for _, e := range h.entries {
		if e.epoch >= from && e.epoch < to {
			total += e.real + e.cover
		}
	}
	return total
}
