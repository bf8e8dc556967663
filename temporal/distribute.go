package temporal

import (
	"math"

	"github.com/katalvlaran/meshveil/rng"
)

// Distribute maps events into sub-epoch buckets and injects bursty extra
// copies (spec.md §4.3, C4). horizonHours*SubEpochsPerHour is the total
// number of buckets. The returned map is keyed by sub-epoch index; each
// value lists the user ids originating a send in that bucket (duplicates
// are expected and meaningful: one per attempted send, including burst
// copies).
func Distribute(events []Event, horizonHours int, p DistributorParams, source *rng.Source) map[int][]int {
	p = p.normalized()
	totalSubEpochs := horizonHours * p.SubEpochsPerHour
	out := make(map[int][]int, len(events))
	if totalSubEpochs <= 0 {
		return out
	}

	horizonMs := int64(horizonHours) * hourMs

	for _, e := range events {
		bucket := computeBucket(e.TimestampMs, horizonMs, totalSubEpochs, source)
		out[bucket] = append(out[bucket], e.UserID)

		if source.Bool(p.BurstProbability) {
			size := 2 + source.Intn(4) // burst size in [2,5]
			for i := 0; i < size-1; i++ {
				jitter := source.Intn(2*p.BurstWindow+1) - p.BurstWindow
				nb := clampInt(bucket+jitter, 0, totalSubEpochs-1)
				out[nb] = append(out[nb], e.UserID)
			}
		}
	}
	return out
}

// computeBucket implements spec.md §4.3's mapping exactly:
//
//	bucket = floor((t/horizonMs) * totalSubEpochs) + floor((U-0.5)*2)
//
// clamped to [0, totalSubEpochs). horizonMs spans the full simulated
// horizon (not a fixed calendar day), so the mapping spreads events
// across every sub-epoch regardless of how many hours the horizon runs.
func computeBucket(t, horizonMs int64, totalSubEpochs int, source *rng.Source) int {
	raw := (float64(t) / float64(horizonMs)) * float64(totalSubEpochs)
	jitter := math.Floor((source.Float64() - 0.5) * 2)
	b := int(math.Floor(raw)) + int(jitter)
	return clampInt(b, 0, totalSubEpochs-1)
}
