package temporal

import (
	"math"
	"sort"

	"github.com/katalvlaran/meshveil/rng"
)

// GenerateEventsForHours produces the timestamped send-event stream for
// horizonHours simulated hours (spec.md §4.3). The diurnal multiplier
// repeats daily (indexed by hour mod 24), so horizonHours may exceed 24 to
// cover a multi-day experiment horizon.
//
// For each hour and user, a send is emitted with probability
// min(0.8, (rate/24)*multiplier); when emitted, 1+floor(U*3) events are
// produced, each uniformly distributed within that hour. The result is
// sorted by timestamp ascending.
func GenerateEventsForHours(rates []int, horizonHours int, source *rng.Source) []Event {
	var events []Event
	for h := 0; h < horizonHours; h++ {
		mult := diurnalMultiplier[h%24]
		hourStart := int64(h) * hourMs
		for u, rate := range rates {
			p := math.Min(0.8, (float64(rate)/24.0)*mult)
			if !source.Bool(p) {
				continue
			}
			count := 1 + source.Intn(3)
			for i := 0; i < count; i++ {
				offset := int64(source.Float64() * float64(hourMs))
				events = append(events, Event{UserID: u, TimestampMs: hourStart + offset})
			}
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].TimestampMs != events[j].TimestampMs {
			return events[i].TimestampMs < events[j].TimestampMs
		}
		return events[i].UserID < events[j].UserID
	})
	return events
}
