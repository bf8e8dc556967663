package temporal

import (
	"math"

	"github.com/katalvlaran/meshveil/rng"
)

// SampleUserMeans draws one integer daily message rate per user
// (spec.md §4.3): each user is "heavy" with probability
// HeavyUserFraction, in which case its rate is drawn uniformly from
// [min, min+0.8·(max−min)); otherwise a skewed draw over the narrower
// [min, min+0.4·(max−min)) biases regular users toward the lower end.
func SampleUserMeans(n int, p RateParams, source *rng.Source) []int {
	p = p.normalized()
	spread := float64(p.MaxPerDay - p.MinPerDay)
	rates := make([]int, n)
	for u := 0; u < n; u++ {
		u01 := source.Float64()
		var rate float64
		if source.Bool(p.HeavyUserFraction) {
			rate = float64(p.MinPerDay) + u01*spread*0.8
		} else {
			rate = float64(p.MinPerDay) + math.Pow(u01, p.Skew)*spread*0.4
		}
		rates[u] = int(rate)
	}
	return rates
}
