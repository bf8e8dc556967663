package temporal_test

import (
	"testing"

	"github.com/katalvlaran/meshveil/rng"
	"github.com/katalvlaran/meshveil/temporal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleUserMeansDeterminism(t *testing.T) {
	p := temporal.DefaultRateParams()
	p.MinPerDay, p.MaxPerDay = 1, 20

	a := temporal.SampleUserMeans(30, p, rng.New(5))
	b := temporal.SampleUserMeans(30, p, rng.New(5))
	assert.Equal(t, a, b)
	assert.Len(t, a, 30)
}

func TestGenerateEventsForHoursSortedAndDeterministic(t *testing.T) {
	p := temporal.DefaultRateParams()
	p.MinPerDay, p.MaxPerDay = 5, 30
	rates := temporal.SampleUserMeans(10, p, rng.New(1))

	evA := temporal.GenerateEventsForHours(rates, 24, rng.New(2))
	evB := temporal.GenerateEventsForHours(rates, 24, rng.New(2))
	require.Equal(t, evA, evB)

	for i := 1; i < len(evA); i++ {
		assert.LessOrEqual(t, evA[i-1].TimestampMs, evA[i].TimestampMs)
	}
}

func TestDistributeBucketsWithinRange(t *testing.T) {
	p := temporal.DefaultRateParams()
	p.MinPerDay, p.MaxPerDay = 5, 30
	rates := temporal.SampleUserMeans(10, p, rng.New(1))
	events := temporal.GenerateEventsForHours(rates, 24, rng.New(2))

	dp := temporal.DefaultDistributorParams()
	buckets := temporal.Distribute(events, 24, dp, rng.New(3))

	total := 24 * dp.SubEpochsPerHour
	for b := range buckets {
		assert.GreaterOrEqual(t, b, 0)
		assert.Less(t, b, total)
	}
}

func TestDistributeDeterminism(t *testing.T) {
	events := []temporal.Event{{UserID: 0, TimestampMs: 1000}, {UserID: 1, TimestampMs: 500000}}
	dp := temporal.DefaultDistributorParams()

	a := temporal.Distribute(events, 24, dp, rng.New(9))
	b := temporal.Distribute(events, 24, dp, rng.New(9))
	assert.Equal(t, a, b)
}
