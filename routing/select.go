package routing

import (
	"math"

	"github.com/katalvlaran/meshveil/rng"
	"github.com/katalvlaran/meshveil/socialgraph"
)

// SelectPath computes the multi-hop path for one send from src to dst,
// capped at hmax hops, mixing strategies per spec.md §4.4: shortest
// (40%), near-shortest diverse (35%), longer diverse (20%), random walk
// (5%). Returns (nil, false) if no path exists within the hop budget —
// the caller must treat that as a skip, not an error (spec.md §7).
func SelectPath(g *socialgraph.Graph, src, dst, hmax int, tracker *DiversityTracker, source *rng.Source) ([]int, bool) {
	shortest, ok := shortestPath(g, src, dst, hmax)
	if !ok {
		return nil, false
	}

	r := source.Float64()
	var path []int
	switch {
	case r < shortestPathProb:
		path = shortest
	case r < shortestPathProb+nearShortestProb:
		length := clampLen(len(shortest)+1+source.Intn(2), hmax)
		p, err := findDiversePath(g, src, dst, length, tracker, source)
		path = orFallback(p, err, shortest)
	case r < shortestPathProb+nearShortestProb+diverseLongerProb:
		length := clampLen(int(math.Floor(float64(len(shortest))*1.5)), hmax)
		p, err := findDiversePath(g, src, dst, length, tracker, source)
		path = orFallback(p, err, shortest)
	default:
		path = randomWalk(g, src, dst, hmax, source)
	}

	if len(path) > hmax+1 {
		path = shortest
	}
	tracker.RecordPath(path)
	return path, true
}

func clampLen(length, hmax int) int {
	if length > hmax+1 {
		return hmax + 1
	}
	if length < 1 {
		return 1
	}
	return length
}

func orFallback(p []int, err error, fallback []int) []int {
	if err != nil {
		return fallback
	}
	return p
}
