package socialgraph

import (
	"math"
	"sort"

	"github.com/katalvlaran/meshveil/rng"
)

const sampleEpsilon = 1e-9

// tierSpec pairs a Tier with its per-user target edge count, processed
// strongest-first so stronger tiers claim peers before weaker ones
// (spec.md §4.2).
type tierSpec struct {
	tier  Tier
	count int
}

// Build constructs the tiered social graph for n users under params,
// following spec.md §4.2 exactly: per-tier degree targets, a distance
// model (spatial or pseudo-distance), banded Efraimidis-Spirakis weighted
// sampling without replacement per tier, symmetric reconciliation, and
// bridge edges.
func Build(n int, params Params) (*Graph, error) {
	if n < 1 {
		return nil, ErrTooFewUsers
	}
	if err := validateTierProbs(params); err != nil {
		return nil, err
	}
	p := params.normalized()

	g := &Graph{
		n:    n,
		adj:  make([][]int, n),
		tier: make(map[Pair]Tier),
	}

	if n == 1 {
		return g, nil
	}

	dm := newDistanceModel(n, p.Coordinates)
	source := rng.New(p.Seed)

	kInt := maxInt(1, int(p.PIntimate*float64(n-1)))
	kFri := maxInt(kInt+2, int(p.PFriend*float64(n-1)))
	kAcq := maxInt(kFri+3, int(p.PAcquaintance*float64(n-1)))

	tiers := []tierSpec{
		{Intimate, kInt},
		{Friend, kFri},
		{Acquaintance, kAcq},
	}

	for u := 0; u < n; u++ {
		peers := sortedPeersByDistance(u, n, dm)
		picked := make(map[int]bool, kInt+kFri+kAcq)

		for _, spec := range tiers {
			remaining := remainingCandidates(peers, picked)
			if len(remaining) == 0 || spec.count == 0 {
				continue
			}
			bandSize := maxInt(spec.count, p.BandMultiplier*spec.count)
			if bandSize > len(remaining) {
				bandSize = len(remaining)
			}
			band := remaining[:bandSize]

			k := spec.count
			if k > len(band) {
				k = len(band)
			}
			chosen := weightedSampleWithoutReplacement(band, dm, u, k, source)
			for _, v := range chosen {
				picked[v] = true
				g.addEdge(u, v, spec.tier)
			}
		}
	}

	injectBridges(g, p, source)

	return g, nil
}

func validateTierProbs(p Params) error {
	for _, v := range []float64{p.PIntimate, p.PFriend, p.PAcquaintance, p.PBridge} {
		if v < 0 || v > 1 {
			return ErrInvalidTierProb
		}
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// sortedPeersByDistance returns every user other than u, sorted by
// distance to u ascending (ties broken by id, for determinism).
func sortedPeersByDistance(u, n int, dm *distanceModel) []int {
	peers := make([]int, 0, n-1)
	for v := 0; v < n; v++ {
		if v != u {
			peers = append(peers, v)
		}
	}
	sort.Slice(peers, func(i, j int) bool {
		di, dj := dm.dist(u, peers[i]), dm.dist(u, peers[j])
		if di != dj {
			return di < dj
		}
		return peers[i] < peers[j]
	})
	return peers
}

// remainingCandidates filters peers (already sorted by distance) down to
// those not yet picked for this user by a stronger tier.
func remainingCandidates(peers []int, picked map[int]bool) []int {
	out := make([]int, 0, len(peers))
	for _, v := range peers {
		if !picked[v] {
			out = append(out, v)
		}
	}
	return out
}

// weightedSampleWithoutReplacement implements Efraimidis-Spirakis weighted
// sampling without replacement (spec.md §4.2): each candidate v gets
// weight w = 1/(dist(u,v)+eps) and key = U^(1/w) for U ~ Uniform(0,1); the
// top-k candidates by key are kept.
func weightedSampleWithoutReplacement(band []int, dm *distanceModel, u, k int, source *rng.Source) []int {
	type keyed struct {
		id  int
		key float64
	}
	keys := make([]keyed, len(band))
	for i, v := range band {
		w := 1.0 / (dm.dist(u, v) + sampleEpsilon)
		uDraw := source.Float64()
		// guard against uDraw==0 causing -Inf via log; practically
		// unreachable given the generator's range but kept defensive.
		if uDraw <= 0 {
			uDraw = sampleEpsilon
		}
		key := math.Pow(uDraw, 1.0/w)
		keys[i] = keyed{id: v, key: key}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].key > keys[j].key })
	if k > len(keys) {
		k = len(keys)
	}
	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = keys[i].id
	}
	return out
}

// injectBridges adds cross-cluster bridge edges (spec.md §4.2): for each
// user, with probability PBridge, iterate non-neighbors in ascending id
// order and include each with probability (bridgeSample-added)/remaining
// until BridgeSample edges are added, defaulting to Acquaintance tier.
func injectBridges(g *Graph, p Params, source *rng.Source) {
	for u := 0; u < g.n; u++ {
		if !source.Bool(p.PBridge) {
			continue
		}
		nonNeighbors := make([]int, 0, g.n)
		for v := 0; v < g.n; v++ {
			if v != u && !g.HasEdge(u, v) {
				nonNeighbors = append(nonNeighbors, v)
			}
		}
		added := 0
		remaining := len(nonNeighbors)
		for _, v := range nonNeighbors {
			if added >= p.BridgeSample {
				break
			}
			prob := float64(p.BridgeSample-added) / float64(remaining)
			if source.Bool(prob) {
				g.addEdge(u, v, Acquaintance)
				added++
			}
			remaining--
		}
	}
}
