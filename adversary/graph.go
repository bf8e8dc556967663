package adversary

import (
	"math"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/meshveil/socialgraph"
)

// overallScore combines volume, co-activity, reciprocity, and volume
// consistency into the graph-estimate relationship score (spec.md §4.8).
// It is recomputed on demand from the current link statistics, not
// cached, so both the per-send "relationship" term and the periodic
// rebuild see the freshest data.
func (e *Engine) overallScore(a, b int) float64 {
	stat, ok := e.linkStats[socialgraph.NewPair(a, b)]
	if !ok {
		return 0
	}

	vol := float64(stat.totalVolume)

	totalEpochs := len(e.epochsSeen)
	coActivity := 0.0
	if totalEpochs > 0 {
		coActivity = float64(len(stat.perEpoch)) / float64(totalEpochs)
	}

	fwd := e.historical[guessKey{from: a, to: b}]
	rev := e.historical[guessKey{from: b, to: a}]
	hi, lo := fwd, rev
	if rev > hi {
		hi, lo = rev, fwd
	}
	reciprocity := float64(lo) / float64(hi+1)

	_, variance := stat.meanVar()
	consistency := 1.0 / (1.0 + math.Sqrt(variance))

	return 0.4*vol + 0.2*coActivity*100 + 0.2*reciprocity*50 + 0.2*consistency*50
}

// classify buckets a volume into a tier and its base confidence
// (spec.md §4.8).
func classify(vol float64) (EstimatedTier, float64) {
	switch {
	case vol >= 100:
		return TierIntimate, math.Min(0.9, vol/200)
	case vol >= 30:
		return TierFriend, math.Min(0.8, vol/60)
	case vol >= 5:
		return TierAcquaintance, math.Min(0.7, vol/15)
	default:
		return TierWeak, 0.4
	}
}

// rebuild reconstructs the estimated graph and community partition from
// every observed link (spec.md §4.8). It is backed by a
// gonum.org/v1/gonum/graph/simple.WeightedUndirectedGraph keyed by the
// same dense integer user ids the social graph uses, mirroring
// vanderheijden86-beadwork's pkg/analysis graph-rebuild idiom.
func (e *Engine) rebuild() {
	g := simple.NewWeightedUndirectedGraph(0, 0)
	tiers := make(map[socialgraph.Pair]EstimatedTier)
	confidences := make(map[socialgraph.Pair]float64)

	for pair, stat := range e.linkStats {
		vol := float64(stat.totalVolume)
		tier, base := classify(vol)

		fwd := e.historical[guessKey{from: pair.A, to: pair.B}]
		rev := e.historical[guessKey{from: pair.B, to: pair.A}]
		hi, lo := fwd, rev
		if rev > hi {
			hi, lo = rev, fwd
		}
		reciprocity := float64(lo) / float64(hi+1)

		_, variance := stat.meanVar()
		consistency := 1.0 / (1.0 + math.Sqrt(variance))

		confidence := base * (0.7 + 0.3*reciprocity) * (0.8 + 0.2*consistency)
		if confidence < confidenceThreshold {
			continue
		}

		tiers[pair] = tier
		confidences[pair] = confidence
	}

	e.estimated = make(map[socialgraph.Pair]EstimatedEdge, len(tiers))
	for pair, tier := range tiers {
		e.estimated[pair] = EstimatedEdge{A: pair.A, B: pair.B, Tier: tier, Confidence: confidences[pair]}

		fromNode := simple.Node(int64(pair.A))
		toNode := simple.Node(int64(pair.B))
		if g.Node(fromNode.ID()) == nil {
			g.AddNode(fromNode)
		}
		if g.Node(toNode.ID()) == nil {
			g.AddNode(toNode)
		}
		g.SetWeightedEdge(g.NewWeightedEdge(fromNode, toNode, confidences[pair]))
	}

	e.communities = labelPropagation(g, e.source)
}
