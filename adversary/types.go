// Package adversary implements the local-passive inference engine
// (spec component C9): it observes a subset of nodes, scores candidate
// recipients for every observed send, and periodically reconstructs a
// weighted, tiered estimate of the social graph plus a community
// partition.
//
// Grounded in straga-Mimir_lite's linkpredict package (topological
// composite scoring over an explicit graph) for the scoring shape, and
// in vanderheijden86-beadwork's pkg/analysis (gonum.org/v1/gonum/graph/
// simple-backed graph with int64 node ids, periodic rebuild) for the
// estimated-graph representation — both in other_examples.
package adversary

// EstimatedTier is the adversary's own coarser tier classification
// (spec.md §4.8): distinct from socialgraph.Tier because it adds "weak"
// and "unknown" buckets that have no ground-truth counterpart.
type EstimatedTier int

const (
	TierUnknown EstimatedTier = iota
	TierWeak
	TierAcquaintance
	TierFriend
	TierIntimate
)

func (t EstimatedTier) String() string {
	switch t {
	case TierIntimate:
		return "intimate"
	case TierFriend:
		return "friend"
	case TierAcquaintance:
		return "acquaintance"
	case TierWeak:
		return "weak"
	default:
		return "unknown"
	}
}

// EstimatedEdge is one edge of the reconstructed graph (spec.md §4.8
// graph rebuild): a volume-classified tier plus an adjusted confidence.
type EstimatedEdge struct {
	A, B       int
	Tier       EstimatedTier
	Confidence float64
}

// Guess is one recorded recipient guess for an observed send
// (spec.md §3 Adversary State: "accumulated recipient-guess counts").
type Guess struct {
	T         int
	Sender    int
	Recipient int
}

// SentEntry is the minimal shape Results (the test-only evaluation
// channel, spec.md §9 open question) accepts: it must not be consumed
// by production inference.
type SentEntry struct {
	T, Sender, Recipient int
}

// guessKey is the canonical directional key for historical guess counts
// (sender→recipient is not symmetric, unlike socialgraph.Pair).
type guessKey struct {
	from, to int
}

// linkStat accumulates per-epoch contact volume for one undirected pair
// (spec.md §3 Adversary State: "temporal link counts keyed by
// (sortedPair, epoch)").
type linkStat struct {
	totalVolume int
	perEpoch    map[int]int // epoch -> count, only epochs with count>0
}

func newLinkStat() *linkStat {
	return &linkStat{perEpoch: make(map[int]int)}
}

func (s *linkStat) record(epoch, count int) {
	s.totalVolume += count
	s.perEpoch[epoch] += count
}

func (s *linkStat) countAt(epoch int) int {
	return s.perEpoch[epoch]
}

// mean and variance over all recorded (nonzero) epochs.
func (s *linkStat) meanVar() (mean, variance float64) {
	n := len(s.perEpoch)
	if n == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, c := range s.perEpoch {
		sum += float64(c)
	}
	mean = sum / float64(n)
	var sq float64
	for _, c := range s.perEpoch {
		d := float64(c) - mean
		sq += d * d
	}
	variance = sq / float64(n)
	return mean, variance
}

func tierBonus(t EstimatedTier) float64 {
	switch t {
	case TierIntimate:
		return 10
	case TierFriend:
		return 5
	case TierAcquaintance:
		return 2
	case TierWeak:
		return 0.5
	default:
		return 0
	}
}
