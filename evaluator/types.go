// Package evaluator implements the end-of-run comparison between ground
// truth and adversary output (spec component C10): per-guess accuracy,
// graph precision/recall/F1 with a tier breakdown, cover-traffic and
// routing statistics, and conversation statistics.
//
// Every comparison here is pairwise set overlap over the canonical
// socialgraph.Pair keys that the true graph and the adversary's
// estimated graph are both already indexed by (spec.md §4.9):
// precision/recall/F1, the tier confusion matrix, and the per-tier
// breakdown are all plain map intersection and counting. No gonum
// package is imported — a graph library has nothing to offer a
// computation that is already a map lookup, unlike adversary's
// estimated-graph rebuild (gonum.org/v1/gonum/graph/simple) or
// groundtruth's component/diameter statistics (gonum/graph/topo,
// gonum/graph/path).
package evaluator

// GraphMetrics is precision/recall/F1 on a set of undirected edges.
type GraphMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
}

// CoverStats summarizes cover-traffic behavior across the run.
type CoverStats struct {
	DummyFraction float64
	SenderEntropy float64
}

// RoutingStats summarizes path-selection behavior across the run.
type RoutingStats struct {
	AveragePathLength float64
	Diversity         float64
	ShortUsageRate    float64
}

// ConversationStats summarizes reply behavior across the run.
type ConversationStats struct {
	ReplyCount            int
	MeanReplyDelay        float64
	ThreadCount           int
	MeanMessagesPerThread float64
}

// Result bundles every metric the evaluator computes (spec.md §4.9).
type Result struct {
	Accuracy          float64
	CorrectGuesses    int
	TotalGuesses      int
	GraphMetrics      GraphMetrics
	TierMetrics       map[string]GraphMetrics
	ConfusionMatrix   map[string]map[string]int
	CoverStats        CoverStats
	RoutingStats      RoutingStats
	ConversationStats ConversationStats
}
