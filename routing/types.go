// Package routing selects per-send multi-hop paths across the social
// graph (spec component C5): a mix of shortest-path, near-shortest
// diverse, and random-walk strategies, with a diversity tracker that
// deprioritizes previously used nodes and edges across the run.
//
// Grounded in the teacher's bfs package (walker/queue shape, PathTo-style
// reconstruction, MaxDepth capping), adapted from core.Graph's string-keyed
// adjacency to socialgraph.Graph's dense integer adjacency arrays. The
// diverse-path roulette selection (findDiversePath, enumeratePaths) is a
// plain DFS over maps, not a heap-based relaxation — it enumerates a
// bounded number of candidate paths outright rather than incrementally
// relaxing a priority frontier, so it has no dijkstra/container-heap
// counterpart in the teacher.
package routing

import "errors"

// ErrNoPath is returned when no path exists from src to dst within the
// Hmax hop budget. Per spec.md §7 this is not an exceptional condition at
// the orchestrator level — the caller treats it as a skip, not an error.
var ErrNoPath = errors.New("routing: no path within hop budget")

// Strategy mix probabilities (spec.md §4.4).
const (
	shortestPathProb   = 0.40
	nearShortestProb   = 0.35
	diverseLongerProb  = 0.20
	randomWalkProb     = 0.05 // remainder; kept for documentation
	diverseDecay       = 0.95
	diverseUsageWeight = 0.1
	maxDiversePaths    = 20
	randomWalkFinishP  = 0.3
)
