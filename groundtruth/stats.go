package groundtruth

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/katalvlaran/meshveil/socialgraph"
)

// computeStatistics derives every Statistics field from a built graph.
// Components and diameter are wired to gonum.org/v1/gonum/graph/topo and
// gonum.org/v1/gonum/graph/path (the same gonum/graph family adversary's
// graph rebuild already depends on) rather than hand-rolled BFS:
// topo.ConnectedComponents partitions the graph directly, and repeated
// path.DijkstraFrom over the unweighted gonum graph gives the all-pairs
// distances the diameter needs. Average clustering has no gonum
// equivalent to wire (the local clustering coefficient is not exposed by
// graph/network in this module's gonum version), so it stays a small
// hand-rolled triangle count — see DESIGN.md's groundtruth entry.
func computeStatistics(g *socialgraph.Graph) Statistics {
	n := g.N()
	stats := Statistics{
		TotalNodes:         n,
		DegreeDistribution: make(map[string]int),
	}
	if n == 0 {
		return stats
	}

	minDeg, maxDeg, sumDeg := -1, 0, 0
	for u := 0; u < n; u++ {
		d := g.Degree(u)
		sumDeg += d
		if minDeg == -1 || d < minDeg {
			minDeg = d
		}
		if d > maxDeg {
			maxDeg = d
		}
		stats.DegreeDistribution[strconv.Itoa(d)]++
	}
	stats.MinDegree = minDeg
	stats.MaxDegree = maxDeg
	stats.AvgDegree = float64(sumDeg) / float64(n)

	g.EachEdge(func(u, v int, tier socialgraph.Tier) {
		stats.TotalEdges++
		switch tier {
		case socialgraph.Intimate:
			stats.TierDistribution.Intimate++
		case socialgraph.Friend:
			stats.TierDistribution.Friend++
		case socialgraph.Acquaintance:
			stats.TierDistribution.Acquaintance++
		}
	})

	gg := toGonumGraph(g)
	stats.Components = len(topo.ConnectedComponents(gg))
	stats.Diameter = diameter(gg, n)
	stats.Clustering = averageClustering(g)

	return stats
}

// toGonumGraph builds a gonum/graph/simple.UndirectedGraph mirroring g's
// adjacency, keyed by the same dense integer user ids, for topo/path to
// operate on.
func toGonumGraph(g *socialgraph.Graph) *simple.UndirectedGraph {
	gg := simple.NewUndirectedGraph()
	for u := 0; u < g.N(); u++ {
		gg.AddNode(simple.Node(int64(u)))
	}
	g.EachEdge(func(u, v int, _ socialgraph.Tier) {
		gg.SetEdge(simple.Edge{F: simple.Node(int64(u)), T: simple.Node(int64(v))})
	})
	return gg
}

// diameter returns the longest shortest-path distance between any two
// mutually reachable nodes, via gonum's unweighted Dijkstra from every
// node. Disconnected pairs do not contribute, so a disconnected graph
// reports the diameter of its widest component rather than infinity.
func diameter(gg *simple.UndirectedGraph, n int) int {
	longest := 0
	for u := 0; u < n; u++ {
		shortest := path.DijkstraFrom(simple.Node(int64(u)), gg)
		for v := 0; v < n; v++ {
			if v == u {
				continue
			}
			w := shortest.WeightTo(int64(v))
			if math.IsInf(w, 1) {
				continue
			}
			if d := int(w); d > longest {
				longest = d
			}
		}
	}
	return longest
}

// averageClustering is the mean local clustering coefficient across all
// nodes: for a node with degree < 2 the coefficient is 0, otherwise it is
// 2*triangles / (deg*(deg-1)).
func averageClustering(g *socialgraph.Graph) float64 {
	n := g.N()
	if n == 0 {
		return 0
	}
	var sum float64
	for u := 0; u < n; u++ {
		neighbors := g.Neighbors(u)
		d := len(neighbors)
		if d < 2 {
			continue
		}
		links := 0
		for i := 0; i < len(neighbors); i++ {
			for j := i + 1; j < len(neighbors); j++ {
				if g.HasEdge(neighbors[i], neighbors[j]) {
					links++
				}
			}
		}
		sum += float64(2*links) / float64(d*(d-1))
	}
	return sum / float64(n)
}
