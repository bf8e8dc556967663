package routing

import "github.com/katalvlaran/meshveil/socialgraph"

// DiversityTracker accumulates per-node and per-edge usage counts across
// every path selected so far in a run, used to deprioritize previously
// chosen routing elements (spec.md §4.4, §9 Glossary "Diversity score").
type DiversityTracker struct {
	nodeUsage map[int]int
	edgeUsage map[socialgraph.Pair]int
}

// NewDiversityTracker returns an empty tracker.
func NewDiversityTracker() *DiversityTracker {
	return &DiversityTracker{
		nodeUsage: make(map[int]int),
		edgeUsage: make(map[socialgraph.Pair]int),
	}
}

// NodeScore returns 1/(1+usage*0.1) for node n.
func (d *DiversityTracker) NodeScore(n int) float64 {
	return 1.0 / (1.0 + float64(d.nodeUsage[n])*diverseUsageWeight)
}

// EdgeScore returns 1/(1+usage*0.1) for the undirected edge (u,v).
func (d *DiversityTracker) EdgeScore(u, v int) float64 {
	return 1.0 / (1.0 + float64(d.edgeUsage[socialgraph.NewPair(u, v)])*diverseUsageWeight)
}

// RecordPath increments usage for every node and edge traversed by path.
// Called once per successful send, after the path is chosen (spec.md
// §4.4: "After each send, diversityTracker records all nodes and edges
// traversed").
func (d *DiversityTracker) RecordPath(path []int) {
	for i, n := range path {
		d.nodeUsage[n]++
		if i > 0 {
			d.edgeUsage[socialgraph.NewPair(path[i-1], n)]++
		}
	}
}

// pathScore computes sum(nodeScore+edgeScore) * decay^len for a candidate
// path, per spec.md §4.4.
func (d *DiversityTracker) pathScore(path []int) float64 {
	var s float64
	for i, n := range path {
		s += d.NodeScore(n)
		if i > 0 {
			s += d.EdgeScore(path[i-1], n)
		}
	}
	return s * pow95(len(path))
}

func pow95(n int) float64 {
	v := 1.0
	for i := 0; i < n; i++ {
		v *= diverseDecay
	}
	return v
}
