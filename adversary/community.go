package adversary

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/meshveil/rng"
)

// labelPropagation implements spec.md §4.8's community detection:
// initialize label(u)=u; for up to 20 passes, visit nodes in shuffled
// order and adopt the majority label among neighbors (ties keep the
// current label); stop on the first pass that changes nothing.
//
// Label identity is deliberately unstable across runs because the
// per-pass shuffle draws from the shared adversary stream (spec.md §9:
// "community labels"); only the number of distinct labels is reported.
func labelPropagation(g *simple.WeightedUndirectedGraph, source *rng.Source) map[int]int {
	nodes := collectNodeIDs(g)
	if len(nodes) == 0 {
		return map[int]int{}
	}

	label := make(map[int]int, len(nodes))
	for _, id := range nodes {
		label[id] = id
	}

	const maxPasses = 20
	for pass := 0; pass < maxPasses; pass++ {
		order := shuffled(nodes, source)
		changed := false

		for _, u := range order {
			neighbors := g.From(int64(u))
			counts := make(map[int]int)
			for neighbors.Next() {
				nid := int(neighbors.Node().ID())
				counts[label[nid]]++
			}
			if len(counts) == 0 {
				continue
			}

			majority, tie := pickMajority(counts, label[u])
			if !tie && majority != label[u] {
				label[u] = majority
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	return label
}

func collectNodeIDs(g *simple.WeightedUndirectedGraph) []int {
	it := g.Nodes()
	var ids []int
	for it.Next() {
		ids = append(ids, int(it.Node().ID()))
	}
	sort.Ints(ids) // deterministic base order before shuffling
	return ids
}

func shuffled(nodes []int, source *rng.Source) []int {
	out := append([]int(nil), nodes...)
	for i := len(out) - 1; i > 0; i-- {
		j := source.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// pickMajority returns the label with the highest neighbor count,
// breaking ties by keeping current. tie is true when two or more
// labels share the maximum count.
func pickMajority(counts map[int]int, current int) (majority int, tie bool) {
	labels := make([]int, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Ints(labels)

	best, bestCount := current, -1
	tieCount := 0
	for _, label := range labels {
		c := counts[label]
		if c > bestCount {
			best, bestCount, tieCount = label, c, 1
		} else if c == bestCount {
			tieCount++
		}
	}
	if tieCount > 1 {
		return current, true
	}
	return best, false
}
