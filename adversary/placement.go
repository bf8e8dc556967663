package adversary

import (
	"sort"

	"github.com/katalvlaran/meshveil/rng"
	"github.com/katalvlaran/meshveil/socialgraph"
)

// Placement names the observer-selection strategy the sweep driver uses
// to pick which nodes the adversary can see (spec.md §6).
type Placement string

const (
	// PlacementRandom selects k ids uniformly without replacement.
	PlacementRandom Placement = "random"
	// PlacementHighDegree selects the k highest-degree ids.
	PlacementHighDegree Placement = "high-degree"
	// PlacementCluster grows a single BFS component from a random root,
	// padding with random ids if the component is smaller than k.
	PlacementCluster Placement = "cluster"
)

// SelectObservers returns k distinct observed node ids from g under the
// given placement strategy (spec.md §6 "Observer placement strategies").
// k is clamped to [0, g.N()].
func SelectObservers(g *socialgraph.Graph, k int, placement Placement, source *rng.Source) []int {
	if k <= 0 {
		return nil
	}
	if k > g.N() {
		k = g.N()
	}

	switch placement {
	case PlacementHighDegree:
		return selectHighDegree(g, k)
	case PlacementCluster:
		return selectCluster(g, k, source)
	default:
		return selectRandom(g, k, source)
	}
}

// selectRandom draws k ids uniformly without replacement via a
// Fisher-Yates partial shuffle over the dense id range.
func selectRandom(g *socialgraph.Graph, k int, source *rng.Source) []int {
	ids := make([]int, g.N())
	for i := range ids {
		ids[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + source.Intn(len(ids)-i)
		ids[i], ids[j] = ids[j], ids[i]
	}
	out := append([]int(nil), ids[:k]...)
	sort.Ints(out)
	return out
}

// selectHighDegree returns the k ids with the highest degree, breaking
// ties by ascending id for determinism.
func selectHighDegree(g *socialgraph.Graph, k int) []int {
	ids := make([]int, g.N())
	for i := range ids {
		ids[i] = i
	}
	sort.Slice(ids, func(i, j int) bool {
		di, dj := g.Degree(ids[i]), g.Degree(ids[j])
		if di != dj {
			return di > dj
		}
		return ids[i] < ids[j]
	})
	out := append([]int(nil), ids[:k]...)
	sort.Ints(out)
	return out
}

// selectCluster grows a single connected component by BFS from a random
// root until it has k members, then pads with random non-member ids if
// the root's component is smaller than k (spec.md §6).
func selectCluster(g *socialgraph.Graph, k int, source *rng.Source) []int {
	root := source.Intn(g.N())
	visited := map[int]bool{root: true}
	order := []int{root}
	queue := []int{root}

	for len(queue) > 0 && len(order) < k {
		u := queue[0]
		queue = queue[1:]
		for _, v := range g.Neighbors(u) {
			if visited[v] {
				continue
			}
			visited[v] = true
			order = append(order, v)
			queue = append(queue, v)
			if len(order) >= k {
				break
			}
		}
	}

	if len(order) < k {
		var rest []int
		for u := 0; u < g.N(); u++ {
			if !visited[u] {
				rest = append(rest, u)
			}
		}
		for i := 0; i < len(rest) && len(order) < k; i++ {
			j := i + source.Intn(len(rest)-i)
			rest[i], rest[j] = rest[j], rest[i]
			order = append(order, rest[i])
		}
	}

	out := append([]int(nil), order[:k]...)
	sort.Ints(out)
	return out
}
