package routing

import (
	"github.com/katalvlaran/meshveil/rng"
	"github.com/katalvlaran/meshveil/socialgraph"
)

// randomWalk advances from src preferring unvisited neighbors uniformly,
// finishing early at dst when it is adjacent and a coin flip succeeds,
// and falling back to a BFS shortest path once the hop budget is nearly
// exhausted (spec.md §4.4).
func randomWalk(g *socialgraph.Graph, src, dst, hmax int, source *rng.Source) []int {
	path := []int{src}
	visited := map[int]bool{src: true}
	cur := src

	for len(path) <= hmax {
		if cur == dst {
			return path
		}
		if g.HasEdge(cur, dst) && source.Bool(randomWalkFinishP) {
			return append(path, dst)
		}

		remaining := hmax + 1 - len(path)
		if remaining <= 1 {
			if sp, ok := shortestPath(g, cur, dst, remaining); ok {
				return append(path[:len(path):len(path)], sp[1:]...)
			}
			break
		}

		var unvisited []int
		for _, nb := range g.Neighbors(cur) {
			if !visited[nb] {
				unvisited = append(unvisited, nb)
			}
		}
		if len(unvisited) == 0 {
			if sp, ok := shortestPath(g, cur, dst, remaining); ok {
				return append(path[:len(path):len(path)], sp[1:]...)
			}
			break
		}

		next := unvisited[source.Intn(len(unvisited))]
		visited[next] = true
		path = append(path, next)
		cur = next
	}

	if cur == dst {
		return path
	}
	// last resort per spec.md §4.4: callers only reach this when a
	// shortest path was already confirmed to exist within hmax, so this
	// branch is a defensive fallback, not the common case.
	return []int{src, dst}
}
