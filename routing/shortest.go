package routing

import "github.com/katalvlaran/meshveil/socialgraph"

// shortestPath runs a breadth-first search capped at hmax hops (hmax+1
// nodes), returning (path, true) if dst is reachable within the budget,
// or (nil, false) otherwise (spec.md §4.4 step 1).
func shortestPath(g *socialgraph.Graph, src, dst, hmax int) ([]int, bool) {
	if src == dst {
		return []int{src}, true
	}
	if hmax <= 0 {
		return nil, false
	}

	visited := map[int]bool{src: true}
	parent := map[int]int{}
	depth := map[int]int{src: 0}
	queue := []int{src}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if depth[cur] >= hmax {
			continue
		}
		for _, nb := range g.Neighbors(cur) {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			parent[nb] = cur
			depth[nb] = depth[cur] + 1
			if nb == dst {
				return reconstruct(parent, src, dst), true
			}
			queue = append(queue, nb)
		}
	}
	return nil, false
}

// reconstruct walks the parent map from dst back to src and reverses it.
func reconstruct(parent map[int]int, src, dst int) []int {
	path := []int{dst}
	cur := dst
	for cur != src {
		cur = parent[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
