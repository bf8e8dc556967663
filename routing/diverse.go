package routing

import (
	"github.com/katalvlaran/meshveil/rng"
	"github.com/katalvlaran/meshveil/socialgraph"
)

// findDiversePath enumerates up to maxDiversePaths distinct simple paths
// from src to dst bounded by maxLen nodes, scores each by the tracker's
// decayed diversity score, and picks one by roulette selection
// (spec.md §4.4).
func findDiversePath(g *socialgraph.Graph, src, dst, maxLen int, tracker *DiversityTracker, source *rng.Source) ([]int, error) {
	candidates := enumeratePaths(g, src, dst, maxLen, maxDiversePaths)
	if len(candidates) == 0 {
		return nil, ErrNoPath
	}

	scores := make([]float64, len(candidates))
	var total float64
	for i, p := range candidates {
		scores[i] = tracker.pathScore(p)
		total += scores[i]
	}
	if total <= 0 {
		return candidates[0], nil
	}

	r := source.Float64() * total
	var cum float64
	for i, s := range scores {
		cum += s
		if r <= cum {
			return candidates[i], nil
		}
	}
	return candidates[len(candidates)-1], nil
}

// enumeratePaths performs a bounded DFS collecting up to limit distinct
// simple paths from src to dst of at most maxLen nodes.
func enumeratePaths(g *socialgraph.Graph, src, dst, maxLen, limit int) [][]int {
	var results [][]int
	visited := map[int]bool{src: true}
	path := []int{src}

	var dfs func(cur int)
	dfs = func(cur int) {
		if len(results) >= limit {
			return
		}
		if cur == dst {
			cp := make([]int, len(path))
			copy(cp, path)
			results = append(results, cp)
			return
		}
		if len(path) >= maxLen {
			return
		}
		for _, nb := range g.Neighbors(cur) {
			if len(results) >= limit {
				return
			}
			if visited[nb] {
				continue
			}
			visited[nb] = true
			path = append(path, nb)
			dfs(nb)
			path = path[:len(path)-1]
			visited[nb] = false
		}
	}
	dfs(src)
	return results
}
