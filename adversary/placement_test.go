package adversary_test

import (
	"testing"

	"github.com/katalvlaran/meshveil/adversary"
	"github.com/katalvlaran/meshveil/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectObserversRandomDistinctAndSized(t *testing.T) {
	g := buildGraph(t)
	source := rng.New(5)
	obs := adversary.SelectObservers(g, 6, adversary.PlacementRandom, source)
	require.Len(t, obs, 6)
	seen := make(map[int]bool)
	for _, id := range obs {
		assert.False(t, seen[id], "duplicate observer id %d", id)
		seen[id] = true
	}
}

func TestSelectObserversHighDegreePicksTopDegrees(t *testing.T) {
	g := buildGraph(t)
	obs := adversary.SelectObservers(g, 3, adversary.PlacementHighDegree, rng.New(1))
	require.Len(t, obs, 3)

	minSelected := g.Degree(obs[0])
	for _, id := range obs {
		if g.Degree(id) < minSelected {
			minSelected = g.Degree(id)
		}
	}
	for u := 0; u < g.N(); u++ {
		found := false
		for _, id := range obs {
			if id == u {
				found = true
			}
		}
		if !found {
			assert.LessOrEqual(t, g.Degree(u), minSelected+1)
		}
	}
}

func TestSelectObserversClusterConnected(t *testing.T) {
	g := buildGraph(t)
	obs := adversary.SelectObservers(g, 5, adversary.PlacementCluster, rng.New(2))
	require.Len(t, obs, 5)

	// the selected ids induce a connected subgraph
	inSet := make(map[int]bool, len(obs))
	for _, id := range obs {
		inSet[id] = true
	}
	reached := map[int]bool{obs[0]: true}
	queue := []int{obs[0]}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range g.Neighbors(u) {
			if inSet[v] && !reached[v] {
				reached[v] = true
				queue = append(queue, v)
			}
		}
	}
	assert.Len(t, reached, len(obs))
}

func TestSelectObserversClampsToN(t *testing.T) {
	g := buildGraph(t)
	obs := adversary.SelectObservers(g, g.N()+50, adversary.PlacementRandom, rng.New(3))
	assert.Len(t, obs, g.N())
}

func TestSelectObserversZeroReturnsEmpty(t *testing.T) {
	g := buildGraph(t)
	obs := adversary.SelectObservers(g, 0, adversary.PlacementRandom, rng.New(3))
	assert.Empty(t, obs)
}
