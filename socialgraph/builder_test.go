package socialgraph_test

import (
	"testing"

	"github.com/katalvlaran/meshveil/socialgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams(seed int64) socialgraph.Params {
	p := socialgraph.DefaultParams()
	p.PIntimate = 0.05
	p.PFriend = 0.15
	p.PAcquaintance = 0.3
	p.PBridge = 0.1
	p.Seed = seed
	return p
}

func TestBuildDeterminism(t *testing.T) {
	p := testParams(42)
	g1, err := socialgraph.Build(50, p)
	require.NoError(t, err)
	g2, err := socialgraph.Build(50, p)
	require.NoError(t, err)

	require.Equal(t, g1.EdgeCount(), g2.EdgeCount())
	for u := 0; u < 50; u++ {
		assert.Equal(t, g1.Neighbors(u), g2.Neighbors(u), "user %d neighbor mismatch", u)
	}
}

func TestSymmetry(t *testing.T) {
	p := testParams(7)
	g, err := socialgraph.Build(60, p)
	require.NoError(t, err)

	g.EachEdge(func(u, v int, tier socialgraph.Tier) {
		assert.True(t, g.HasEdge(u, v))
		assert.True(t, g.HasEdge(v, u))
		tu, ok1 := g.TierOf(u, v)
		tv, ok2 := g.TierOf(v, u)
		require.True(t, ok1)
		require.True(t, ok2)
		assert.Equal(t, tu, tv)
		assert.Equal(t, tier, tu)
	})
}

func TestTooFewUsers(t *testing.T) {
	p := testParams(1)
	_, err := socialgraph.Build(0, p)
	assert.ErrorIs(t, err, socialgraph.ErrTooFewUsers)
}

func TestInvalidTierProb(t *testing.T) {
	p := testParams(1)
	p.PIntimate = 1.5
	_, err := socialgraph.Build(10, p)
	assert.ErrorIs(t, err, socialgraph.ErrInvalidTierProb)
}

func TestSingleUserGraph(t *testing.T) {
	p := testParams(1)
	g, err := socialgraph.Build(1, p)
	require.NoError(t, err)
	assert.Equal(t, 0, g.EdgeCount())
}

func TestNewPairCanonical(t *testing.T) {
	assert.Equal(t, socialgraph.NewPair(3, 1), socialgraph.NewPair(1, 3))
	p := socialgraph.NewPair(5, 2)
	assert.Equal(t, 2, p.A)
	assert.Equal(t, 5, p.B)
}
