package groundtruth_test

import (
	"os"
	"testing"

	"github.com/katalvlaran/meshveil/groundtruth"
	"github.com/katalvlaran/meshveil/socialgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() socialgraph.Params {
	p := socialgraph.DefaultParams()
	p.PIntimate = 0.1
	p.PFriend = 0.2
	p.PAcquaintance = 0.3
	p.Seed = 7
	return p
}

func TestLoadOrGenerateWritesFileOnFirstCall(t *testing.T) {
	dir := t.TempDir()
	params := testParams()

	graph, rec, err := groundtruth.LoadOrGenerate(dir, 12, params)
	require.NoError(t, err)
	require.NotNil(t, graph)
	assert.Equal(t, 12, rec.Metadata.N)
	assert.Equal(t, int64(7), rec.Metadata.Seed)

	path := dir + string(os.PathSeparator) + groundtruth.Filename(12, 7, 0.1, 0.2, 0.3)
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestLoadOrGenerateSecondCallReadsIdenticalGraph(t *testing.T) {
	dir := t.TempDir()
	params := testParams()

	first, _, err := groundtruth.LoadOrGenerate(dir, 15, params)
	require.NoError(t, err)

	second, _, err := groundtruth.LoadOrGenerate(dir, 15, params)
	require.NoError(t, err)

	assert.Equal(t, first.N(), second.N())
	first.EachEdge(func(u, v int, tier socialgraph.Tier) {
		got, ok := second.TierOf(u, v)
		assert.True(t, ok)
		assert.Equal(t, tier, got)
	})
	assert.Equal(t, first.EdgeCount(), second.EdgeCount())
}

func TestFilenameReplacesDotsWithUnderscores(t *testing.T) {
	name := groundtruth.Filename(50, 3, 0.15, 0.3, 0.45)
	assert.Equal(t, "graph_N50_seed3_0_15-0_3-0_45.json", name)
}

func TestStatisticsReportConsistentTotals(t *testing.T) {
	dir := t.TempDir()
	params := testParams()

	graph, rec, err := groundtruth.LoadOrGenerate(dir, 20, params)
	require.NoError(t, err)

	assert.Equal(t, graph.N(), rec.Statistics.TotalNodes)
	assert.Equal(t, graph.EdgeCount(), rec.Statistics.TotalEdges)
	assert.GreaterOrEqual(t, rec.Statistics.Components, 1)
}
