package cover_test

import (
	"testing"

	"github.com/katalvlaran/meshveil/cover"
	"github.com/katalvlaran/meshveil/rng"
	"github.com/katalvlaran/meshveil/socialgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultParams() cover.Params {
	return cover.Params{
		TargetMultiplier:     1.5,
		MinTarget:            1,
		MaxTarget:            20,
		WindowSize:           5,
		NoiseStddev:          0.5,
		ProbabilityThreshold: 0.9,
	}
}

func smallGraph(t *testing.T) *socialgraph.Graph {
	t.Helper()
	g, err := socialgraph.Build(6, socialgraph.DefaultParams())
	require.NoError(t, err)
	return g
}

func TestRecordRealMessageAccumulates(t *testing.T) {
	m := cover.NewManager(defaultParams())
	m.RecordRealMessage(1, 2, 0)
	m.RecordRealMessage(2, 1, 0)
	m.RecordRealMessage(1, 2, 1)
	// both directions collapse onto the same canonical link
	assert.NotPanics(t, func() { m.UpdateBaseline(5) })
}

func TestUpdateBaselineNoOpBeforeWindowFills(t *testing.T) {
	m := cover.NewManager(defaultParams())
	m.RecordRealMessage(1, 2, 0)
	m.UpdateBaseline(1) // window is 5, t=1 < 5
	g := smallGraph(t)
	src := rng.New(1)
	// baseline is still zero, so no deficit should be positive enough
	// to force a panic or invalid state
	assert.NotPanics(t, func() { m.Inject(1, g, src) })
}

func TestInjectDeterministic(t *testing.T) {
	g := smallGraph(t)

	run := func(seed int64) []cover.Dummy {
		m := cover.NewManager(defaultParams())
		for t := 0; t < 6; t++ {
			m.UpdateBaseline(t)
		}
		src := rng.New(seed)
		return m.Inject(10, g, src)
	}

	a := run(99)
	b := run(99)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i], b[i])
	}
}

func TestInjectRespectsMaxTarget(t *testing.T) {
	g := smallGraph(t)
	p := defaultParams()
	p.MaxTarget = 2
	p.ProbabilityThreshold = 1.0
	m := cover.NewManager(p)
	for t := 0; t < 6; t++ {
		m.UpdateBaseline(t)
	}
	src := rng.New(42)
	dummies := m.Inject(10, g, src)
	// with MaxTarget clamped low, injected volume per link should stay bounded
	counts := map[socialgraph.Pair]int{}
	for _, d := range dummies {
		counts[socialgraph.NewPair(d.From, d.To)]++
	}
	for _, c := range counts {
		assert.LessOrEqual(t, c, int(p.MaxTarget)+5)
	}
}
