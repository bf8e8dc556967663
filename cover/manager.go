package cover

import (
	"math"

	"github.com/katalvlaran/meshveil/rng"
	"github.com/katalvlaran/meshveil/socialgraph"
	"gonum.org/v1/gonum/stat/distuv"
)

// Manager tracks per-link recent history and emits cover traffic toward
// an adaptive baseline (spec.md §4.6).
type Manager struct {
	params   Params
	links    map[socialgraph.Pair]*linkHistory
	baseline float64
}

// NewManager returns a Manager configured by params.
func NewManager(params Params) *Manager {
	return &Manager{
		params: params,
		links:  make(map[socialgraph.Pair]*linkHistory),
	}
}

func (m *Manager) history(u, v int) *linkHistory {
	p := socialgraph.NewPair(u, v)
	h, ok := m.links[p]
	if !ok {
		h = &linkHistory{}
		m.links[p] = h
	}
	return h
}

// RecordRealMessage records a real message traversing link (u,v) at
// epoch t (spec.md §4.6: "Real messages are also recorded on their
// originating link via recordRealMessage").
func (m *Manager) RecordRealMessage(u, v, t int) {
	h := m.history(u, v)
	h.entryAt(t).real++
	h.trim(t, m.params.WindowSize)
}

func (m *Manager) recordCoverMessage(u, v, t int) {
	h := m.history(u, v)
	h.entryAt(t).cover++
	h.trim(t, m.params.WindowSize)
}

// UpdateBaseline recomputes the adaptive baseline at epoch t: the average
// real-message count per active link over the last WindowSize epochs,
// scaled by TargetMultiplier and clamped to [MinTarget, MaxTarget]
// (spec.md §4.6). It is a no-op before the window has filled (t < W).
func (m *Manager) UpdateBaseline(t int) {
	if t < m.params.WindowSize {
		return
	}
	var sum float64
	active := 0
	for _, h := range m.links {
		count := h.sumSinceReal(t-m.params.WindowSize, t)
		if count > 0 {
			sum += float64(count)
			active++
		}
	}
	avg := 0.0
	if active > 0 {
		avg = sum / float64(active)
	}
	target := avg * m.params.TargetMultiplier
	m.baseline = clamp(target, m.params.MinTarget, m.params.MaxTarget)
}

// Inject emits cover traffic for every edge in g at epoch t
// (spec.md §4.6 steps 1-5), recording each emitted dummy on its link.
func (m *Manager) Inject(t int, g *socialgraph.Graph, source *rng.Source) []Dummy {
	var dummies []Dummy
	g.EachEdge(func(u, v int, _ socialgraph.Tier) {
		h := m.history(u, v)
		recent := h.sumSince(t-m.params.WindowSize, t)

		target := math.Floor(clamp(source.Gaussian(m.baseline, m.params.NoiseStddev), m.params.MinTarget, m.params.MaxTarget))
		deficit := target - float64(recent)
		if deficit <= 0 {
			return
		}

		amount := samplePoisson(deficit, source)
		for i := 0; i < amount; i++ {
			if source.Bool(m.params.ProbabilityThreshold) {
				dummies = append(dummies, Dummy{From: u, To: v, Epoch: t})
				m.recordCoverMessage(u, v, t)
			}
		}
	})
	return dummies
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// samplePoisson draws a Poisson(lambda) sample using gonum's distuv,
// seeded per-call from the shared deterministic stream so the draw stays
// reproducible under the orchestrator's seed (spec.md §4.6 step 4: Knuth
// for lambda<30, Gaussian approximation otherwise — both regimes are
// implemented internally by distuv.Poisson).
func samplePoisson(lambda float64, source *rng.Source) int {
	if lambda <= 0 {
		return 0
	}
	d := distuv.Poisson{Lambda: lambda, Src: singleDrawSource{source}}
	return int(d.Rand())
}

// singleDrawSource adapts *rng.Source to the rand.Source64 surface
// distuv needs, so Poisson draws come from the experiment's deterministic
// Lehmer stream rather than an independent global math/rand source.
type singleDrawSource struct{ s *rng.Source }

func (d singleDrawSource) Uint64() uint64 {
	return uint64(d.s.Float64() * (1 << 63))
}

// Seed is a no-op: the deterministic stream is already seeded via the
// shared *rng.Source and must not be reseeded independently.
func (d singleDrawSource) Seed(seed uint64) {}

func (h *linkHistory) sumSinceReal(from, to int) int {
	total := 0
	for _, e := range h.entries {
		if e.epoch >= from && e.epoch < to {
			total += e.real
		}
	}
	return total
}
