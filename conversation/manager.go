package conversation

import "github.com/katalvlaran/meshveil/socialgraph"

// Manager owns every Thread in a run, keyed by canonical pair.
type Manager struct {
	threads map[socialgraph.Pair]*Thread
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{threads: make(map[socialgraph.Pair]*Thread)}
}

// GetOrCreate returns the thread for the unordered pair (a,b), creating it
// first-active-at epoch t if it does not already exist.
func (m *Manager) GetOrCreate(a, b, t int) *Thread {
	p := socialgraph.NewPair(a, b)
	th, ok := m.threads[p]
	if !ok {
		th = NewThread(a, b, t)
		m.threads[p] = th
	}
	return th
}

// Threads returns every thread created so far, for evaluator statistics
// (spec.md §4.9 "thread count; mean messages per thread").
func (m *Manager) Threads() []*Thread {
	out := make([]*Thread, 0, len(m.threads))
	for _, th := range m.threads {
		out = append(out, th)
	}
	return out
}
