package conversation

import (
	"math"

	"github.com/katalvlaran/meshveil/rng"
)

const (
	maxThreadLen     = 5
	inactivityWindow = 10
	continueDecay    = 0.7
)

// Thread is the stateful conversation between an unordered pair
// (spec.md §3 Conversation Thread): created on first reply, alive while
// MessageCount < maxThreadLen and the pair has been active within the
// last inactivityWindow epochs.
type Thread struct {
	A, B         int
	MessageCount int
	LastActive   int
	IsActive     bool
}

// NewThread creates a thread for the unordered pair (a,b), first active
// at epoch t.
func NewThread(a, b, t int) *Thread {
	return &Thread{A: a, B: b, LastActive: t, IsActive: true}
}

// ShouldContinue decides whether a reply fires given the thread's current
// state at epoch t (spec.md §4.5): messageCount<5, t-lastActive<=10, and
// U < 0.7^messageCount.
func (th *Thread) ShouldContinue(t int, source *rng.Source) bool {
	if th.MessageCount >= maxThreadLen {
		return false
	}
	if t-th.LastActive > inactivityWindow {
		return false
	}
	threshold := math.Pow(continueDecay, float64(th.MessageCount))
	return source.Float64() < threshold
}

// RecordMessage advances the thread's state after a message is emitted
// through it at epoch t.
func (th *Thread) RecordMessage(t int) {
	th.MessageCount++
	th.LastActive = t
	th.IsActive = th.MessageCount < maxThreadLen
}
