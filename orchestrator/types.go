// Package orchestrator drives the per-sub-epoch simulation loop (spec
// component C8): it owns the users, the social graph, the sent log, and
// the routing/conversation/cover managers, and enforces the strict
// replies → new-sends → cover → materialization → adversary-notify
// ordering for every epoch.
//
// Grounded in divan-simulation's naivep2p.Simulator and
// TheEntropyCollective-noisefs's NetworkSimulator (both in
// other_examples): an explicit-phase, single owner-of-state loop with no
// back-pointers from per-node state into the simulator.
package orchestrator

import "github.com/katalvlaran/meshveil/conversation"

// Message is one logged send (spec.md §3 Message Record). Immutable once
// appended to the sent log.
type Message struct {
	ID        string
	T         int
	Sender    int
	Recipient int
	Path      []int
	HopTimes  []int
	Dummy     bool
	IsReply   bool
}

// User holds the mutable per-user simulation state (spec.md §3 User):
// a reply queue and a last-contact map, both owned solely by the
// Orchestrator.
type User struct {
	ID          int
	ReplyQueue  []conversation.ReplyEntry
	LastContact map[int]int
}

func newUser(id int) *User {
	return &User{ID: id, LastContact: make(map[int]int)}
}

// AdversaryObserver is the read-only notification surface the
// orchestrator drives in strict epoch order (spec.md §4.7, §5): for any
// epoch t, every NoteSend(t,·) call precedes every NoteContact(t,·),
// which precedes InferEpoch(t). The orchestrator never reads adversary
// state back — this keeps ownership one-directional (spec.md §9: "no
// cycles in object ownership").
type AdversaryObserver interface {
	NoteSend(t, sender int)
	NoteContact(t, a, b, count int)
	InferEpoch(t int)
}
