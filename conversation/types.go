// Package conversation implements the reply scheduler and per-pair
// conversation thread state machine (spec component C6).
//
// No single lvlath package models stateful, TTL-bounded per-pair
// sessions; the shape here follows the pack's gossip/session
// state-machine idiom (peer-pair-keyed state with a decay window), kept
// in the teacher's sentinel-error and small-value-type conventions
// (socialgraph.Pair as the canonical map key).
package conversation

import "github.com/katalvlaran/meshveil/socialgraph"

// Outcome is the sampled result of a reply decision (spec.md §4.5).
type Outcome int

const (
	// OutcomeNone means no reply is scheduled.
	OutcomeNone Outcome = iota
	// OutcomeInstant replies at the same epoch as the triggering send.
	OutcomeInstant
	// OutcomeDelayed replies a few epochs later.
	OutcomeDelayed
	// OutcomeEventual replies much later.
	OutcomeEventual
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInstant:
		return "instant"
	case OutcomeDelayed:
		return "delayed"
	case OutcomeEventual:
		return "eventual"
	default:
		return "none"
	}
}

// ReplyEntry is one scheduled reply-queue entry for a user (spec.md §3
// User data model: "a mutable per-epoch reply queue"). From/To identify
// the pair; SubEpoch is when it fires.
type ReplyEntry struct {
	SubEpoch int
	From, To int
	Kind     Outcome
}

// tierMultiplier returns the reply-propensity multiplier for a tier
// (spec.md §4.5): intimate 1.5, friend 1.0, acquaintance 0.6.
func tierMultiplier(t socialgraph.Tier) float64 {
	switch t {
	case socialgraph.Intimate:
		return 1.5
	case socialgraph.Friend:
		return 1.0
	default:
		return 0.6
	}
}
