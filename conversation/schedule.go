package conversation

import (
	"github.com/katalvlaran/meshveil/rng"
	"github.com/katalvlaran/meshveil/socialgraph"
)

const (
	instantBase  = 0.25
	delayedBase  = 0.60
	eventualBase = 0.10
	noneBase     = 0.05
)

// ScheduleReply samples a reply outcome for a send from sender to
// recipient at epoch t over an edge of the given tier, then converts the
// outcome into a target sub-epoch (spec.md §4.5).
//
// Returns (OutcomeNone, 0) when no reply is scheduled.
func ScheduleReply(tier socialgraph.Tier, t int, source *rng.Source) (Outcome, int) {
	m := tierMultiplier(tier)
	instant := instantBase * m
	delayed := delayedBase * m
	eventual := eventualBase * m
	total := instant + delayed + eventual + noneBase

	r := source.Float64() * total
	switch {
	case r < instant:
		return OutcomeInstant, toSubEpoch(t, source)
	case r < instant+delayed:
		epoch := t + 1 + source.Intn(5)
		return OutcomeDelayed, toSubEpoch(epoch, source)
	case r < instant+delayed+eventual:
		epoch := t + 5 + source.Intn(15)
		return OutcomeEventual, toSubEpoch(epoch, source)
	default:
		return OutcomeNone, 0
	}
}

// toSubEpoch converts an epoch into a concrete sub-epoch index
// (spec.md §4.5: "epoch·6 + ⌊U·6⌋").
func toSubEpoch(epoch int, source *rng.Source) int {
	return epoch*6 + source.Intn(6)
}
