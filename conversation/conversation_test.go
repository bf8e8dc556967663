package conversation_test

import (
	"testing"

	"github.com/katalvlaran/meshveil/conversation"
	"github.com/katalvlaran/meshveil/rng"
	"github.com/katalvlaran/meshveil/socialgraph"
	"github.com/stretchr/testify/assert"
)

func TestScheduleReplyDeterminism(t *testing.T) {
	a := rng.New(11)
	b := rng.New(11)
	o1, se1 := conversation.ScheduleReply(socialgraph.Intimate, 3, a)
	o2, se2 := conversation.ScheduleReply(socialgraph.Intimate, 3, b)
	assert.Equal(t, o1, o2)
	assert.Equal(t, se1, se2)
}

func TestScheduleReplyOutcomeDistribution(t *testing.T) {
	src := rng.New(5)
	counts := map[conversation.Outcome]int{}
	for i := 0; i < 5000; i++ {
		o, _ := conversation.ScheduleReply(socialgraph.Friend, 0, src)
		counts[o]++
	}
	assert.Greater(t, counts[conversation.OutcomeInstant], 0)
	assert.Greater(t, counts[conversation.OutcomeDelayed], 0)
	assert.Greater(t, counts[conversation.OutcomeNone], 0)
}

func TestThreadLifecycle(t *testing.T) {
	th := conversation.NewThread(1, 2, 0)
	src := rng.New(3)

	assert.True(t, th.ShouldContinue(0, src))
	th.RecordMessage(0)
	assert.Equal(t, 1, th.MessageCount)
	assert.True(t, th.IsActive)
}

func TestThreadExpiresAfterInactivity(t *testing.T) {
	th := conversation.NewThread(1, 2, 0)
	th.RecordMessage(0)
	src := rng.New(1)
	assert.False(t, th.ShouldContinue(20, src))
}

func TestThreadStopsAfterMaxLen(t *testing.T) {
	th := conversation.NewThread(1, 2, 0)
	for i := 0; i < 5; i++ {
		th.RecordMessage(i)
	}
	src := rng.New(1)
	assert.False(t, th.ShouldContinue(5, src))
}

func TestManagerGetOrCreateIsStable(t *testing.T) {
	m := conversation.NewManager()
	th1 := m.GetOrCreate(1, 2, 0)
	th2 := m.GetOrCreate(2, 1, 0)
	assert.Same(t, th1, th2)
	assert.Len(t, m.Threads(), 1)
}
