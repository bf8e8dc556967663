package orchestrator_test

import (
	"testing"

	"github.com/katalvlaran/meshveil/orchestrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingObserver captures calls in order, for asserting the strict
// noteSend(t,·) → noteContact(t,·) → inferEpoch(t) ordering
// (spec.md §5).
type recordingObserver struct {
	sends    []int
	contacts []int
	infers   []int
}

func (r *recordingObserver) NoteSend(t, sender int)         { r.sends = append(r.sends, t) }
func (r *recordingObserver) NoteContact(t, a, b, count int) { r.contacts = append(r.contacts, t) }
func (r *recordingObserver) InferEpoch(t int)               { r.infers = append(r.infers, t) }

func smallParams() orchestrator.Params {
	p := orchestrator.DefaultParams()
	p.HorizonHours = 10
	p.Hmax = 3
	return p
}

func TestRunProducesMessagesAndInvariants(t *testing.T) {
	obs := &recordingObserver{}
	o, err := orchestrator.New(40, smallParams(), 7, obs)
	require.NoError(t, err)

	msgs := o.Run()
	assert.Greater(t, len(msgs), 0)

	g := o.Graph()
	for _, m := range msgs {
		assert.Equal(t, m.Sender, m.Path[0])
		assert.Equal(t, m.Recipient, m.Path[len(m.Path)-1])
		assert.LessOrEqual(t, len(m.Path), smallParams().Hmax+1)
		for i := 0; i+1 < len(m.Path); i++ {
			assert.True(t, g.HasEdge(m.Path[i], m.Path[i+1]))
		}
	}

	// inferEpoch is called once for every epoch of the horizon, with or
	// without contacts
	assert.Equal(t, len(obs.infers), smallParams().HorizonHours)
}

func TestRunDeterministic(t *testing.T) {
	run := func() []orchestrator.Message {
		obs := &recordingObserver{}
		o, err := orchestrator.New(30, smallParams(), 55, obs)
		require.NoError(t, err)
		return o.Run()
	}
	a := run()
	b := run()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Sender, b[i].Sender)
		assert.Equal(t, a[i].Recipient, b[i].Recipient)
		assert.Equal(t, a[i].Dummy, b[i].Dummy)
	}
}

func TestIsolatedNodeNeverSends(t *testing.T) {
	// a single-user graph has no edges: the only user is always isolated.
	p := smallParams()
	obs := &recordingObserver{}
	o, err := orchestrator.New(1, p, 1, obs)
	require.NoError(t, err)
	msgs := o.Run()
	assert.Empty(t, msgs)
}

func TestCoverDisabledYieldsNoDummies(t *testing.T) {
	p := smallParams()
	p.CoverEnabled = false
	obs := &recordingObserver{}
	o, err := orchestrator.New(40, p, 3, obs)
	require.NoError(t, err)
	msgs := o.Run()
	for _, m := range msgs {
		assert.False(t, m.Dummy)
	}
}

// TestCoverToggleDoesNotShiftRealSends guards spec.md §9's "dual RNG
// streams" invariant: enabling cover traffic must not change a single
// real-send routing or reply decision, because cover draws come from
// their own stream rather than the shared orchestrator stream.
func TestCoverToggleDoesNotShiftRealSends(t *testing.T) {
	withoutCover := smallParams()
	withoutCover.CoverEnabled = false
	withCover := smallParams()
	withCover.CoverEnabled = true

	obsA := &recordingObserver{}
	oA, err := orchestrator.New(40, withoutCover, 11, obsA)
	require.NoError(t, err)
	msgsA := oA.Run()

	obsB := &recordingObserver{}
	oB, err := orchestrator.New(40, withCover, 11, obsB)
	require.NoError(t, err)
	msgsB := oB.Run()

	var realB []orchestrator.Message
	for _, m := range msgsB {
		if !m.Dummy {
			realB = append(realB, m)
		}
	}

	require.Equal(t, len(msgsA), len(realB))
	for i := range msgsA {
		assert.Equal(t, msgsA[i].Sender, realB[i].Sender, "message %d sender diverged", i)
		assert.Equal(t, msgsA[i].Recipient, realB[i].Recipient, "message %d recipient diverged", i)
		assert.Equal(t, msgsA[i].Path, realB[i].Path, "message %d path diverged", i)
		assert.Equal(t, msgsA[i].IsReply, realB[i].IsReply, "message %d reply-flag diverged", i)
	}
}
