package evaluator_test

import (
	"testing"

	"github.com/katalvlaran/meshveil/adversary"
	"github.com/katalvlaran/meshveil/evaluator"
	"github.com/katalvlaran/meshveil/orchestrator"
	"github.com/katalvlaran/meshveil/socialgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSmallGraph(t *testing.T) *socialgraph.Graph {
	t.Helper()
	p := socialgraph.DefaultParams()
	p.Seed = 11
	g, err := socialgraph.Build(10, p)
	require.NoError(t, err)
	return g
}

func TestAccuracyZeroWhenNoGuesses(t *testing.T) {
	g := buildSmallGraph(t)
	r := evaluator.Evaluate(nil, g, nil, nil)
	assert.Equal(t, 0.0, r.Accuracy)
	assert.Equal(t, 0, r.TotalGuesses)
}

func TestAccuracyCountsMajorityHits(t *testing.T) {
	g := buildSmallGraph(t)
	messages := []orchestrator.Message{
		{T: 0, Sender: 1, Recipient: 2, Path: []int{1, 2}},
		{T: 0, Sender: 1, Recipient: 2, Path: []int{1, 2}},
		{T: 0, Sender: 1, Recipient: 3, Path: []int{1, 3}},
	}
	guesses := []adversary.Guess{{T: 0, Sender: 1, Recipient: 2}}
	r := evaluator.Evaluate(messages, g, guesses, nil)
	assert.Equal(t, 1.0, r.Accuracy)
	assert.Equal(t, 1, r.CorrectGuesses)
}

func TestGraphMetricsPerfectMatch(t *testing.T) {
	g := buildSmallGraph(t)
	var estimated []adversary.EstimatedEdge
	g.EachEdge(func(u, v int, tier socialgraph.Tier) {
		est := adversary.TierIntimate
		switch tier {
		case socialgraph.Friend:
			est = adversary.TierFriend
		case socialgraph.Acquaintance:
			est = adversary.TierAcquaintance
		}
		estimated = append(estimated, adversary.EstimatedEdge{A: u, B: v, Tier: est, Confidence: 1})
	})

	r := evaluator.Evaluate(nil, g, nil, estimated)
	assert.InDelta(t, 1.0, r.GraphMetrics.Precision, 1e-9)
	assert.InDelta(t, 1.0, r.GraphMetrics.Recall, 1e-9)
	assert.InDelta(t, 1.0, r.GraphMetrics.F1, 1e-9)
}

func TestCoverStatsDummyFraction(t *testing.T) {
	messages := []orchestrator.Message{
		{Sender: 1, Dummy: true, Path: []int{1, 2}},
		{Sender: 2, Dummy: true, Path: []int{2, 3}},
		{Sender: 1, Dummy: false, Path: []int{1, 2}},
	}
	r := evaluator.Evaluate(messages, buildSmallGraph(t), nil, nil)
	assert.InDelta(t, 2.0/3.0, r.CoverStats.DummyFraction, 1e-9)
	assert.Greater(t, r.CoverStats.SenderEntropy, 0.0)
}

func TestRoutingStatsAverages(t *testing.T) {
	messages := []orchestrator.Message{
		{Path: []int{1, 2}},
		{Path: []int{1, 2, 3}},
		{Path: []int{1, 4, 5, 6}},
	}
	r := evaluator.Evaluate(messages, buildSmallGraph(t), nil, nil)
	assert.InDelta(t, (2.0+3.0+4.0)/3.0, r.RoutingStats.AveragePathLength, 1e-9)
	assert.InDelta(t, 2.0/3.0, r.RoutingStats.ShortUsageRate, 1e-9)
}

func TestConversationStatsCountsReplies(t *testing.T) {
	messages := []orchestrator.Message{
		{T: 0, Sender: 1, Recipient: 2, Path: []int{1, 2}},
		{T: 1, Sender: 2, Recipient: 1, Path: []int{2, 1}, IsReply: true},
	}
	r := evaluator.Evaluate(messages, buildSmallGraph(t), nil, nil)
	assert.Equal(t, 1, r.ConversationStats.ReplyCount)
	assert.Equal(t, 1, r.ConversationStats.ThreadCount)
	assert.InDelta(t, 1.0, r.ConversationStats.MeanReplyDelay, 1e-9)
}
