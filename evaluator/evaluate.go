package evaluator

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/meshveil/adversary"
	"github.com/katalvlaran/meshveil/orchestrator"
	"github.com/katalvlaran/meshveil/socialgraph"
)

// Evaluate compares the true social graph and message log against the
// adversary's guesses and reconstructed graph (spec.md §4.9). messages
// must be the full sent log for one experiment, in epoch order.
func Evaluate(messages []orchestrator.Message, graph *socialgraph.Graph, guesses []adversary.Guess, estimated []adversary.EstimatedEdge) Result {
	return Result{
		Accuracy:          accuracy(messages, guesses),
		CorrectGuesses:    countCorrect(messages, guesses),
		TotalGuesses:      len(guesses),
		GraphMetrics:      graphMetrics(graph, estimated),
		TierMetrics:       tierMetrics(graph, estimated),
		ConfusionMatrix:   confusionMatrix(graph, estimated),
		CoverStats:        coverStats(messages),
		RoutingStats:      routingStats(messages),
		ConversationStats: conversationStats(messages),
	}
}

// majorityRecipients finds, for every (t, sender) pair, the most common
// recipient among real sends (spec.md §4.9: "the majority true
// recipient for (t,s)").
func majorityRecipients(messages []orchestrator.Message) map[[2]int]int {
	counts := make(map[[2]int]map[int]int) // (t,s) -> recipient -> count
	for _, m := range messages {
		if m.Dummy {
			continue
		}
		key := [2]int{m.T, m.Sender}
		if counts[key] == nil {
			counts[key] = make(map[int]int)
		}
		counts[key][m.Recipient]++
	}

	out := make(map[[2]int]int, len(counts))
	for key, byRecipient := range counts {
		recipients := make([]int, 0, len(byRecipient))
		for r := range byRecipient {
			recipients = append(recipients, r)
		}
		sort.Ints(recipients) // deterministic tie-break: lowest id wins
		best, bestCount := recipients[0], -1
		for _, r := range recipients {
			if byRecipient[r] > bestCount {
				best, bestCount = r, byRecipient[r]
			}
		}
		out[key] = best
	}
	return out
}

func countCorrect(messages []orchestrator.Message, guesses []adversary.Guess) int {
	majority := majorityRecipients(messages)
	correct := 0
	for _, g := range guesses {
		if want, ok := majority[[2]int{g.T, g.Sender}]; ok && want == g.Recipient {
			correct++
		}
	}
	return correct
}

func accuracy(messages []orchestrator.Message, guesses []adversary.Guess) float64 {
	if len(guesses) == 0 {
		return 0
	}
	return float64(countCorrect(messages, guesses)) / float64(len(guesses))
}

func truePairs(graph *socialgraph.Graph) map[socialgraph.Pair]socialgraph.Tier {
	out := make(map[socialgraph.Pair]socialgraph.Tier)
	graph.EachEdge(func(u, v int, tier socialgraph.Tier) {
		out[socialgraph.NewPair(u, v)] = tier
	})
	return out
}

func estimatedPairs(estimated []adversary.EstimatedEdge) map[socialgraph.Pair]adversary.EstimatedTier {
	out := make(map[socialgraph.Pair]adversary.EstimatedTier, len(estimated))
	for _, e := range estimated {
		out[socialgraph.NewPair(e.A, e.B)] = e.Tier
	}
	return out
}

func graphMetrics(graph *socialgraph.Graph, estimated []adversary.EstimatedEdge) GraphMetrics {
	truth := truePairs(graph)
	est := estimatedPairs(estimated)

	hits := 0
	for pair := range est {
		if _, ok := truth[pair]; ok {
			hits++
		}
	}
	return prf1(hits, len(est), len(truth))
}

func prf1(hits, estimatedTotal, trueTotal int) GraphMetrics {
	var precision, recall float64
	if estimatedTotal > 0 {
		precision = float64(hits) / float64(estimatedTotal)
	}
	if trueTotal > 0 {
		recall = float64(hits) / float64(trueTotal)
	}
	var f1 float64
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	return GraphMetrics{Precision: precision, Recall: recall, F1: f1}
}

var tierNames = []string{"intimate", "friend", "acquaintance"}

func tierMetrics(graph *socialgraph.Graph, estimated []adversary.EstimatedEdge) map[string]GraphMetrics {
	truth := truePairs(graph)
	est := estimatedPairs(estimated)

	out := make(map[string]GraphMetrics, len(tierNames))
	for _, name := range tierNames {
		trueCount, estCount, hits := 0, 0, 0
		for pair, tier := range truth {
			if tier.String() != name {
				continue
			}
			trueCount++
			if est[pair].String() == name {
				hits++
			}
		}
		for _, tier := range est {
			if tier.String() == name {
				estCount++
			}
		}
		out[name] = prf1(hits, estCount, trueCount)
	}
	return out
}

// confusionMatrix cross-tabulates true tier (plus a "none" row for
// estimated edges that are not in the true graph) against estimated tier
// (plus "missing" for edges that exist but were never included in the
// estimated graph).
func confusionMatrix(graph *socialgraph.Graph, estimated []adversary.EstimatedEdge) map[string]map[string]int {
	truth := truePairs(graph)
	est := estimatedPairs(estimated)

	matrix := make(map[string]map[string]int)
	row := func(k string) map[string]int {
		if matrix[k] == nil {
			matrix[k] = make(map[string]int)
		}
		return matrix[k]
	}

	for pair, tier := range truth {
		estTier, ok := est[pair]
		col := "missing"
		if ok {
			col = estTier.String()
		}
		row(tier.String())[col]++
	}
	for pair, estTier := range est {
		if _, ok := truth[pair]; !ok {
			row("none")[estTier.String()]++
		}
	}
	return matrix
}

func coverStats(messages []orchestrator.Message) CoverStats {
	total := len(messages)
	if total == 0 {
		return CoverStats{}
	}
	dummyBySender := make(map[int]int)
	dummyCount := 0
	for _, m := range messages {
		if m.Dummy {
			dummyCount++
			dummyBySender[m.Sender]++
		}
	}

	entropy := 0.0
	if dummyCount > 0 {
		for _, c := range dummyBySender {
			p := float64(c) / float64(dummyCount)
			entropy -= p * math.Log2(p)
		}
	}

	return CoverStats{
		DummyFraction: float64(dummyCount) / float64(total),
		SenderEntropy: entropy,
	}
}

func routingStats(messages []orchestrator.Message) RoutingStats {
	if len(messages) == 0 {
		return RoutingStats{}
	}
	totalLen := 0
	short := 0
	unique := make(map[string]bool)
	for _, m := range messages {
		totalLen += len(m.Path)
		if len(m.Path) <= 3 {
			short++
		}
		unique[pathKey(m.Path)] = true
	}
	n := float64(len(messages))
	return RoutingStats{
		AveragePathLength: float64(totalLen) / n,
		Diversity:         float64(len(unique)) / n,
		ShortUsageRate:    float64(short) / n,
	}
}

func pathKey(path []int) string {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// conversationStats reconstructs thread behavior purely from the
// message log (spec.md §3: a thread is keyed by an unordered pair).
// A pair becomes a "thread" once it carries at least one reply message.
func conversationStats(messages []orchestrator.Message) ConversationStats {
	byPair := make(map[socialgraph.Pair][]orchestrator.Message)
	for _, m := range messages {
		pair := socialgraph.NewPair(m.Sender, m.Recipient)
		byPair[pair] = append(byPair[pair], m)
	}

	replyCount := 0
	var totalDelay, delaySamples float64
	threadCount := 0
	var threadMessages int

	for _, msgs := range byPair {
		sort.Slice(msgs, func(i, j int) bool { return msgs[i].T < msgs[j].T })

		hasReply := false
		for i, m := range msgs {
			if !m.IsReply {
				continue
			}
			hasReply = true
			replyCount++
			if i > 0 {
				totalDelay += float64(m.T - msgs[i-1].T)
				delaySamples++
			}
		}
		if hasReply {
			threadCount++
			threadMessages += len(msgs)
		}
	}

	meanDelay := 0.0
	if delaySamples > 0 {
		meanDelay = totalDelay / delaySamples
	}
	meanMessagesPerThread := 0.0
	if threadCount > 0 {
		meanMessagesPerThread = float64(threadMessages) / float64(threadCount)
	}

	return ConversationStats{
		ReplyCount:            replyCount,
		MeanReplyDelay:        meanDelay,
		ThreadCount:           threadCount,
		MeanMessagesPerThread: meanMessagesPerThread,
	}
}
