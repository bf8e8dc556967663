package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/meshveil/adversary"
	"github.com/katalvlaran/meshveil/cover"
	"github.com/katalvlaran/meshveil/evaluator"
	"github.com/katalvlaran/meshveil/groundtruth"
	"github.com/katalvlaran/meshveil/orchestrator"
	"github.com/katalvlaran/meshveil/rng"
)

const (
	contactSampleLimit    = 100
	messageSampleEpochs   = 10
	messageSampleMaxPerEp = 5
)

// contactRecorder wraps an adversary.Engine so the driver can capture a
// bounded sample of the raw contact stream for the per-run result
// (spec.md §6) without adversary itself needing to know about sampling.
type contactRecorder struct {
	engine *adversary.Engine
	sample []contactLogEntry
}

func (r *contactRecorder) NoteSend(t, sender int) { r.engine.NoteSend(t, sender) }

func (r *contactRecorder) NoteContact(t, a, b, count int) {
	r.engine.NoteContact(t, a, b, count)
	if len(r.sample) < contactSampleLimit {
		r.sample = append(r.sample, contactLogEntry{Epoch: t, A: a, B: b, Count: count})
	}
}

func (r *contactRecorder) InferEpoch(t int) { r.engine.InferEpoch(t) }

// RunSweep drives every (N, Hmax, seed, obsCount, placement, poisonRate)
// combination in cfg, writing one per-run result JSON and, at the end,
// out/summary.json (spec.md §6).
//
// Per spec.md §7, a single experiment's failure is logged with its
// failing parameter tuple and does not abort the sweep.
func RunSweep(ctx context.Context, cfg SweepConfig, log zerolog.Logger) error {
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating out dir: %w", err)
	}

	var agg sweepAccumulator
	runIndex := 0

	for _, n := range cfg.N {
		for _, hmax := range cfg.Hmax {
			for _, seed := range cfg.Seeds {
				for _, obsCount := range cfg.ObsCounts {
					for _, placement := range cfg.Placements {
						for _, poisonRate := range cfg.PoisonRates {
							select {
							case <-ctx.Done():
								return ctx.Err()
							default:
							}

							p := runParams{
								N: n, Hmax: hmax, Seed: seed, ObsCount: obsCount,
								Placement: placement, PoisonRate: poisonRate,
								CoverEnabled: poisonRate > 0, HorizonHours: cfg.HorizonHours,
							}
							runIndex++
							log.Info().Int("run", runIndex).Interface("params", p).Msg("starting experiment")

							result, err := runExperiment(cfg, p)
							if err != nil {
								agg.failed++
								log.Error().Err(err).Interface("params", p).Msg("experiment failed, continuing sweep")
								continue
							}
							agg.record(result)

							if werr := writeRunResult(cfg.OutDir, runIndex, result); werr != nil {
								log.Error().Err(werr).Int("run", runIndex).Msg("failed to write result")
							}
						}
					}
				}
			}
		}
	}

	summary := agg.summary()
	log.Info().Interface("summary", summary).Msg("sweep complete")
	return writeSummary(cfg.OutDir, summary)
}

// runExperiment executes exactly one experiment end to end: ground-truth
// load-or-generate, the C2-C8 orchestrator run, the C9 adversary, and the
// C10 evaluator, then assembles the per-run result document.
func runExperiment(cfg SweepConfig, p runParams) (*runResult, error) {
	graphParams := cfg.graphParams(p.Seed)
	graph, gtRec, err := groundtruth.LoadOrGenerate(cfg.GroundTruthDir, p.N, graphParams)
	if err != nil {
		return nil, fmt.Errorf("ground truth: %w", err)
	}

	placementSource := rng.New(p.Seed)
	observed := adversary.SelectObservers(graph, p.ObsCount, adversary.Placement(p.Placement), placementSource)
	engine := adversary.New(graph, observed, p.Seed)
	recorder := &contactRecorder{engine: engine}

	orchParams := orchestrator.DefaultParams()
	orchParams.HorizonHours = p.HorizonHours
	orchParams.Hmax = p.Hmax
	orchParams.GraphParams = graphParams
	orchParams.CoverEnabled = p.CoverEnabled
	if p.CoverEnabled {
		orchParams.CoverParams = cover.Params{
			TargetMultiplier:     p.PoisonRate,
			MinTarget:            1,
			MaxTarget:            20,
			WindowSize:           5,
			NoiseStddev:          1.0,
			ProbabilityThreshold: 0.8,
		}
	}

	orch, err := orchestrator.New(p.N, orchParams, p.Seed, recorder)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	messages := orch.Run()

	sentEntries := make([]adversary.SentEntry, 0, len(messages))
	for _, m := range messages {
		sentEntries = append(sentEntries, adversary.SentEntry{T: m.T, Sender: m.Sender, Recipient: m.Recipient})
	}
	guesses, estimated, communities := engine.Results(sentEntries)

	eval := evaluator.Evaluate(messages, graph, guesses, estimated)

	return &runResult{
		Params: p,
		Results: runResults{
			Accuracy:       eval.Accuracy,
			CorrectGuesses: eval.CorrectGuesses,
			TotalGuesses:   eval.TotalGuesses,
			Conversation:   eval.ConversationStats,
			Routing:        eval.RoutingStats,
			CoverTraffic:   eval.CoverStats,
			GraphReconstruction: graphReconstruction{
				GraphMetrics:    eval.GraphMetrics,
				TierMetrics:     eval.TierMetrics,
				ConfusionMatrix: eval.ConfusionMatrix,
				CommunityLabels: distinctLabelCount(communities),
			},
		},
		// gtRec.Metadata carries the same N/seed/tierProb key as the
		// filename; the result references ground truth by file rather
		// than embedding its (potentially large) contents (spec.md §6).
		GroundTruth:      groundTruthRef{File: groundtruth.Filename(p.N, gtRec.Metadata.Seed, graphParams.PIntimate, graphParams.PFriend, graphParams.PAcquaintance)},
		ContactLogSample: recorder.sample,
		MessageSample:    buildMessageSample(messages),
	}, nil
}

func distinctLabelCount(communities map[int]int) int {
	labels := make(map[int]bool, len(communities))
	for _, l := range communities {
		labels[l] = true
	}
	return len(labels)
}

// buildMessageSample takes the first messageSampleEpochs epochs' worth of
// messages and, within each, the first messageSampleMaxPerEp entries
// (spec.md §6: "first 10 epochs × first 5 messages as a sample").
func buildMessageSample(messages []orchestrator.Message) [][]messageSample {
	byEpoch := make(map[int][]orchestrator.Message)
	var epochs []int
	for _, m := range messages {
		if _, ok := byEpoch[m.T]; !ok {
			epochs = append(epochs, m.T)
		}
		byEpoch[m.T] = append(byEpoch[m.T], m)
	}
	sort.Ints(epochs)

	limit := messageSampleEpochs
	if limit > len(epochs) {
		limit = len(epochs)
	}

	out := make([][]messageSample, 0, limit)
	for _, t := range epochs[:limit] {
		msgs := byEpoch[t]
		n := messageSampleMaxPerEp
		if n > len(msgs) {
			n = len(msgs)
		}
		row := make([]messageSample, n)
		for i := 0; i < n; i++ {
			row[i] = messageSample{
				ID: msgs[i].ID, T: msgs[i].T, Sender: msgs[i].Sender, Recipient: msgs[i].Recipient,
				Path: msgs[i].Path, Dummy: msgs[i].Dummy, IsReply: msgs[i].IsReply,
			}
		}
		out = append(out, row)
	}
	return out
}

// sweepAccumulator tracks running totals for out/summary.json
// (spec.md §6: "mean accuracy, mean dummy fraction, mean graph F1, mean
// replies per experiment").
type sweepAccumulator struct {
	count, failed                                          int
	sumAccuracy, sumDummyFraction, sumF1, sumRepliesPerRun float64
}

func (a *sweepAccumulator) record(r *runResult) {
	a.count++
	a.sumAccuracy += r.Results.Accuracy
	a.sumDummyFraction += r.Results.CoverTraffic.DummyFraction
	a.sumF1 += r.Results.GraphReconstruction.GraphMetrics.F1
	a.sumRepliesPerRun += float64(r.Results.Conversation.ReplyCount)
}

func (a *sweepAccumulator) summary() summaryResult {
	if a.count == 0 {
		return summaryResult{FailedCount: a.failed}
	}
	n := float64(a.count)
	return summaryResult{
		ExperimentCount:   a.count,
		FailedCount:       a.failed,
		MeanAccuracy:      a.sumAccuracy / n,
		MeanDummyFraction: a.sumDummyFraction / n,
		MeanGraphF1:       a.sumF1 / n,
		MeanRepliesPerRun: a.sumRepliesPerRun / n,
	}
}

func writeRunResult(outDir string, runIndex int, r *runResult) error {
	path := filepath.Join(outDir, fmt.Sprintf("run_%04d.json", runIndex))
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func writeSummary(outDir string, s summaryResult) error {
	path := filepath.Join(outDir, "summary.json")
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
