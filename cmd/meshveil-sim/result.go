package main

import (
	"github.com/katalvlaran/meshveil/evaluator"
)

// contactLogEntry is one raw adversary.NoteContact observation, captured
// verbatim for the per-run result sample (spec.md §6: "the first 100
// observer contact-log entries").
type contactLogEntry struct {
	Epoch int `json:"epoch"`
	A     int `json:"a"`
	B     int `json:"b"`
	Count int `json:"count"`
}

// messageSample is the serializable subset of orchestrator.Message used
// in the per-run result's message sample (spec.md §6: "first 10 epochs ×
// first 5 messages as a sample").
type messageSample struct {
	ID        string `json:"id"`
	T         int    `json:"t"`
	Sender    int    `json:"sender"`
	Recipient int    `json:"recipient"`
	Path      []int  `json:"path"`
	Dummy     bool   `json:"dummy"`
	IsReply   bool   `json:"isReply"`
}

// graphReconstruction bundles the adversary's graph-rebuild metrics
// (spec.md §4.9, §6).
type graphReconstruction struct {
	GraphMetrics    evaluator.GraphMetrics            `json:"graphMetrics"`
	TierMetrics     map[string]evaluator.GraphMetrics `json:"tierMetrics"`
	ConfusionMatrix map[string]map[string]int         `json:"confusionMatrix"`
	CommunityLabels int                               `json:"communityLabels"`
}

// runResults is the "results" object of the per-run result (spec.md §6):
// accuracy, conversation, routing, coverTraffic, graphReconstruction.
type runResults struct {
	Accuracy            float64                     `json:"accuracy"`
	CorrectGuesses      int                         `json:"correctGuesses"`
	TotalGuesses        int                         `json:"totalGuesses"`
	Conversation        evaluator.ConversationStats `json:"conversation"`
	Routing             evaluator.RoutingStats      `json:"routing"`
	CoverTraffic        evaluator.CoverStats        `json:"coverTraffic"`
	GraphReconstruction graphReconstruction         `json:"graphReconstruction"`
}

// runParams records every sweep dimension that produced this experiment.
type runParams struct {
	N            int     `json:"n"`
	Hmax         int     `json:"hmax"`
	Seed         int64   `json:"seed"`
	ObsCount     int     `json:"obsCount"`
	Placement    string  `json:"placement"`
	PoisonRate   float64 `json:"poisonRate"`
	CoverEnabled bool    `json:"coverEnabled"`
	HorizonHours int     `json:"horizonHours"`
}

// runResult is the full per-run result document (spec.md §6): params,
// results, a reference to the ground-truth record, and bounded samples
// of the raw contact log and message log.
type runResult struct {
	Params           runParams         `json:"params"`
	Results          runResults        `json:"results"`
	GroundTruth      groundTruthRef    `json:"groundTruth"`
	ContactLogSample []contactLogEntry `json:"contactLogSample"`
	MessageSample    [][]messageSample `json:"messageSample"`
}

// groundTruthRef points at the ground-truth record that backed this run,
// rather than duplicating its (potentially large) contents (spec.md §6:
// "groundTruth reference").
type groundTruthRef struct {
	File string `json:"file"`
}

// summaryResult is the sweep-wide aggregate written once to
// out/summary.json (spec.md §6: "Exit behavior").
type summaryResult struct {
	ExperimentCount   int     `json:"experimentCount"`
	FailedCount       int     `json:"failedCount"`
	MeanAccuracy      float64 `json:"meanAccuracy"`
	MeanDummyFraction float64 `json:"meanDummyFraction"`
	MeanGraphF1       float64 `json:"meanGraphF1"`
	MeanRepliesPerRun float64 `json:"meanRepliesPerRun"`
}
