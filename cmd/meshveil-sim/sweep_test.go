package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tinyConfig(t *testing.T) SweepConfig {
	t.Helper()
	cfg := DefaultSweepConfig()
	cfg.N = []int{20}
	cfg.Hmax = []int{3}
	cfg.Seeds = []int64{1}
	cfg.ObsCounts = []int{5}
	cfg.Placements = []string{"random"}
	cfg.PoisonRates = []float64{0}
	cfg.HorizonHours = 12
	cfg.OutDir = t.TempDir()
	cfg.GroundTruthDir = t.TempDir()
	return cfg
}

func TestRunSweepWritesResultsAndSummary(t *testing.T) {
	cfg := tinyConfig(t)
	err := RunSweep(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	entries, err := os.ReadDir(cfg.OutDir)
	require.NoError(t, err)

	var sawRun, sawSummary bool
	for _, e := range entries {
		if e.Name() == "summary.json" {
			sawSummary = true
		} else {
			sawRun = true
		}
	}
	assert.True(t, sawRun, "expected at least one per-run result file")
	assert.True(t, sawSummary, "expected summary.json")

	data, err := os.ReadFile(filepath.Join(cfg.OutDir, "summary.json"))
	require.NoError(t, err)
	var summary summaryResult
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, 1, summary.ExperimentCount)
	assert.Equal(t, 0, summary.FailedCount)
}

func TestRunSweepWithCoverEnabled(t *testing.T) {
	cfg := tinyConfig(t)
	cfg.PoisonRates = []float64{0.3}
	err := RunSweep(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
}

func TestValidateConfigRejectsEmptyDimensions(t *testing.T) {
	cfg := DefaultSweepConfig()
	cfg.N = nil
	assert.Error(t, validateConfig(cfg))
}

func TestValidateConfigRejectsUnknownPlacement(t *testing.T) {
	cfg := DefaultSweepConfig()
	cfg.Placements = []string{"omniscient"}
	assert.Error(t, validateConfig(cfg))
}

func TestRunExperimentSamplesAreBounded(t *testing.T) {
	cfg := tinyConfig(t)
	p := runParams{N: 20, Hmax: 3, Seed: 1, ObsCount: 5, Placement: "random", HorizonHours: 12}
	result, err := runExperiment(cfg, p)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(result.ContactLogSample), contactSampleLimit)
	assert.LessOrEqual(t, len(result.MessageSample), messageSampleEpochs)
	for _, row := range result.MessageSample {
		assert.LessOrEqual(t, len(row), messageSampleMaxPerEp)
	}
}
