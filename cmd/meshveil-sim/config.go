package main

import "github.com/katalvlaran/meshveil/socialgraph"

// SweepConfig is the parameter grid the driver iterates (spec.md §6): for
// every combination of N × Hmax × seed × obsCount × placement ×
// poisonRate, one experiment is run, ground truth is loaded or generated,
// and one per-run result is written under OutDir.
type SweepConfig struct {
	N            []int
	Hmax         []int
	Seeds        []int64
	ObsCounts    []int
	Placements   []string
	PoisonRates  []float64
	HorizonHours int

	PIntimate, PFriend, PAcquaintance, PBridge float64

	OutDir         string
	GroundTruthDir string
}

// DefaultSweepConfig mirrors spec.md §6's documented sweep surface:
// N in {50,75,100,150,200,300,400}, Hmax in {1,3}, ten seeds, the three
// observer-placement strategies, and the three poison (cover target
// multiplier) rates that gate C7.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		N:              []int{50, 75, 100, 150, 200, 300, 400},
		Hmax:           []int{1, 3},
		Seeds:          defaultSeeds(10),
		ObsCounts:      []int{5, 10, 20},
		Placements:     []string{"random", "high-degree", "cluster"},
		PoisonRates:    []float64{0, 0.05, 0.1},
		HorizonHours:   200,
		PIntimate:      0.05,
		PFriend:        0.15,
		PAcquaintance:  0.30,
		PBridge:        0.10,
		OutDir:         "./out",
		GroundTruthDir: "./ground_truth",
	}
}

func defaultSeeds(n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = int64(i + 1)
	}
	return seeds
}

// graphParams builds the socialgraph.Params shared by every experiment in
// this sweep at the given seed; only the tier probabilities are sweep-wide,
// the seed varies per run.
func (c SweepConfig) graphParams(seed int64) socialgraph.Params {
	p := socialgraph.DefaultParams()
	p.PIntimate = c.PIntimate
	p.PFriend = c.PFriend
	p.PAcquaintance = c.PAcquaintance
	p.PBridge = c.PBridge
	p.Seed = seed
	return p
}
