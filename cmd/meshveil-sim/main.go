// Command meshveil-sim drives the parameter sweep described in spec.md
// §6: it is deliberately thin I/O over the simulation core (rng,
// socialgraph, temporal, routing, conversation, cover, orchestrator,
// adversary, evaluator) — every piece of actual simulation logic lives
// in those packages, not here.
//
// Grounded in jhkimqd-chaos-utils's cobra-based CLI shape and its
// zerolog structured logging, the one manifest in the corpus that uses
// both directly.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var logger zerolog.Logger

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "meshveil-sim:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := DefaultSweepConfig()
	var verbose bool

	cmd := &cobra.Command{
		Use:   "meshveil-sim",
		Short: "Run a metadata-privacy simulation sweep over the mesh messaging protocol",
		Long: `meshveil-sim runs the C1-C10 simulation core (spec.md) across a grid of
N, Hmax, seed, observer count, observer placement, and cover-traffic
poison rate, writing one JSON result per experiment plus an
aggregate out/summary.json.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, NoColor: true}).
				Level(level).
				With().Timestamp().Logger()

			if err := validateConfig(cfg); err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
			return RunSweep(cmd.Context(), cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.IntSliceVar(&cfg.N, "n", cfg.N, "community sizes to sweep")
	flags.IntSliceVar(&cfg.Hmax, "hmax", cfg.Hmax, "max hop counts to sweep")
	flags.Int64SliceVar(&cfg.Seeds, "seeds", cfg.Seeds, "RNG seeds to sweep")
	flags.IntSliceVar(&cfg.ObsCounts, "obs-counts", cfg.ObsCounts, "observer counts to sweep")
	flags.StringSliceVar(&cfg.Placements, "placements", cfg.Placements, "observer placement strategies: random, high-degree, cluster")
	flags.Float64SliceVar(&cfg.PoisonRates, "poison-rates", cfg.PoisonRates, "cover-traffic target multipliers; 0 disables C7 for that run")
	flags.IntVar(&cfg.HorizonHours, "horizon-hours", cfg.HorizonHours, "simulated epochs (hours) per experiment")
	flags.Float64Var(&cfg.PIntimate, "p-intimate", cfg.PIntimate, "intimate-tier degree fraction")
	flags.Float64Var(&cfg.PFriend, "p-friend", cfg.PFriend, "friend-tier degree fraction")
	flags.Float64Var(&cfg.PAcquaintance, "p-acquaintance", cfg.PAcquaintance, "acquaintance-tier degree fraction")
	flags.Float64Var(&cfg.PBridge, "p-bridge", cfg.PBridge, "per-user bridge-edge probability")
	flags.StringVar(&cfg.OutDir, "out", cfg.OutDir, "per-run result and summary output directory")
	flags.StringVar(&cfg.GroundTruthDir, "ground-truth", cfg.GroundTruthDir, "ground-truth graph cache directory")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

// validateConfig surfaces missing/invalid driver parameters immediately
// (spec.md §7: "Configuration errors ... surfaced immediately with a
// non-zero exit and a usage message").
func validateConfig(cfg SweepConfig) error {
	if len(cfg.N) == 0 {
		return fmt.Errorf("--n must list at least one community size")
	}
	if len(cfg.Hmax) == 0 {
		return fmt.Errorf("--hmax must list at least one hop budget")
	}
	if len(cfg.Seeds) == 0 {
		return fmt.Errorf("--seeds must list at least one seed")
	}
	if len(cfg.ObsCounts) == 0 {
		return fmt.Errorf("--obs-counts must list at least one observer count")
	}
	if len(cfg.Placements) == 0 {
		return fmt.Errorf("--placements must list at least one strategy")
	}
	for _, p := range cfg.Placements {
		if !validPlacement(p) {
			return fmt.Errorf("unknown placement %q: want random, high-degree, or cluster", p)
		}
	}
	if len(cfg.PoisonRates) == 0 {
		return fmt.Errorf("--poison-rates must list at least one rate")
	}
	if cfg.HorizonHours <= 0 {
		return fmt.Errorf("--horizon-hours must be positive")
	}
	if cfg.OutDir == "" || cfg.GroundTruthDir == "" {
		return fmt.Errorf("--out and --ground-truth must be non-empty paths")
	}
	return nil
}

func validPlacement(p string) bool {
	switch p {
	case "random", "high-degree", "cluster":
		return true
	default:
		return false
	}
}
