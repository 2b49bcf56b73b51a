package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/umacareer/internal/batch"
	"github.com/cory-johannsen/umacareer/internal/game/career"
	"github.com/cory-johannsen/umacareer/internal/game/dice"
)

var (
	batchRuns    int
	batchWorkers int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Play many careers with an automatic policy and report the spread",
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchRuns, "runs", 100, "number of careers to play")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "careers played at once (0 = all)")
	batchCmd.Flags().IntVar(&traineeID, "trainee", 0, "trainee card id (0 = first record)")
	batchCmd.Flags().IntSliceVar(&supportIDs, "supports", nil, "support card ids to place")
	batchCmd.Flags().IntVar(&supportLevel, "support-level", 0, "support level (0 = training.support_level)")
	batchCmd.Flags().Uint64Var(&seed, "seed", 0, "base seed; run i uses seed+i (0 = crypto source)")
	batchCmd.Flags().StringVar(&policyName, "auto", "balanced",
		"automatic policy: "+strings.Join(career.PolicyNames(), ", "))
	batchCmd.Flags().IntVar(&maxRate, "max-failure-rate", career.DefaultMaxFailureRate, "highest failure rate the policy trains at")
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	policy, err := career.ParsePolicy(policyName, maxRate)
	if err != nil {
		return err
	}
	r, err := e.loadRoster(ctx)
	if err != nil {
		return err
	}
	runner := batch.NewRunner(func(_ int, src dice.Source) (*career.Career, error) {
		return e.build(r, src)
	}, policy, e.logger)

	rep, err := runner.Run(ctx, batch.Options{Runs: batchRuns, Workers: batchWorkers, Seed: seed})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Runs:  %d (%s policy)\n", rep.Runs, policyName)
	fmt.Fprintf(out, "Mean:  %s\n", formatStats(rep.Mean))
	fmt.Fprintf(out, "Best:  %s (total %d)\n", formatStats(rep.Best.FinalStats), rep.Best.FinalStats.Sum())
	fmt.Fprintf(out, "Worst: %s (total %d)\n", formatStats(rep.Worst.FinalStats), rep.Worst.FinalStats.Sum())
	return nil
}
