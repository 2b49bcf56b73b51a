// Package batch runs many independent careers concurrently and aggregates
// their outcomes. Every career owns its own trainee, supports, and random
// source, so runs share no mutable state.
package batch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/umacareer/internal/game/career"
	"github.com/cory-johannsen/umacareer/internal/game/dice"
	"github.com/cory-johannsen/umacareer/internal/game/stat"
)

// Factory builds the career for run i, rolling with src.
//
// Postcondition: Returns a fresh career sharing no state with any other run.
type Factory func(i int, src dice.Source) (*career.Career, error)

// Options configures one batch.
type Options struct {
	// Runs is the number of careers to play.
	Runs int
	// Workers bounds the careers played at once; 0 means Runs.
	Workers int
	// Seed makes the batch reproducible: run i rolls with seed Seed+i.
	// Zero selects the crypto source.
	Seed uint64
}

// Report aggregates the summaries of a batch.
type Report struct {
	Runs int
	// Mean holds the floored mean final value of each stat.
	Mean stat.Stats
	// Best and Worst are the runs with the highest and lowest final stat total;
	// ties go to the earlier run.
	Best  career.Summary
	Worst career.Summary
	// Summaries holds every run in run order.
	Summaries []career.Summary
}

// Runner plays careers from a Factory with a Policy.
type Runner struct {
	factory Factory
	policy  career.Policy
	logger  *zap.Logger
}

// NewRunner creates a Runner.
//
// Precondition: factory, policy, and logger must be non-nil.
func NewRunner(factory Factory, policy career.Policy, logger *zap.Logger) *Runner {
	if factory == nil || policy == nil || logger == nil {
		panic("batch.NewRunner: precondition violated: nil dependency")
	}
	return &Runner{factory: factory, policy: policy, logger: logger}
}

// Run plays opts.Runs careers to completion.
//
// Postcondition: Returns a Report covering every run, or the first error.
// Cancelling ctx stops runs that have not started.
func (r *Runner) Run(ctx context.Context, opts Options) (Report, error) {
	if opts.Runs < 1 {
		return Report{}, fmt.Errorf("runs must be >= 1, got %d", opts.Runs)
	}
	if opts.Workers < 0 {
		return Report{}, fmt.Errorf("workers must be >= 0, got %d", opts.Workers)
	}
	start := time.Now()

	summaries := make([]career.Summary, opts.Runs)
	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i := range opts.Runs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := r.play(i, opts.Seed)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			summaries[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	rep := aggregate(summaries)
	r.logger.Info("batch complete",
		zap.Int("runs", rep.Runs),
		zap.Int("workers", opts.Workers),
		zap.Int("best_total", rep.Best.FinalStats.Sum()),
		zap.Int("worst_total", rep.Worst.FinalStats.Sum()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return rep, nil
}

func (r *Runner) play(i int, seed uint64) (career.Summary, error) {
	src := dice.NewCryptoSource()
	if seed != 0 {
		src = dice.NewSeededSource(seed + uint64(i))
	}
	c, err := r.factory(i, src)
	if err != nil {
		return career.Summary{}, err
	}
	if _, err := career.Play(c, r.policy); err != nil {
		return career.Summary{}, err
	}
	return c.Summary(), nil
}

func aggregate(summaries []career.Summary) Report {
	rep := Report{Runs: len(summaries), Summaries: summaries}
	var totals stat.Stats
	for i, s := range summaries {
		totals = totals.Plus(s.FinalStats)
		if i == 0 || s.FinalStats.Sum() > rep.Best.FinalStats.Sum() {
			rep.Best = s
		}
		if i == 0 || s.FinalStats.Sum() < rep.Worst.FinalStats.Sum() {
			rep.Worst = s
		}
	}
	for _, k := range stat.All() {
		rep.Mean.Set(k, totals.Get(k)/len(summaries))
	}
	return rep
}
