package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/umacareer/internal/game/training"
)

var rateStep int

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Print the failure rate of every facility by energy",
	RunE:  runRates,
}

func init() {
	ratesCmd.Flags().IntVar(&rateStep, "step", 10, "energy step between rows")
}

func runRates(cmd *cobra.Command, _ []string) error {
	if rateStep <= 0 {
		return fmt.Errorf("step must be > 0, got %d", rateStep)
	}
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	defs, err := e.facilities()
	if err != nil {
		return err
	}
	if defs == nil {
		defs = training.DefaultFacilities()
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprint(w, "energy")
	for _, d := range defs {
		fmt.Fprintf(w, "\t%s", d.Stat)
	}
	fmt.Fprintln(w)
	for energy := e.cfg.Career.MaxEnergy; energy >= 0; energy -= rateStep {
		fmt.Fprintf(w, "%d", energy)
		for _, d := range defs {
			fmt.Fprintf(w, "\t%d%%", d.FailureRate(energy))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
