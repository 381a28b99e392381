package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/cpusim/sim"
)

// compareCmd runs every policy on the same processes
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run all scheduling policies on the same processes",
	Run: func(cmd *cobra.Command, args []string) {
		specs, cfg, err := resolveInputs(cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := runCompare(os.Stdout, specs, cfg); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// runCompare runs all policies, each on fresh records, and prints one row per policy.
func runCompare(w io.Writer, specs []sim.ProcessSpec, cfg sim.Config) error {
	results, err := sim.RunAll(specs, cfg)
	if err != nil {
		return err
	}
	summaries := make([]*sim.Summary, len(results))
	outputs := make([]sim.RunOutput, len(results))
	for i, res := range results {
		if summaries[i], err = sim.SummarizeResult(res); err != nil {
			return err
		}
		outputs[i] = sim.NewRunOutput(res, summaries[i])
	}

	_, _ = fmt.Fprintf(w, "%d processes, quantum %d, %d levels, aging factor %d\n",
		len(specs), cfg.Quantum, cfg.Levels, cfg.AgingFactor)
	sim.PrintComparison(w, summaries)

	if resultsPath != "" {
		if err := sim.SaveResults(resultsPath, outputs); err != nil {
			return err
		}
	}
	return storeRuns(w, results, summaries)
}

func init() {
	compareCmd.Flags().StringVar(&resultsPath, "results", "", "Write every policy's results to this JSON file")
	compareCmd.Flags().StringVar(&dbPath, "db", "", "Store every run in this SQLite database")
}
