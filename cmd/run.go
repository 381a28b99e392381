package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/cpusim/sim"
	"github.com/inference-sim/cpusim/sim/store"
)

var (
	policyName string // Scheduling policy for `run`
	showGantt  bool   // Print the Gantt chart after the table
)

// runCmd schedules the processes with one policy
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one scheduling policy",
	Run: func(cmd *cobra.Command, args []string) {
		if !sim.IsValidPolicy(policyName) {
			logrus.Fatalf("Unknown policy %q. Valid policies: %s", policyName, strings.Join(sim.PolicyNames(), ", "))
		}
		specs, cfg, err := resolveInputs(cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := cfg.Validate(policyName); err != nil {
			logrus.Fatalf("Invalid engine config: %v", err)
		}
		if err := runPolicy(os.Stdout, specs, policyName, cfg); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// runPolicy schedules specs with one policy and writes the report to w,
// plus the optional JSON results file and run store record.
func runPolicy(w io.Writer, specs []sim.ProcessSpec, policy string, cfg sim.Config) error {
	res, err := sim.Run(specs, policy, cfg)
	if err != nil {
		return err
	}
	summary, err := sim.SummarizeResult(res)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "%s (%s)\n", sim.PolicyDescription(policy), describeConfig(policy, cfg))
	sim.PrintProcessTable(w, res, summary)
	if showGantt {
		sim.PrintGantt(w, res.Trace)
	}
	summary.Print(w)

	if resultsPath != "" {
		if err := sim.SaveResults(resultsPath, []sim.RunOutput{sim.NewRunOutput(res, summary)}); err != nil {
			return err
		}
	}
	return storeRuns(w, []*sim.Result{res}, []*sim.Summary{summary})
}

// storeRuns writes the runs to --db when set and prints their IDs.
func storeRuns(w io.Writer, results []*sim.Result, summaries []*sim.Summary) error {
	if dbPath == "" {
		return nil
	}
	runs, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = runs.Close() }()
	for i, res := range results {
		id, err := runs.SaveRun(res, summaries[i])
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "Stored %s run as %s\n", res.Policy, id)
	}
	return nil
}

// describeConfig lists the engine parameters the policy uses.
func describeConfig(policy string, cfg sim.Config) string {
	switch policy {
	case sim.PolicyRR:
		return fmt.Sprintf("quantum %d", cfg.Quantum)
	case sim.PolicyFeedback:
		return fmt.Sprintf("quantum %d, %d levels", cfg.Quantum, cfg.Levels)
	case sim.PolicyAging:
		return fmt.Sprintf("quantum %d, %d levels, aging factor %d", cfg.Quantum, cfg.Levels, cfg.AgingFactor)
	case sim.PolicySRT:
		return "preemptive"
	default:
		return "non-preemptive"
	}
}

func init() {
	runCmd.Flags().StringVar(&policyName, "policy", sim.PolicyFCFS, "Scheduling policy: "+strings.Join(sim.PolicyNames(), ", "))
	runCmd.Flags().BoolVar(&showGantt, "gantt", false, "Print the Gantt chart")
	runCmd.Flags().StringVar(&resultsPath, "results", "", "Write per-process results to this JSON file")
	runCmd.Flags().StringVar(&dbPath, "db", "", "Store the run in this SQLite database")
}
