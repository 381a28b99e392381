package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/cpusim/sim"
	"github.com/inference-sim/cpusim/sim/workload"
)

var (
	// Engine parameters; override defaults.yaml and --config only when set
	quantum     int64 // Base time quantum for rr, feedback and aging
	levels      int   // Number of ready-queue levels for feedback and aging
	agingFactor int64 // Quanta a queued process may wait before aging promotes it

	// Inputs
	logLevel         string // Log verbosity level
	defaultsFilePath string // Path to a defaults.yaml replacing the built-in one
	configPath       string // Engine config YAML (quantum, levels, aging_factor)
	workloadPath     string // Workload YAML with processes or a generator
	csvPath          string // CSV process list: id,burst,arrival[,priority]
	generateCount    int    // Generate this many random processes
	seed             int64  // Seed for process generation

	// Outputs
	resultsPath string // JSON results file
	dbPath      string // SQLite run store
)

// flagSet is the part of *pflag.FlagSet the resolvers need.
type flagSet interface {
	Changed(name string) bool
}

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cpusim",
	Short: "Discrete-time simulator for CPU scheduling policies",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers the engine parameters: built-in defaults, then
// defaults.yaml, then --config, then explicitly set flags.
func resolveConfig(flags flagSet, defaults *Defaults) (sim.Config, error) {
	cfg := sim.DefaultConfig().Merge(defaults.Engine)
	cfg, err := sim.MergeConfigFile(cfg, configPath)
	if err != nil {
		return cfg, err
	}
	if flags.Changed("quantum") {
		cfg.Quantum = quantum
	}
	if flags.Changed("levels") {
		cfg.Levels = levels
	}
	if flags.Changed("aging-factor") {
		cfg.AgingFactor = agingFactor
	}
	return cfg, nil
}

// resolveSpecs picks the process source: --csv, then --workload, then
// --generate, then the defaults dataset. --seed overrides a workload's seed
// only when set explicitly.
func resolveSpecs(flags flagSet, defaults *Defaults) ([]sim.ProcessSpec, error) {
	switch {
	case csvPath != "" && workloadPath != "":
		return nil, fmt.Errorf("--csv and --workload are mutually exclusive")
	case csvPath != "":
		return workload.LoadCSV(csvPath)
	case workloadPath != "":
		spec, err := workload.LoadWorkloadSpec(workloadPath)
		if err != nil {
			return nil, err
		}
		if flags.Changed("seed") {
			spec.Seed = seed
		}
		return spec.Specs()
	case generateCount > 0:
		return workload.Generate(workload.DefaultGenerator(generateCount), seed)
	default:
		if len(defaults.Processes) == 0 {
			return nil, fmt.Errorf("no processes: pass --csv, --workload or --generate")
		}
		return defaults.Processes, nil
	}
}

// resolveInputs loads the defaults file and resolves both config and processes.
func resolveInputs(flags flagSet) ([]sim.ProcessSpec, sim.Config, error) {
	defaults, err := loadDefaults(defaultsFilePath)
	if err != nil {
		return nil, sim.Config{}, err
	}
	cfg, err := resolveConfig(flags, defaults)
	if err != nil {
		return nil, cfg, err
	}
	specs, err := resolveSpecs(flags, defaults)
	if err != nil {
		return nil, cfg, err
	}
	logrus.Infof("Loaded %d processes, engine config %+v", len(specs), cfg)
	return specs, cfg, nil
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&defaultsFilePath, "defaults", "", "Path to a defaults YAML replacing the built-in one")
	rootCmd.PersistentFlags().Int64Var(&quantum, "quantum", sim.DefaultQuantum, "Base time quantum for rr, feedback and aging")
	rootCmd.PersistentFlags().IntVar(&levels, "levels", sim.DefaultLevels, "Number of ready-queue levels for feedback and aging")
	rootCmd.PersistentFlags().Int64Var(&agingFactor, "aging-factor", sim.DefaultAgingFactor, "Quanta a process may wait before aging promotes it")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Engine config YAML (quantum, levels, aging_factor)")
	rootCmd.PersistentFlags().StringVar(&workloadPath, "workload", "", "Workload YAML with processes or a generate section")
	rootCmd.PersistentFlags().StringVar(&csvPath, "csv", "", "CSV process list (id,burst,arrival[,priority])")
	rootCmd.PersistentFlags().IntVar(&generateCount, "generate", 0, "Generate this many random processes")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Seed for process generation")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(serveCmd)
}
