package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/JoelDJ2002/plantbatchscheduler/sim"
)

var (
	// CLI flags
	configPath string  // Plant configuration YAML path ("" = built-in demo plant)
	algorithm  string  // Ordering policy for the run command (fifo, edd, cr)
	outputPath string  // Results JSON path for the compare command
	logLevel   string  // Log verbosity level
	horizon    float64 // Override for simulation_time_days (0 = from config)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "plantsim",
	Short: "Discrete-event simulator for batch plant production scheduling",
}

// loadPlant builds the validated plant from the --config flag, falling back
// to the built-in demo plant, with the optional --horizon-days override.
func loadPlant() (*sim.Plant, error) {
	cfg := sim.DefaultPlantConfig()
	if configPath != "" {
		loaded, err := sim.LoadPlantConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if horizon > 0 {
		cfg.SimulationTimeDays = horizon
	}
	return cfg.Build()
}

// runCmd simulates a single scheduling heuristic and prints its report.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation with one scheduling heuristic",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !sim.ValidPolicies[algorithm] {
			logrus.Fatalf("Unknown algorithm %q (valid: fifo, edd, cr)", algorithm)
		}

		plant, err := loadPlant()
		if err != nil {
			logrus.Fatalf("Rejected configuration: %v", err)
		}

		policy := sim.NewOrderingPolicy(algorithm)
		logrus.Infof("Starting simulation: algorithm=%s, horizon=%.0fh, %d orders, %s kg total demand",
			policy.Name(), plant.Horizon(), len(plant.Orders), plant.TotalDemand())

		metrics := sim.Simulate(plant, policy)

		fmt.Printf("=== %s ===\n", policy.Name())
		metrics.Print(len(plant.Orders))
	},
}

// compareCmd runs every heuristic, prints the comparison summary, and
// persists the full results document for the downstream HTTP/LLM layers.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare all scheduling heuristics and write the results document",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		plant, err := loadPlant()
		if err != nil {
			logrus.Fatalf("Rejected configuration: %v", err)
		}

		printPlant(plant)

		results, runs := sim.Compare(plant, sim.AllPolicies())
		for _, metrics := range runs {
			fmt.Printf("\n=== %s ===\n", metrics.Algorithm)
			metrics.Print(len(plant.Orders))
		}
		printComparison(runs, len(plant.Orders))
		printBottlenecks(results.Bottlenecks)

		if err := writeResults(results, outputPath); err != nil {
			logrus.Fatalf("Writing results: %v", err)
		}
		fmt.Printf("\nResults saved to %s\n", outputPath)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, compareCmd} {
		c.Flags().StringVar(&configPath, "config", "", "Plant configuration YAML file (default: built-in demo plant)")
		c.Flags().Float64Var(&horizon, "horizon-days", 0, "Override simulation horizon in days")
		c.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	}
	runCmd.Flags().StringVar(&algorithm, "algorithm", "fifo", "Scheduling heuristic (fifo, edd, cr)")
	compareCmd.Flags().StringVar(&outputPath, "output", "simulation_results.json", "Results JSON output path")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
}
