package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/outbreak-sim/outbreak-sim/sim"
	"github.com/outbreak-sim/outbreak-sim/sim/plot"
)

var (
	// CLI flags for model parameters
	seed            int64   // Seed for replicate stream derivation
	population      int64   // Total population N
	initialInfected int64   // Infected count at t=0
	beta            float64 // Contact rate per unit time
	gamma           float64 // Recovery rate per unit time
	dt              float64 // Step size for hazard-to-probability conversion
	horizon         int64   // Last time grid point (grid runs 0..horizon)
	replicates      int     // Number of independent stochastic replicates
	workers         int     // Worker goroutines for replicate execution (0 = sequential)
	logLevel        string  // Log verbosity level

	// Input/output flags
	scenarioPath string // YAML scenario file; overrides the parameter flags
	disease      string // Named preset from the presets file
	presetsPath  string // Path to the presets YAML
	csvPath      string // Write the reshaped table as CSV
	plotPath     string // Render the replicate chart (.svg or .png by extension)
	plotTitle    string // Chart title
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "outbreak-sim",
	Short: "Stochastic discrete-time SIR epidemic simulator",
}

// runCmd executes a simulation from CLI flags, a scenario file, or a preset
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the epidemic simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		scenario := scenarioFromFlags()

		if scenarioPath != "" {
			loaded, err := sim.LoadScenario(scenarioPath)
			if err != nil {
				logrus.Fatalf("Failed to load scenario %s: %v", scenarioPath, err)
			}
			scenario = loaded
		} else if disease != "" {
			preset, ok := GetDiseasePreset(presetsPath, disease)
			if !ok {
				logrus.Fatalf("Unknown disease preset %q in %s", disease, presetsPath)
			}
			scenario.Beta = preset.Beta
			scenario.Gamma = preset.Gamma
			scenario.Dt = preset.Dt
			logrus.Infof("Using preset %q: beta=%v, gamma=%v, dt=%v", disease, preset.Beta, preset.Gamma, preset.Dt)
		}

		simulator, err := scenario.Simulator()
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		logrus.Infof("Starting simulation: N=%d, I0=%d, beta=%v, gamma=%v, dt=%v, grid=%d..%d, replicates=%d, seed=%d",
			scenario.Population, scenario.InitialInfected, scenario.Beta, scenario.Gamma,
			scenario.Dt, scenario.Start, scenario.End, scenario.Replicates, scenario.Seed)

		startTime := time.Now()
		raw := simulator.Run()
		logrus.Infof("Simulation finished in %v", time.Since(startTime))

		table, err := sim.Reshape(raw, sim.CompartmentNames(), simulator.Grid)
		if err != nil {
			logrus.Fatalf("Reshape failed: %v", err)
		}

		summary := sim.Summarize(raw, simulator.Grid, scenario.Parameters())
		summary.Print()

		if csvPath != "" {
			if err := table.SaveCSV(csvPath); err != nil {
				logrus.Fatalf("Failed to write CSV %s: %v", csvPath, err)
			}
			logrus.Infof("Wrote table to %s", csvPath)
		}
		if plotPath != "" {
			if err := savePlot(table, plotPath); err != nil {
				logrus.Fatalf("Failed to render plot %s: %v", plotPath, err)
			}
			logrus.Infof("Wrote plot to %s", plotPath)
		}

		logrus.Info("Simulation complete.")
	},
}

// scenarioFromFlags assembles a Scenario from the individual CLI flags.
func scenarioFromFlags() *sim.Scenario {
	return &sim.Scenario{
		Name:            "cli",
		Population:      population,
		InitialInfected: initialInfected,
		Beta:            beta,
		Gamma:           gamma,
		Dt:              dt,
		Start:           0,
		End:             horizon,
		Replicates:      replicates,
		Seed:            seed,
		Workers:         workers,
	}
}

// savePlot picks the output format from the file extension.
func savePlot(table *sim.ReplicateTable, path string) error {
	opts := plot.Options{Title: plotTitle}
	if strings.HasSuffix(path, ".svg") {
		return plot.SaveSVG(table, opts, path)
	}
	return plot.SavePNG(table, opts, path)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for replicate random streams")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Model parameters
	runCmd.Flags().Int64Var(&population, "population", 1000, "Total population N")
	runCmd.Flags().Int64Var(&initialInfected, "initial-infected", 10, "Infected count at t=0")
	runCmd.Flags().Float64Var(&beta, "beta", 0.2, "Contact rate per unit time")
	runCmd.Flags().Float64Var(&gamma, "gamma", 0.1, "Recovery rate per unit time")
	runCmd.Flags().Float64Var(&dt, "dt", 1.0, "Step size for hazard-to-probability conversion")
	runCmd.Flags().Int64Var(&horizon, "horizon", 100, "Last time grid point (grid runs 0..horizon)")
	runCmd.Flags().IntVar(&replicates, "replicates", 1, "Number of independent stochastic replicates")
	runCmd.Flags().IntVar(&workers, "workers", 0, "Worker goroutines for replicate execution (0 = sequential)")

	// Inputs
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file (overrides parameter flags)")
	runCmd.Flags().StringVar(&disease, "disease", "", "Named preset from the presets file")
	runCmd.Flags().StringVar(&presetsPath, "presets", "defaults.yaml", "Path to the presets YAML")

	// Outputs
	runCmd.Flags().StringVar(&csvPath, "output-csv", "", "Write the reshaped table as CSV")
	runCmd.Flags().StringVar(&plotPath, "plot", "", "Render the replicate chart (.svg or .png by extension)")
	runCmd.Flags().StringVar(&plotTitle, "plot-title", "SIR replicates", "Chart title")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(presetsCmd)
}
