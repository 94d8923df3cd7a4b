package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dialysim/dialysim/pk/scenario"
)

var (
	// CLI flags
	logLevel     string  // log verbosity level
	scenarioPath string  // scenario YAML file
	drugLibPath  string  // drug preset library
	csvOut       string  // optional trace CSV destination
	stepMinutes  float64 // grid override
	horizonHours float64 // horizon override
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "dialysim",
	Short: "Pharmacokinetic simulation and dose titration for dialysis patients",
}

// simulateCmd runs a scenario file through the full pipeline.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate a scenario: baseline, observation fit, and dose advice",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if scenarioPath == "" {
			logrus.Fatalf("No scenario file provided. Use --scenario.")
		}
		spec, err := scenario.Load(scenarioPath)
		if err != nil {
			logrus.Fatalf("Failed to load scenario: %v", err)
		}
		if spec.Drug.Preset != "" {
			lib, err := LoadDrugLibrary(drugLibPath)
			if err != nil {
				logrus.Fatalf("Failed to load drug library: %v", err)
			}
			if err := lib.Resolve(&spec.Drug); err != nil {
				logrus.Fatalf("Failed to resolve drug preset: %v", err)
			}
		}
		if stepMinutes > 0 {
			spec.StepMinutes = stepMinutes
		}
		if horizonHours > 0 {
			spec.HorizonHours = horizonHours
		}

		res, err := spec.Run()
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		printSummary(res)

		if csvOut != "" {
			if err := res.ExportCSV(csvOut); err != nil {
				logrus.Fatalf("Failed to export trace CSV: %v", err)
			}
			logrus.Infof("Trace written to %s", csvOut)
		}
	},
}

// drugsCmd lists the preset library.
var drugsCmd = &cobra.Command{
	Use:   "drugs",
	Short: "List drug parameter presets",
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := LoadDrugLibrary(drugLibPath)
		if err != nil {
			logrus.Fatalf("Failed to load drug library: %v", err)
		}
		for _, name := range lib.Names() {
			d := lib.Drugs[name]
			fmt.Printf("%-16s V1=%.2f L/kg  V2=%.2f L/kg  Q=%.2f L/min  t1/2=%.0f h  KoA=%.0f mL/min\n",
				name, d.V1PerKg, d.V2PerKg, d.QLPerMin, d.HalfLifeHours, d.KoA)
		}
	},
}

func printSummary(res *scenario.Result) {
	s := res.Summary
	fmt.Printf("Half-life:        %.1f h\n", s.HalfLifeHours)
	fmt.Printf("Clearance:        %.2f L/h\n", s.ClearanceLPerHour)
	fmt.Printf("Peak:             %.2f mg/L at %.0f min\n", s.PeakMgPerL, s.PeakAtMinutes)
	fmt.Printf("AUC24:            %.0f mg*h/L\n", s.AUC24)
	if s.DialyzerClearanceMLMin > 0 {
		fmt.Printf("Dialyzer CL:      %.0f mL/min\n", s.DialyzerClearanceMLMin)
		fmt.Printf("Reduction at 24h: %.1f %%\n", s.ReductionPercent24h)
		fmt.Printf("Rebound (+1h):    %+.2f mg/L\n", s.ReboundMgPerL)
		for i, trough := range s.SessionTroughs {
			fmt.Printf("Pre-HD trough %d:  %.2f mg/L\n", i+1, trough)
		}
	}
	if res.Fit != nil {
		confidence := "ok"
		if res.Fit.LowConfidence {
			confidence = "LOW (observation outside fittable range)"
		}
		fmt.Printf("Fitted t1/2:      %.1f h (confidence: %s)\n", res.Fit.HalfLifeHours, confidence)
	}
	if res.Advice != nil {
		fmt.Printf("Suggested dose:   %.0f mg (raw %.1f mg, predicted AUC24 %.0f)\n",
			res.Advice.SuggestedDoseMg, res.Advice.RawDoseMg, res.Advice.PredictedAUC24)
	}
}

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands.
func init() {
	simulateCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario YAML file")
	simulateCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	simulateCmd.Flags().StringVar(&drugLibPath, "drug-library", DefaultDrugLibraryPath, "Drug preset library YAML")
	simulateCmd.Flags().StringVar(&csvOut, "csv", "", "Write concentration traces to a CSV file")
	simulateCmd.Flags().Float64Var(&stepMinutes, "step-minutes", 0, "Override the simulation grid spacing")
	simulateCmd.Flags().Float64Var(&horizonHours, "horizon-hours", 0, "Override the simulation horizon")

	drugsCmd.Flags().StringVar(&drugLibPath, "drug-library", DefaultDrugLibraryPath, "Drug preset library YAML")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(drugsCmd)
}
