package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/robometrics/internal/batch"
	"github.com/san-kum/robometrics/internal/config"
	"github.com/san-kum/robometrics/internal/logging"
	"github.com/san-kum/robometrics/internal/metrics"
	"github.com/san-kum/robometrics/internal/render"
	"github.com/san-kum/robometrics/internal/report"
)

var (
	configFile   string
	workers      int
	outDir       string
	logLevel     string
	logFile      string
	skipFailures bool
	theme        string
	formats      []string
	// Scenario preset
	preset string
	// Single-file commands
	bestPossible float64
	plotFlag     bool
	saveTable    bool
	// Throughput window
	windowStart float64
	horizon     float64

	cfg *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "robometrics",
		Short:             "metrics for multi-robot simulation exports",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.IntVar(&workers, "workers", 0, "concurrent file extractions (0 = all cpus)")
	pf.StringVar(&outDir, "out", config.DefaultOutputDir, "output directory")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level")
	pf.StringVar(&logFile, "log-file", "", "also write json logs to this file, rotated")
	pf.BoolVar(&skipFailures, "skip-failures", false, "skip unreadable exports instead of aborting")
	pf.StringVar(&theme, "theme", config.DefaultTheme, fmt.Sprintf("plot palette %v", render.PaletteNames()))
	pf.StringSliceVar(&formats, "format", []string{"svg"}, "plot formats: svg, html, ascii")

	ldjCmd := &cobra.Command{
		Use:   "ldj [file]",
		Short: "log dimensionless jerk per robot",
		Args:  cobra.ExactArgs(1),
		RunE:  runLDJ,
	}
	ldjCmd.Flags().BoolVar(&saveTable, "save", false, "write the table as csv to the output directory")

	distanceCmd := &cobra.Command{
		Use:   "distance [file]",
		Short: "distance travelled per robot",
		Args:  cobra.ExactArgs(1),
		RunE:  runDistance,
	}
	distanceCmd.Flags().Float64Var(&bestPossible, "best-possible", 0, "lower bound for every distance")
	distanceCmd.Flags().BoolVar(&saveTable, "save", false, "write the table as csv to the output directory")

	deviationCmd := &cobra.Command{
		Use:   "deviation [file]",
		Short: "perpendicular path deviation per robot",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeviation,
	}
	deviationCmd.Flags().BoolVar(&plotFlag, "plot", false, "draw the deviation of every robot")
	deviationCmd.Flags().BoolVar(&saveTable, "save", false, "write the table as csv to the output directory")

	circleCmd := &cobra.Command{
		Use:   "circle [dir]",
		Short: "aggregate circle experiments by robot count",
		Args:  cobra.ExactArgs(1),
		RunE:  runCircle,
	}
	circleCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	junctionCmd := &cobra.Command{
		Use:   "junction [dir]",
		Short: "aggregate junction throughput by input flow",
		Args:  cobra.ExactArgs(1),
		RunE:  runJunction,
	}
	junctionCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	junctionCmd.Flags().Float64Var(&windowStart, "window-start", batch.DefaultWindowStart, "ignore robots spawned before this time")
	junctionCmd.Flags().Float64Var(&horizon, "horizon", 0, "end of the observation window (0 = makespan)")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot a single export",
	}
	plotCmd.AddCommand(
		&cobra.Command{
			Use:   "positions [file]",
			Short: "robot paths and routes",
			Args:  cobra.ExactArgs(1),
			RunE:  plotPositions,
		},
		&cobra.Command{
			Use:   "velocities [file]",
			Short: "robot speed over time",
			Args:  cobra.ExactArgs(1),
			RunE:  plotVelocities,
		},
	)

	inspectCmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "browse the robots of an export",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	presetsCmd := &cobra.Command{
		Use:               "presets [scenario]",
		Short:             "list available presets",
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE:              listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(ldjCmd, distanceCmd, deviationCmd, circleCmd, junctionCmd, plotCmd, inspectCmd, presetsCmd, configCmd)

	ctx, stop := signalContext(context.Background())
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// signalContext is cancelled on the first interrupt or termination signal.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// setup resolves the configuration (defaults, file, environment, then flags
// that were set explicitly) and installs the logger.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Resolve(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if preset != "" {
		scenario := cmd.Name()
		p := config.GetPreset(scenario, preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scenario))
		}
		c.Scenario = p.Scenario
		c.Window = p.Window
		c.SkipFailures = p.SkipFailures
		c.PlotFormats = p.PlotFormats
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		c.Workers = workers
	}
	if flags.Changed("out") {
		c.OutputDir = outDir
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("log-file") {
		c.LogFile = logFile
	}
	if flags.Changed("skip-failures") {
		c.SkipFailures = skipFailures
	}
	if flags.Changed("theme") {
		c.Theme = theme
	}
	if flags.Changed("format") {
		c.PlotFormats = formats
	}
	if flags.Changed("window-start") {
		c.Window.Start = windowStart
	}
	if flags.Changed("horizon") {
		c.Window.Horizon = horizon
	}
	if err := c.Validate(); err != nil {
		return err
	}

	if _, err := logging.Configure(logging.Options{Level: c.LogLevel, File: c.LogFile}); err != nil {
		return err
	}
	log.Debug().
		Str("evt.name", "config.resolved").
		Str("config", configFile).
		Int("workers", c.Workers).
		Str("out", c.OutputDir).
		Msg("configuration resolved")

	cfg = c
	return nil
}

func palette() render.Palette {
	return render.GetPalette(cfg.Theme)
}

func writer() *report.Writer {
	return report.New(cfg.OutputDir)
}

func batchOptions() batch.Options {
	return batch.Options{Workers: cfg.Workers, SkipFailures: cfg.SkipFailures}
}

func window() batch.ObservationWindow {
	return batch.ObservationWindow{Start: cfg.Window.Start, Horizon: cfg.Window.Horizon}
}

func deviation() metrics.PathDeviation {
	return metrics.NewPathDeviation(cfg.FallbackDistance)
}

func wantFormat(name string) bool {
	for _, f := range cfg.PlotFormats {
		if f == name {
			return true
		}
	}
	return false
}

// writeConfig saves the configuration every other command would run with.
func writeConfig(_ *cobra.Command, args []string) error {
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	log.Info().Str("file", args[0]).Msg("configuration written")
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	scenarios := config.Scenarios()
	if len(args) == 1 {
		scenarios = []string{args[0]}
	}
	for _, s := range scenarios {
		names := config.ListPresets(s)
		if names == nil {
			return fmt.Errorf("unknown scenario: %s (available: %v)", s, config.Scenarios())
		}
		fmt.Printf("%s:\n", s)
		for _, name := range names {
			p := config.GetPreset(s, name)
			fmt.Printf("  %-10s glob=%s window=%.1f..%.1f skip=%t formats=%v\n",
				name, p.Scenario.Glob, p.Window.Start, p.Window.Horizon, p.SkipFailures, p.PlotFormats)
		}
	}
	return nil
}
