package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/1F47E/go-bombsight/pkg/config"
	"github.com/1F47E/go-bombsight/pkg/geo"
	"github.com/1F47E/go-bombsight/pkg/logging"
	"github.com/1F47E/go-bombsight/pkg/physics"
	"github.com/1F47E/go-bombsight/pkg/planner"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
	logFile    string
	colorMode  string
	numWorkers int
	cacheSize  int
	timeSlice  float64
)

// app is the state shared by every subcommand, built before each run.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	closer  io.Closer
	planner *planner.Planner
	catalog *geo.Catalog
	report  *planner.Report
}

var env app

// newRootCmd builds the command tree. Flags are bound to package variables
// and reset to their defaults on every build.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bombsight",
		Short: "Drop solution calculator",
		Long: `Predicts time to impact for a falling object and plans when, and from what
altitude, to release it so it lands on a target.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Scenario YAML file (defaults to the reference scenario)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write JSON logs to this rotated file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "Color output: auto, always, never")
	rootCmd.PersistentFlags().IntVarP(&numWorkers, "workers", "w", 0, "Parallel batch workers (0 = one per CPU)")
	rootCmd.PersistentFlags().IntVar(&cacheSize, "cache-size", 0, "Memoize this many time-to-impact results (0 = off)")
	rootCmd.PersistentFlags().Float64Var(&timeSlice, "time-slice", physics.DefaultTimeSlice, "Simulator time step in seconds")

	rootCmd.AddCommand(newBatchCmd(), newPlanCmd(), newNearestCmd())
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	shutdown(os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Simulation.Workers = numWorkers
	}
	if flags.Changed("cache-size") {
		cfg.Simulation.CacheSize = cacheSize
	}
	if flags.Changed("time-slice") {
		cfg.Simulation.TimeSlice = timeSlice
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := logging.New(os.Stderr, logLevel, logFile)
	if err != nil {
		return err
	}
	logger = logger.With("run", uuid.NewString(), "command", cmd.Name())

	sim, err := physics.NewSimulator(cfg.Constants, cfg.SimulatorOptions()...)
	if err != nil {
		closer.Close()
		return err
	}
	var impact physics.ImpactPredictor = sim
	if cfg.Simulation.CacheSize > 0 {
		if impact, err = physics.NewCachedSimulator(sim, cfg.Simulation.CacheSize); err != nil {
			closer.Close()
			return err
		}
	}

	p, err := planner.New(cfg.Constants, impact, planner.WithLogger(logger))
	if err != nil {
		closer.Close()
		return err
	}

	catalog := geo.NewCatalog(cfg.Constants.EarthRadiusMiles)
	if err := catalog.Add(cfg.Targets...); err != nil {
		closer.Close()
		return fmt.Errorf("failed to index targets: %w", err)
	}

	color, err := useColor(colorMode)
	if err != nil {
		closer.Close()
		return err
	}

	env = app{
		cfg:     cfg,
		logger:  logger,
		closer:  closer,
		planner: p,
		catalog: catalog,
		report:  planner.NewReport(cmd.OutOrStdout(), color),
	}
	logger.Debug("configured",
		"config", configFile,
		"time_slice", cfg.Simulation.TimeSlice,
		"targets", catalog.Len(),
		"cache_size", cfg.Simulation.CacheSize)
	return nil
}

// shutdown flushes the log file. Close errors are reported, not fatal.
func shutdown(stderr io.Writer) {
	if env.closer == nil {
		return
	}
	if err := env.closer.Close(); err != nil {
		fmt.Fprintf(stderr, "failed to close log: %v\n", err)
	}
	env.closer = nil
}

func useColor(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		fd := os.Stdout.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd), nil
	default:
		return false, fmt.Errorf("unknown color mode %q", mode)
	}
}
