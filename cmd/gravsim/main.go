package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/gui"
	"github.com/san-kum/gravsim/internal/input"
	"github.com/san-kum/gravsim/internal/logging"
	"github.com/san-kum/gravsim/internal/loop"
	"github.com/san-kum/gravsim/internal/scenario"
	"github.com/san-kum/gravsim/internal/tui"
	"github.com/san-kum/gravsim/internal/vecmath"
	"github.com/san-kum/gravsim/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultTUILog = "gravsim.log"

var (
	// Config file
	configFile string
	// Profile name
	profile   string
	scenarioF string
	seed      int64
	logLevel  string
	logFile   string
	logFormat string

	// headless run
	steps     int
	fireEvery int
	live      bool
	frameRate int
	noPlot    bool
	svgOut    string
	traceOut  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers the gravsim commands. The terminal sandbox runs when
// no subcommand is given.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "gravsim",
		Short:        "interactive 2D gravity sandbox",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	pf.StringVar(&profile, "profile", "", "config profile applied before flags")
	pf.StringVar(&scenarioF, "scenario", "", "preset name or scenario file (.yaml, .toml, .lua)")
	pf.Int64Var(&seed, "seed", 0, "random seed for randomized scenarios")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error, off)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&logFormat, "log-format", "", "log format (console or json)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the sandbox in the terminal",
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the sandbox in a window",
		RunE:  runGUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario headless and report",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&steps, "steps", 1000, "number of ticks")
	runCmd.Flags().IntVar(&fireEvery, "fire-every", 0, "fire all cannons every n ticks (0 never)")
	runCmd.Flags().BoolVar(&live, "live", false, "draw frames while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --live")
	runCmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the ascii plots")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write the final frame as svg")
	runCmd.Flags().StringVar(&traceOut, "trace-svg", "", "write the energy trace as svg")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets, config profiles and themes",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective config to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, guiCmd, runCmd, newSweepCmd(), presetsCmd, configCmd)
	return rootCmd
}

// loadConfig layers defaults, the config file, the profile and the flags, in
// that order, and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if profile != "" {
		apply, ok := config.Profiles[profile]
		if !ok {
			return nil, fmt.Errorf("unknown profile: %s (available: %v)", profile, config.ListProfiles())
		}
		apply(cfg)
	}

	flags := cmd.Flags()
	if flags.Changed("scenario") {
		cfg.Scenario = scenarioF
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = logFile
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newWorld builds the logger and a world populated with the configured
// scenario. The handles of the scenario bodies are returned in order.
func newWorld(cfg *config.Config) (*gravity.World, []gravity.Handle, *zap.Logger, error) {
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, nil, err
	}

	w, err := gravity.NewWorld(cfg.Params(), log)
	if err != nil {
		return nil, nil, nil, err
	}
	req, err := scenario.Resolve(cfg.Scenario, vecmath.Vec2{}, cfg.Seed)
	if err != nil {
		return nil, nil, nil, err
	}
	handles, err := w.Spawn(req)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("spawn %s: %w", req.Label, err)
	}
	log.Info("scenario loaded",
		zap.String("scenario", req.Label),
		zap.Int("bodies", len(req.Bodies)),
		zap.Int("cannons", len(req.Cannons)),
		zap.Int64("seed", cfg.Seed))
	return w, handles, log, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// stderr logging would corrupt the alt screen
	if cfg.Logging.File == "" {
		cfg.Logging.File = defaultTUILog
	}
	w, _, log, err := newWorld(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return tui.Run(ctx, tui.Options{
		Session:    loop.NewSession(w, 16*time.Millisecond, log),
		Camera:     cfg.Camera(),
		Tracker:    input.NewTracker(cfg.Input()),
		Theme:      viz.GetTheme(cfg.View.Theme),
		FullHealth: cfg.Sim.Health,
		Scenario:   cfg.Scenario,
		Log:        log,
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w, _, log, err := newWorld(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	return gui.Run(gui.Options{
		World:      w,
		Camera:     cfg.Camera(),
		Tracker:    input.NewTracker(cfg.Input()),
		Scenario:   cfg.Scenario,
		FullHealth: cfg.Sim.Health,
		Log:        log,
	})
}

func listPresets(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "scenarios:")
	for _, p := range scenario.Presets() {
		fmt.Fprintf(tw, "  %s\t%s\n", p.Name, p.Description)
	}
	fmt.Fprintln(tw, "profiles:")
	for _, name := range config.ListProfiles() {
		fmt.Fprintf(tw, "  %s\n", name)
	}
	fmt.Fprintln(tw, "themes:")
	for _, name := range viz.ThemeNames() {
		fmt.Fprintf(tw, "  %s\n", name)
	}
	return tw.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "gravsim.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", path)
	return nil
}
