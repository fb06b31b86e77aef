package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/mandelzoom/internal/config"
	"github.com/san-kum/mandelzoom/internal/logx"
	"github.com/san-kum/mandelzoom/internal/tui"
)

var (
	dataDir string
	verbose bool
	// Config file
	configFile string
	// Preset name
	preset string

	centerRe   float64
	centerIm   float64
	viewWidth  float64
	viewHeight float64
	budget     int
	threshold  float64
	mode       string
	workers    int

	// render
	outPath    string
	width      int
	height     int
	resolution int

	// explore
	backend string
	fps     int

	// stats
	bins    int
	samples int

	benchPixels int
	exportPath  string
)

// main runs the root command, exiting with status 1 if it fails.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers every command and its flags. With no subcommand
// the terminal explorer starts.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "mandelzoom",
		Short:        "render and explore the mandelbrot set",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logx.Setup(os.Stderr, verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunInteractive(config.DefaultConfig())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mandelzoom", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render the set to an image file",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	addViewFlags(renderCmd)
	renderCmd.Flags().StringVarP(&outPath, "out", "o", config.DefaultOutput, "output file (.ppm, .png, .bmp, .tiff)")
	renderCmd.Flags().IntVar(&width, "width", 0, "image width in pixels (0 derives it from --resolution)")
	renderCmd.Flags().IntVar(&height, "height", 0, "image height in pixels (0 derives it from --resolution)")
	renderCmd.Flags().IntVar(&resolution, "resolution", config.DefaultResolution, "target pixel count")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "pan and zoom in a window",
		Args:  cobra.NoArgs,
		RunE:  runExplore,
	}
	addViewFlags(exploreCmd)
	exploreCmd.Flags().StringVar(&backend, "backend", config.DefaultBackend, "window backend")
	exploreCmd.Flags().IntVar(&fps, "fps", 60, "target frame rate")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "pan and zoom in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if preset == "" && configFile == "" && !anyViewFlag(cmd) {
				return tui.RunInteractive(cfg)
			}
			return tui.RunView(cfg)
		},
	}
	addViewFlags(tuiCmd)

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "escape-time statistics for a view",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
	addViewFlags(statsCmd)
	statsCmd.Flags().IntVar(&bins, "bins", 64, "histogram bins")
	statsCmd.Flags().IntVar(&samples, "samples", 250_000, "sampled pixel count")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time renders across budgets and worker counts",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	addViewFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchPixels, "pixels", 250_000, "pixels per render")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded renders",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a recorded render and its histogram",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a recorded render as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&exportPath, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(renderCmd, exploreCmd, tuiCmd, statsCmd, benchCmd, listCmd, showCmd, exportCmd, presetsCmd)
	return rootCmd
}

func addViewFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&centerRe, "center-re", def.Render.CenterRe, "real part of the view center")
	cmd.Flags().Float64Var(&centerIm, "center-im", def.Render.CenterIm, "imaginary part of the view center")
	cmd.Flags().Float64Var(&viewWidth, "view-width", def.Render.ViewWidth, "plane width shown")
	cmd.Flags().Float64Var(&viewHeight, "view-height", def.Render.ViewHeight, "plane height shown")
	cmd.Flags().IntVar(&budget, "budget", def.Color.Budget, "iteration budget")
	cmd.Flags().Float64Var(&threshold, "threshold", def.Color.Threshold, "divergence threshold on |z|^2")
	cmd.Flags().StringVar(&mode, "mode", def.Color.Mode, "coloring mode (iterative, radial)")
	cmd.Flags().IntVar(&workers, "workers", def.Render.Workers, "row bands rendered concurrently")
}

var viewFlags = []string{"center-re", "center-im", "view-width", "view-height", "budget", "threshold", "mode", "workers"}

func anyViewFlag(cmd *cobra.Command) bool {
	for _, name := range viewFlags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// resolveConfig layers the preset, then the config file, then any flags
// set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("center-re") {
		cfg.Render.CenterRe = centerRe
	}
	if flags.Changed("center-im") {
		cfg.Render.CenterIm = centerIm
	}
	if flags.Changed("view-width") {
		cfg.Render.ViewWidth = viewWidth
	}
	if flags.Changed("view-height") {
		cfg.Render.ViewHeight = viewHeight
	}
	if flags.Changed("budget") {
		cfg.Color.Budget = budget
	}
	if flags.Changed("threshold") {
		cfg.Color.Threshold = threshold
	}
	if flags.Changed("mode") {
		cfg.Color.Mode = mode
	}
	if flags.Changed("workers") {
		cfg.Render.Workers = workers
	}
	if flags.Changed("out") {
		cfg.Render.Output = outPath
	}
	if flags.Changed("width") {
		cfg.Render.Width = width
	}
	if flags.Changed("height") {
		cfg.Render.Height = height
	}
	if flags.Changed("resolution") {
		cfg.Render.Resolution = resolution
	}
	if flags.Changed("backend") {
		cfg.Explore.Backend = backend
	}
	if flags.Changed("fps") {
		cfg.Explore.TargetFPS = fps
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
