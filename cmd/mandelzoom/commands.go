package main

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/mandelzoom/internal/config"
	"github.com/san-kum/mandelzoom/internal/explore"
	"github.com/san-kum/mandelzoom/internal/fractal"
	"github.com/san-kum/mandelzoom/internal/imageio"
	"github.com/san-kum/mandelzoom/internal/logx"
	"github.com/san-kum/mandelzoom/internal/metrics"
	"github.com/san-kum/mandelzoom/internal/nav"
	"github.com/san-kum/mandelzoom/internal/render"
	"github.com/san-kum/mandelzoom/internal/storage"
)

var (
	heading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	label   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// metrics for a render are sampled on a grid of this many pixels
const metricPixels = 65_536

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	vp, err := cfg.Viewport()
	if err != nil {
		return err
	}
	fc, err := cfg.FractalConfig()
	if err != nil {
		return err
	}
	s, err := fractal.NewStrategy(fc)
	if err != nil {
		return err
	}

	w, h := cfg.Render.Width, cfg.Render.Height
	if w == 0 || h == 0 {
		w, h = render.SizeFor(cfg.Render.Resolution, vp)
	}

	log := logx.Logger()
	log.Info("rendering", "width", w, "height", h, "center", vp.Center.String(),
		"mode", s.Name(), "budget", fc.Budget, "workers", cfg.Render.Workers)

	start := time.Now()
	fb, err := render.Render(cmd.Context(), vp, w, h, s, render.Options{
		Workers: cfg.Render.Workers,
		OnRow:   progress(h),
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := imageio.Save(cfg.Render.Output, fb); err != nil {
		log.Warn("image not written", "path", cfg.Render.Output, "err", err)
		return nil
	}

	ms, hist := metrics.Defaults(fc.Budget, 64)
	sw, sh := render.SizeFor(metricPixels, vp)
	values := metrics.Collect(vp, sw, sh, fc.Budget, fc.Threshold, ms...)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(&storage.Run{
		Meta: storage.RunMetadata{
			Preset:    cfg.Name,
			CenterRe:  vp.Center.Re,
			CenterIm:  vp.Center.Im,
			ViewW:     vp.Width,
			ViewH:     vp.Height,
			Width:     w,
			Height:    h,
			Mode:      s.Name(),
			Budget:    fc.Budget,
			Threshold: fc.Threshold,
			Workers:   cfg.Render.Workers,
			Output:    cfg.Render.Output,
			Elapsed:   elapsed,
			Metrics:   values,
		},
		Histogram: hist.Counts(),
		BinWidth:  hist.BinWidth(),
	})
	if err != nil {
		log.Warn("run not recorded", "err", err)
	}

	fmt.Printf("wrote %s (%dx%d) in %v\n", cfg.Render.Output, w, h, elapsed.Round(time.Millisecond))
	if runID != "" {
		fmt.Printf("run id: %s\n", runID)
	}
	printMetrics(values)
	return nil
}

// progress logs at debug level roughly every tenth of the rows.
func progress(rows int) func(done, total int) {
	step := max(rows/10, 1)
	return func(done, total int) {
		if done%step == 0 || done == total {
			logx.Logger().Debug("render progress", "rows", done, "total", total)
		}
	}
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	fe, err := explore.Open(cfg.Explore.Backend, cfg.ExploreSettings())
	if err != nil {
		logx.Logger().Error("graphics init failed", "backend", cfg.Explore.Backend, "err", err)
		return err
	}
	defer fe.Close()

	st := nav.New(cfg.Center(), cfg.NavConfig())
	frames, err := explore.Run(cmd.Context(), fe, st)
	fmt.Printf("%d frames, zoom %.4g at %+.12f %+.12fi\n", frames, st.Zoom, st.CenterX, st.CenterY)
	return err
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	vp, err := cfg.Viewport()
	if err != nil {
		return err
	}

	ms, hist := metrics.Defaults(cfg.Color.Budget, bins)
	w, h := render.SizeFor(samples, vp)
	values := metrics.Collect(vp, w, h, cfg.Color.Budget, cfg.Color.Threshold, ms...)

	fmt.Println(heading.Render(fmt.Sprintf("%s  %gx%g", vp.Center, vp.Width, vp.Height)))
	fmt.Printf("%s %dx%d  %s %d\n\n", label.Render("samples"), w, h, label.Render("budget"), cfg.Color.Budget)
	printMetrics(values)

	fmt.Println()
	fmt.Println(asciigraph.Plot(hist.Counts(),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("escape iterations, %g per bin", hist.BinWidth())),
	))
	return nil
}

func printMetrics(values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("metrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, values[name])
	}
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	vp, err := cfg.Viewport()
	if err != nil {
		return err
	}
	fc, err := cfg.FractalConfig()
	if err != nil {
		return err
	}

	w, h := render.SizeFor(benchPixels, vp)
	budgets := []int{50, 100, 200, 500, 1000}
	workerCounts := []int{1}
	if n := runtime.NumCPU(); n > 1 {
		workerCounts = append(workerCounts, n)
	}

	fmt.Printf("benchmarking %s at %dx%d\n\n", vp.Center, w, h)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BUDGET\tWORKERS\tTIME\tMPIX/SEC")

	for _, b := range budgets {
		fc.Budget = b
		s, err := fractal.NewStrategy(fc)
		if err != nil {
			return err
		}
		for _, n := range workerCounts {
			start := time.Now()
			if _, err := render.Render(cmd.Context(), vp, w, h, s, render.Options{Workers: n}); err != nil {
				return err
			}
			elapsed := time.Since(start)
			rate := float64(w*h) / elapsed.Seconds() / 1e6
			fmt.Fprintf(tw, "%d\t%d\t%v\t%.2f\n", b, n, elapsed.Round(time.Microsecond), rate)
		}
	}
	return tw.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tCENTER\tWIDTH\tSIZE\tMODE\tBUDGET\tELAPSED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%+.6f%+.6fi\t%.3g\t%dx%d\t%s\t%d\t%v\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.CenterRe, run.CenterIm,
			run.ViewW,
			run.Width, run.Height,
			run.Mode,
			run.Budget,
			run.Elapsed.Round(time.Millisecond),
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	hist, err := st.LoadHistogram(runID)
	if err != nil {
		return err
	}

	fmt.Println(heading.Render(meta.ID))
	fmt.Printf("%s %s\n", label.Render("output "), meta.Output)
	fmt.Printf("%s %+.12f %+.12fi\n", label.Render("center "), meta.CenterRe, meta.CenterIm)
	fmt.Printf("%s %g x %g\n", label.Render("view   "), meta.ViewW, meta.ViewH)
	fmt.Printf("%s %dx%d\n", label.Render("size   "), meta.Width, meta.Height)
	fmt.Printf("%s %s, budget %d, threshold %g\n", label.Render("color  "), meta.Mode, meta.Budget, meta.Threshold)
	fmt.Printf("%s %v on %d workers\n\n", label.Render("elapsed"), meta.Elapsed, meta.Workers)
	printMetrics(meta.Metrics)

	if len(hist) > 0 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(hist,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("escape iteration histogram"),
		))
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if exportPath == "" {
		return st.ExportJSON(os.Stdout, args[0])
	}

	f, err := os.Create(exportPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := st.ExportJSON(f, args[0]); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", args[0], exportPath)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tCENTER\tWIDTH\tMODE\tBUDGET")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%+.6f%+.6fi\t%.4g\t%s\t%d\n",
			name, cfg.Render.CenterRe, cfg.Render.CenterIm, cfg.Render.ViewWidth, cfg.Color.Mode, cfg.Color.Budget)
	}
	return w.Flush()
}
