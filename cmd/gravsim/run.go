package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/loop"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/tui"
	"github.com/san-kum/gravsim/internal/vecmath"
	"github.com/san-kum/gravsim/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	svgCols  = 100
	svgRows  = 40
	svgScale = 4

	// bodies farther than this from the origin count as escaped
	containRadius = 2000
)

// energyTrace records total energy per tick for plotting.
type energyTrace struct {
	values []float64
}

func (e *energyTrace) OnTick(_ gravity.TickReport, f gravity.Frame) {
	e.values = append(e.values, metrics.TotalEnergy(f))
}

// points turns the trace into tick/energy pairs.
func (e *energyTrace) points() []vecmath.Vec2 {
	pts := make([]vecmath.Vec2, len(e.values))
	for i, v := range e.values {
		pts[i] = vecmath.V(float64(i), v)
	}
	return pts
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w, handles, log, err := newWorld(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	set := metrics.NewSet(
		metrics.NewEnergyDrift(),
		metrics.NewMomentumDrift(),
		metrics.NewPopulation(),
		metrics.NewContainment(vecmath.Vec2{}, containRadius),
	)
	var sep *metrics.Separation
	if len(handles) >= 2 {
		sep = metrics.NewSeparation(handles[0], handles[1])
		set.Add(sep)
	}
	trace := &energyTrace{}
	observers := []loop.Observer{set, trace}

	var renderer *tui.LiveRenderer
	if live {
		renderer = tui.NewLiveRenderer(os.Stdout, cfg.Scenario, frameRate, cfg.Camera())
		renderer.Start()
		defer renderer.Stop()
		observers = append(observers, renderer)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info("run started", zap.String("scenario", cfg.Scenario), zap.Int("steps", steps))
	result, err := loop.Drive(ctx, w, steps, loop.FireEvery(fireEvery), observers...)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		log.Warn("run interrupted", zap.Int("steps", result.StepsTaken))
	}
	for _, e := range result.Errors {
		log.Warn("tick error", zap.Error(e))
	}

	out := cmd.OutOrStdout()
	printSummary(out, cfg, result, set)

	if !noPlot {
		if sep != nil && len(sep.History()) > 1 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, asciigraph.Plot(sep.History(),
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption("separation of the first two bodies")))
		}
		if len(trace.values) > 1 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, asciigraph.Plot(trace.values,
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption("total energy")))
		}
	}

	if svgOut != "" {
		if err := writeFrameSVG(svgOut, cfg, result.Final); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nframe saved to %s\n", svgOut)
	}
	if traceOut != "" {
		svg := export.TrajectoryToSVG(trace.points(), 800, 300, string(viz.GetTheme(cfg.View.Theme).Primary))
		if svg == "" {
			return fmt.Errorf("energy trace needs at least two ticks")
		}
		if err := os.WriteFile(traceOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Fprintf(out, "energy trace saved to %s\n", traceOut)
	}
	return nil
}

func printSummary(w io.Writer, cfg *config.Config, r *loop.Result, set *metrics.Set) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "scenario\t%s\n", cfg.Scenario)
	fmt.Fprintf(tw, "steps\t%d\n", r.StepsTaken)
	fmt.Fprintf(tw, "bodies\t%d\n", len(r.Final.Bodies))
	fmt.Fprintf(tw, "projectiles\t%d\n", len(r.Final.Projectiles))
	fmt.Fprintf(tw, "fired\t%d\n", r.Fired)
	fmt.Fprintf(tw, "hits\t%d\n", r.Hits)
	fmt.Fprintf(tw, "destroyed\t%d\n", r.Destroyed)
	fmt.Fprintf(tw, "expired\t%d\n", r.Expired)
	if r.Dropped > 0 {
		fmt.Fprintf(tw, "dropped\t%d\n", r.Dropped)
	}
	if r.NonFinite > 0 {
		fmt.Fprintf(tw, "non-finite\t%d\n", r.NonFinite)
	}

	values := set.Values()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%.6g\n", name, values[name])
	}
	tw.Flush()
}

func writeFrameSVG(path string, cfg *config.Config, f gravity.Frame) error {
	canvas := viz.NewCanvas(svgCols, svgRows)
	scene := viz.Scene{
		Camera:     cfg.Camera(),
		Theme:      viz.GetTheme(cfg.View.Theme),
		FullHealth: cfg.Sim.Health,
	}
	scene.Draw(canvas, f, viz.Preview{})
	return os.WriteFile(path, []byte(export.CanvasToSVG(canvas, svgScale)), 0644)
}
