package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/logging"
	"github.com/san-kum/gravsim/internal/sweep"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	runs    int
	workers int
	grid    []string
	metric  string
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a seeded ensemble or a parameter grid headless",
		RunE:  runSweep,
	}
	cmd.Flags().IntVar(&steps, "steps", 1000, "ticks per run")
	cmd.Flags().IntVar(&fireEvery, "fire-every", 0, "fire all cannons every n ticks (0 never)")
	cmd.Flags().IntVar(&runs, "runs", 8, "ensemble size, seeded from --seed upward")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (0 all)")
	cmd.Flags().StringArrayVar(&grid, "grid", nil, "grid axis name=v1,v2 (repeatable); switches to grid search")
	cmd.Flags().StringVar(&metric, "metric", "energy_drift", "metric to minimize or plot")
	cmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the ascii plot")
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	base := sweep.Experiment{
		Scenario:  cfg.Scenario,
		Params:    cfg.Params(),
		Seed:      cfg.Seed,
		Steps:     steps,
		FireEvery: fireEvery,
	}
	out := cmd.OutOrStdout()

	if len(grid) > 0 {
		axes := make([]sweep.Axis, 0, len(grid))
		for _, s := range grid {
			ax, err := sweep.ParseAxis(s)
			if err != nil {
				return err
			}
			axes = append(axes, ax)
		}
		log.Info("grid search started", zap.Int("axes", len(axes)), zap.String("metric", metric))
		points, best, err := sweep.NewGridSearch(axes...).Search(ctx, base, metric, log)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "point\t%s\n", metric)
		for _, p := range points {
			if p.Err != nil {
				fmt.Fprintf(tw, "%s\tinvalid: %v\n", formatPoint(p.Values), p.Err)
				continue
			}
			fmt.Fprintf(tw, "%s\t%.6g\n", formatPoint(p.Values), p.Score)
		}
		tw.Flush()
		fmt.Fprintf(out, "\nbest: %s  %s=%.6g\n", formatPoint(best.Values), metric, best.Score)
		return nil
	}

	log.Info("ensemble started", zap.Int("runs", runs), zap.Int64("seed", cfg.Seed))
	outcomes, err := sweep.NewEnsemble(base, runs, cfg.Seed, workers).Run(ctx, log)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "metric\tmean\tstddev\tmin\tmax")
	for _, s := range sweep.Summarize(outcomes) {
		fmt.Fprintf(tw, "%s\t%.6g\t%.6g\t%.6g\t%.6g\n", s.Name, s.Mean, s.StdDev, s.Min, s.Max)
	}
	tw.Flush()

	if !noPlot && len(outcomes) > 1 {
		series := make([]float64, len(outcomes))
		for i, o := range outcomes {
			series[i] = o.Metrics[metric]
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(series,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption(metric+" by seed")))
	}
	return nil
}

func formatPoint(values map[string]float64) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%g", name, values[name])
	}
	return strings.Join(parts, " ")
}
