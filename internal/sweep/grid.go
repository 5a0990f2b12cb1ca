package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/gravsim/internal/gravity"
	"go.uber.org/zap"
)

var ErrUnknownParam = errors.New("sweep: unknown parameter")

// setters are the parameters a grid may vary.
var setters = map[string]func(p *gravity.Params, v float64){
	"g":                 func(p *gravity.Params, v float64) { p.G = v },
	"dt":                func(p *gravity.Params, v float64) { p.Dt = v },
	"min_distance":      func(p *gravity.Params, v float64) { p.MinDistance = v },
	"damage":            func(p *gravity.Params, v float64) { p.Damage = int(v) },
	"projectile_speed":  func(p *gravity.Params, v float64) { p.ProjectileSpeed = v },
	"projectile_radius": func(p *gravity.Params, v float64) { p.ProjectileRadius = v },
}

// ParamNames lists the parameters a grid accepts.
func ParamNames() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Axis is one parameter and the values it takes.
type Axis struct {
	Name   string
	Values []float64
}

// ParseAxis reads "name=v1,v2,...".
func ParseAxis(s string) (Axis, error) {
	name, list, ok := strings.Cut(s, "=")
	if !ok || list == "" {
		return Axis{}, fmt.Errorf("axis %q: want name=v1,v2", s)
	}
	name = strings.TrimSpace(name)
	if _, ok := setters[name]; !ok {
		return Axis{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownParam, name, ParamNames())
	}
	ax := Axis{Name: name}
	for _, field := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return Axis{}, fmt.Errorf("axis %s: %w", name, err)
		}
		ax.Values = append(ax.Values, v)
	}
	return ax, nil
}

// GridSearch runs the base experiment at every point of the grid and keeps
// the point with the smallest metric.
type GridSearch struct {
	axes []Axis
}

func NewGridSearch(axes ...Axis) *GridSearch {
	return &GridSearch{axes: axes}
}

// Point is one grid coordinate and its score.
type Point struct {
	Values map[string]float64
	Score  float64
	Err    error
}

// Search returns every point in grid order and the best valid one. Points
// whose parameters fail validation are reported with Err set and skipped.
func (g *GridSearch) Search(ctx context.Context, base Experiment, metricName string, log *zap.Logger) ([]Point, Point, error) {
	for _, ax := range g.axes {
		if _, ok := setters[ax.Name]; !ok {
			return nil, Point{}, fmt.Errorf("%w: %s", ErrUnknownParam, ax.Name)
		}
	}

	best := Point{Score: math.Inf(1)}
	var points []Point
	err := g.searchRecursive(ctx, 0, make(map[string]float64), base, metricName, log, &points, &best)
	if err != nil {
		return points, Point{}, err
	}
	if best.Values == nil {
		return points, Point{}, fmt.Errorf("sweep: no valid grid point for %s", metricName)
	}
	return points, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base Experiment,
	metricName string,
	log *zap.Logger,
	points *[]Point,
	best *Point,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.axes) {
		exp := base
		for name, v := range current {
			setters[name](&exp.Params, v)
		}
		pt := Point{Values: current, Score: math.NaN()}
		if err := exp.Params.Validate(); err != nil {
			pt.Err = err
			*points = append(*points, pt)
			return nil
		}

		out, err := exp.Run(ctx, log)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			pt.Err = err
			*points = append(*points, pt)
			return nil
		}
		v, ok := out.Metrics[metricName]
		if !ok {
			return fmt.Errorf("sweep: unknown metric %s", metricName)
		}
		pt.Score = v
		*points = append(*points, pt)
		if v < best.Score {
			*best = pt
		}
		return nil
	}

	ax := g.axes[depth]
	for _, val := range ax.Values {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[ax.Name] = val

		if err := g.searchRecursive(ctx, depth+1, next, base, metricName, log, points, best); err != nil {
			return err
		}
	}
	return nil
}
