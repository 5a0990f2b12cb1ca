// Package sweep runs many independent headless worlds: seeded ensembles of
// one scenario and grid searches over physics parameters.
package sweep

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/loop"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/scenario"
	"github.com/san-kum/gravsim/internal/vecmath"
	"go.uber.org/zap"
)

var ErrNoRuns = errors.New("sweep: at least one run is required")

// Experiment is one headless run of a scenario.
type Experiment struct {
	Scenario  string
	Params    gravity.Params
	Seed      int64
	Steps     int
	FireEvery int
}

// Outcome is the result of one experiment along with its metric values.
type Outcome struct {
	Seed    int64
	Params  gravity.Params
	Result  *loop.Result
	Metrics map[string]float64
}

// Run builds a fresh world for the experiment and drives it to completion.
// Each call owns its world, so experiments may run concurrently.
func (e Experiment) Run(ctx context.Context, log *zap.Logger) (*Outcome, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w, err := gravity.NewWorld(e.Params, log)
	if err != nil {
		return nil, err
	}
	req, err := scenario.Resolve(e.Scenario, vecmath.Vec2{}, e.Seed)
	if err != nil {
		return nil, err
	}
	handles, err := w.Spawn(req)
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", req.Label, err)
	}

	set := metrics.NewSet(
		metrics.NewEnergyDrift(),
		metrics.NewMomentumDrift(),
		metrics.NewPopulation(),
	)
	if len(handles) >= 2 {
		set.Add(metrics.NewSeparation(handles[0], handles[1]))
	}

	result, err := loop.Drive(ctx, w, e.Steps, loop.FireEvery(e.FireEvery), set)
	if err != nil {
		return nil, err
	}
	values := set.Values()
	values["bodies"] = float64(len(result.Final.Bodies))
	values["destroyed"] = float64(result.Destroyed)
	values["hits"] = float64(result.Hits)

	return &Outcome{
		Seed:    e.Seed,
		Params:  e.Params,
		Result:  result,
		Metrics: values,
	}, nil
}
