package sweep

import (
	"context"
	"math"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Ensemble repeats an experiment with consecutive seeds.
type Ensemble struct {
	base      Experiment
	numRuns   int
	seedStart int64
	workers   int
}

// NewEnsemble runs numRuns copies of base seeded seedStart, seedStart+1 and
// so on. At most workers run at once; zero means all of them.
func NewEnsemble(base Experiment, numRuns int, seedStart int64, workers int) *Ensemble {
	return &Ensemble{base: base, numRuns: numRuns, seedStart: seedStart, workers: workers}
}

// Run returns the outcomes in seed order. The first error cancels the runs
// that have not finished.
func (e *Ensemble) Run(ctx context.Context, log *zap.Logger) ([]*Outcome, error) {
	if e.numRuns <= 0 {
		return nil, ErrNoRuns
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := e.workers
	if workers <= 0 || workers > e.numRuns {
		workers = e.numRuns
	}
	sem := make(chan struct{}, workers)

	results := make([]*Outcome, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			exp := e.base
			exp.Seed = e.seedStart + int64(idx)
			results[idx], errs[idx] = exp.Run(ctx, log)
			if errs[idx] != nil {
				cancel()
			}
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Stats summarizes one metric across outcomes.
type Stats struct {
	Name   string
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes Stats for every metric present in the outcomes, sorted
// by name.
func Summarize(outcomes []*Outcome) []Stats {
	samples := make(map[string][]float64)
	for _, o := range outcomes {
		for name, v := range o.Metrics {
			samples[name] = append(samples[name], v)
		}
	}

	out := make([]Stats, 0, len(samples))
	for name, vs := range samples {
		s := Stats{Name: name, Min: math.Inf(1), Max: math.Inf(-1)}
		for _, v := range vs {
			s.Mean += v
			s.Min = math.Min(s.Min, v)
			s.Max = math.Max(s.Max, v)
		}
		s.Mean /= float64(len(vs))
		for _, v := range vs {
			s.StdDev += (v - s.Mean) * (v - s.Mean)
		}
		s.StdDev = math.Sqrt(s.StdDev / float64(len(vs)))
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
