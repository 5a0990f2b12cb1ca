// Package loop drives a world through time, either headless for a fixed
// number of steps or in real time on a dedicated goroutine.
package loop

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/gravsim/internal/gravity"
)

var ErrInvalidSteps = errors.New("loop: steps must be positive")

// Stepper is the part of a world the loop drives. *gravity.World implements
// it.
type Stepper interface {
	Tick(in gravity.Intent) gravity.TickReport
	Frame() gravity.Frame
}

type Observer interface {
	OnTick(rep gravity.TickReport, f gravity.Frame)
}

type ObserverFunc func(rep gravity.TickReport, f gravity.Frame)

func (fn ObserverFunc) OnTick(rep gravity.TickReport, f gravity.Frame) { fn(rep, f) }

// Result sums the tick reports of a run.
type Result struct {
	StepsTaken int
	Spawned    int
	Fired      int
	Hits       int
	Destroyed  int
	Expired    int
	Dropped    int
	NonFinite  int
	Final      gravity.Frame
	Errors     []error
}

func (r *Result) add(rep gravity.TickReport) {
	r.StepsTaken++
	r.Spawned += rep.Spawned
	r.Fired += rep.Fired
	r.Hits += rep.Hits
	r.Destroyed += rep.Destroyed
	r.Expired += rep.Expired
	r.Dropped += rep.Dropped
	r.NonFinite += rep.NonFinite
	if rep.Err != nil {
		r.Errors = append(r.Errors, rep.Err)
	}
}

// IntentFunc supplies the intent for tick i of a headless run.
type IntentFunc func(i int) gravity.Intent

// FireEvery fires the cannons on every nth tick, starting with the first.
func FireEvery(n int) IntentFunc {
	return func(i int) gravity.Intent {
		return gravity.Intent{Fire: n > 0 && i%n == 0}
	}
}

// Run advances s by steps ticks with no input, calling every observer after
// each tick.
func Run(ctx context.Context, s Stepper, steps int, observers ...Observer) (*Result, error) {
	return Drive(ctx, s, steps, nil, observers...)
}

// Drive is Run with scripted input. Cancellation is checked before every
// tick; the partial result is returned with the context error.
func Drive(ctx context.Context, s Stepper, steps int, intents IntentFunc, observers ...Observer) (*Result, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidSteps, steps)
	}

	result := &Result{Errors: make([]error, 0)}
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			result.Final = s.Frame()
			return result, ctx.Err()
		default:
		}

		var in gravity.Intent
		if intents != nil {
			in = intents(i)
		}
		rep := s.Tick(in)
		result.add(rep)

		if len(observers) > 0 {
			f := s.Frame()
			for _, obs := range observers {
				obs.OnTick(rep, f)
			}
		}
	}
	result.Final = s.Frame()
	return result, nil
}
