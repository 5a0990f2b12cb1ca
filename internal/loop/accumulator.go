package loop

import "time"

// DefaultMaxCatchUp bounds the ticks run for one wall-clock update.
const DefaultMaxCatchUp = 10

// Accumulator converts elapsed wall time into a whole number of fixed
// ticks. Time beyond MaxCatchUp ticks is dropped instead of carried, so a
// stall does not turn into a burst of catch-up ticks.
type Accumulator struct {
	Step       time.Duration
	MaxCatchUp int

	acc     time.Duration
	dropped time.Duration
}

func NewAccumulator(step time.Duration) *Accumulator {
	return &Accumulator{Step: step, MaxCatchUp: DefaultMaxCatchUp}
}

// Advance adds elapsed and returns the number of ticks now due.
func (a *Accumulator) Advance(elapsed time.Duration) int {
	if a.Step <= 0 || elapsed <= 0 {
		return 0
	}
	a.acc += elapsed
	n := int(a.acc / a.Step)
	a.acc -= time.Duration(n) * a.Step

	if a.MaxCatchUp > 0 && n > a.MaxCatchUp {
		a.dropped += time.Duration(n-a.MaxCatchUp) * a.Step
		n = a.MaxCatchUp
	}
	return n
}

// Alpha is the fraction of a step left in the accumulator, for renderers
// that interpolate.
func (a *Accumulator) Alpha() float64 {
	if a.Step <= 0 {
		return 0
	}
	return float64(a.acc) / float64(a.Step)
}

// Dropped is the wall time discarded by the catch-up cap so far.
func (a *Accumulator) Dropped() time.Duration { return a.dropped }
