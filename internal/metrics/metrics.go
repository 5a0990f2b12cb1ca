// Package metrics computes scalar summaries of frames: energy, momentum,
// separation and the like. Metrics observe frames, never the live world.
package metrics

import "github.com/san-kum/gravsim/internal/gravity"

type Metric interface {
	Name() string
	Observe(f gravity.Frame)
	Value() float64
	Reset()
}

// Set fans frames out to a list of metrics. It satisfies loop.Observer.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

func (s *Set) Add(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Set) OnTick(_ gravity.TickReport, f gravity.Frame) {
	for _, m := range s.metrics {
		m.Observe(f)
	}
}

func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Set) Metrics() []Metric { return s.metrics }
