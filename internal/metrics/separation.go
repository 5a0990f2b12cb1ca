package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/gravity"
)

// Separation follows the distance between two bodies. Frames where either
// body is missing are skipped.
type Separation struct {
	name     string
	a, b     gravity.Handle
	last     float64
	min, max float64
	samples  int
	history  []float64
}

func NewSeparation(a, b gravity.Handle) *Separation {
	s := &Separation{name: "separation", a: a, b: b}
	s.Reset()
	return s
}

func (s *Separation) Name() string { return s.name }

func (s *Separation) Observe(f gravity.Frame) {
	ba, ok := f.Find(s.a)
	if !ok {
		return
	}
	bb, ok := f.Find(s.b)
	if !ok {
		return
	}
	d := ba.Pos.Dist(bb.Pos)
	s.last = d
	s.min = math.Min(s.min, d)
	s.max = math.Max(s.max, d)
	s.samples++
	s.history = append(s.history, d)
}

func (s *Separation) Value() float64 { return s.last }

// Range returns the smallest and largest separation seen.
func (s *Separation) Range() (float64, float64) {
	if s.samples == 0 {
		return 0, 0
	}
	return s.min, s.max
}

// History returns every observed separation in order.
func (s *Separation) History() []float64 { return s.history }

func (s *Separation) Reset() {
	s.last = 0
	s.min = math.Inf(1)
	s.max = math.Inf(-1)
	s.samples = 0
	s.history = s.history[:0]
}
