package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/vecmath"
)

// TotalMomentum sums m·v over the bodies of f.
func TotalMomentum(f gravity.Frame) vecmath.Vec2 {
	var p vecmath.Vec2
	for _, b := range f.Bodies {
		p = p.Add(b.Vel.Scale(b.Mass))
	}
	return p
}

// MomentumDrift is the largest change in total momentum magnitude since the
// first frame. Pair forces cancel, so it stays near zero until bodies are
// spawned or destroyed.
type MomentumDrift struct {
	name     string
	initial  vecmath.Vec2
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(f gravity.Frame) {
	p := TotalMomentum(f)
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, p.Sub(m.initial).Len())
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = vecmath.Vec2{}
	m.maxDrift = 0
	m.samples = 0
}
