package metrics

import (
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/vecmath"
)

// Containment is the fraction of frames in which every body stays within
// radius of the center.
type Containment struct {
	name       string
	center     vecmath.Vec2
	radius     float64
	violations int
	samples    int
}

func NewContainment(center vecmath.Vec2, radius float64) *Containment {
	return &Containment{
		name:   "containment",
		center: center,
		radius: radius,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(f gravity.Frame) {
	c.samples++
	for _, b := range f.Bodies {
		if b.Pos.Dist(c.center) > c.radius {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
