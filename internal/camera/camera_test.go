package camera

import (
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/vecmath"
)

func TestCamera_RoundTrip(t *testing.T) {
	vp := Viewport{W: 800, H: 600}
	c := New()
	c.Center = vecmath.V(120, -40)
	c.Scale = 2.5

	points := []vecmath.Vec2{
		vecmath.V(0, 0),
		vecmath.V(120, -40),
		vecmath.V(-333.5, 91.25),
	}
	for _, p := range points {
		got := c.ViewToWorld(c.WorldToView(p, vp), vp)
		if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
			t.Errorf("round trip of %v gave %v", p, got)
		}
	}

	if got := c.WorldToView(c.Center, vp); got != vecmath.V(400, 300) {
		t.Errorf("camera center maps to %v, want viewport center", got)
	}
}

func TestCamera_Pan(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		m     Motion
		want  vecmath.Vec2
	}{
		{"left", 1, Motion{PanX: -1}, vecmath.V(-50, 0)},
		{"down at 2x", 2, Motion{PanY: 1}, vecmath.V(0, 25)},
		{"diagonal clamps to one step", 1, Motion{PanX: 3, PanY: -2}, vecmath.V(50, -50)},
		{"none", 1, Motion{}, vecmath.V(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.Scale = tt.scale
			c.Apply(tt.m)
			if c.Center != tt.want {
				t.Errorf("center = %v, want %v", c.Center, tt.want)
			}
		})
	}
}

func TestCamera_ZoomClamp(t *testing.T) {
	c := New()

	c.Apply(Motion{Zoom: 1})
	if math.Abs(c.Scale-1.015) > 1e-12 {
		t.Errorf("scale after one zoom in = %v, want 1.015", c.Scale)
	}

	c.Apply(Motion{Zoom: 10000})
	if c.Scale != c.MaxScale {
		t.Errorf("scale = %v, want clamped to %v", c.Scale, c.MaxScale)
	}

	c.Apply(Motion{Zoom: -10000})
	if c.Scale != c.MinScale {
		t.Errorf("scale = %v, want clamped to %v", c.Scale, c.MinScale)
	}
}

func TestCamera_WorldLength(t *testing.T) {
	c := New()
	c.Scale = 0.5
	if got := c.WorldLength(10); got != 20 {
		t.Errorf("WorldLength(10) at scale 0.5 = %v, want 20", got)
	}
}
