package viz

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/gravsim/internal/camera"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/palette"
	"github.com/san-kum/gravsim/internal/vecmath"
)

// Preview is the outline of a body being dragged out, in world units.
type Preview struct {
	Active bool
	Center vecmath.Vec2
	Radius float64
}

// Scene draws frames onto a canvas through a camera.
type Scene struct {
	Camera *camera.Camera
	Theme  Theme
	// FullHealth is the health at which bodies show no damage tint.
	FullHealth int
}

// Viewport is the canvas size in dots, the unit the camera maps to.
func Viewport(c *Canvas) camera.Viewport {
	w, h := c.Dots()
	return camera.Viewport{W: float64(w), H: float64(h)}
}

// Draw clears c and renders f. Bodies are drawn first so projectiles and
// cannons stay visible on top of them.
func (s Scene) Draw(c *Canvas, f gravity.Frame, drag Preview) {
	c.Clear()
	vp := Viewport(c)

	for _, b := range f.Bodies {
		full := s.FullHealth
		if b.Invulnerable {
			full = 0
		}
		p := s.Camera.WorldToView(b.Pos, vp)
		r := b.Radius * s.Camera.Scale
		flat := lipgloss.Color(palette.Hex(palette.Shade(b.Color, false, b.Health, full, 0)))
		s.fillBody(c, p, r, func(t float64) lipgloss.Color {
			if !b.Gradient {
				return flat
			}
			// quantize so neighbouring dots share a color run
			t = math.Round(t*8) / 8
			return lipgloss.Color(palette.Hex(palette.Shade(b.Color, true, b.Health, full, t)))
		})
	}

	for _, cn := range f.Cannons {
		from := s.Camera.WorldToView(cn.Pos, vp)
		to := s.Camera.WorldToView(cn.Pos.Add(vecmath.Polar(cn.Height, cn.Angle)), vp)
		c.DrawLine(round(from.X), round(from.Y), round(to.X), round(to.Y), s.Theme.Accent)
	}

	for _, pr := range f.Projectiles {
		p := s.Camera.WorldToView(pr.Pos, vp)
		col := lipgloss.Color(palette.Hex(palette.OnDark(palette.Parse(pr.Color))))
		c.FillCircle(round(p.X), round(p.Y), round(pr.Radius*s.Camera.Scale/2), col)
	}

	if drag.Active {
		p := s.Camera.WorldToView(drag.Center, vp)
		c.DrawCircle(round(p.X), round(p.Y), round(drag.Radius*s.Camera.Scale), s.Theme.Muted)
	}
}

// fillBody fills a disc, clipped to the canvas so a body much larger than
// the view costs no more than the view itself.
func (s Scene) fillBody(c *Canvas, center vecmath.Vec2, r float64, shade func(t float64) lipgloss.Color) {
	w, h := c.Dots()
	if center.X+r < 0 || center.Y+r < 0 || center.X-r >= float64(w) || center.Y-r >= float64(h) {
		return
	}
	if r < 1 {
		c.Set(round(center.X), round(center.Y), shade(0))
		return
	}

	x0 := max(0, int(math.Floor(center.X-r)))
	x1 := min(w-1, int(math.Ceil(center.X+r)))
	y0 := max(0, int(math.Floor(center.Y-r)))
	y1 := min(h-1, int(math.Ceil(center.Y+r)))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)-center.X, float64(y)-center.Y)
			if d <= r {
				c.Set(x, y, shade(d/r))
			}
		}
	}
}

func round(v float64) int { return int(math.Round(v)) }
