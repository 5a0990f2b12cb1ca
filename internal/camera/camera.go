// Package camera maps between world and view coordinates. It is a pure
// transform: panning and zooming never touch entity positions.
package camera

import (
	"math"

	"github.com/san-kum/gravsim/internal/vecmath"
)

const (
	DefaultZoomSpeed = 0.015
	DefaultPanSpeed  = 50.0
	DefaultMinScale  = 0.1
	DefaultMaxScale  = 3.0
)

// Viewport is the size of the drawing surface in view units (pixels or
// terminal dots).
type Viewport struct {
	W, H float64
}

func (v Viewport) center() vecmath.Vec2 { return vecmath.V(v.W/2, v.H/2) }

// Motion is one update worth of camera intent. PanX and PanY are -1, 0 or
// 1 per axis; Zoom is positive to zoom in and negative to zoom out.
type Motion struct {
	PanX, PanY int
	Zoom       int
}

type Camera struct {
	Center    vecmath.Vec2
	Scale     float64
	MinScale  float64
	MaxScale  float64
	ZoomSpeed float64
	PanSpeed  float64
}

func New() *Camera {
	return &Camera{
		Scale:     1,
		MinScale:  DefaultMinScale,
		MaxScale:  DefaultMaxScale,
		ZoomSpeed: DefaultZoomSpeed,
		PanSpeed:  DefaultPanSpeed,
	}
}

// Apply pans by PanSpeed view units per axis step and zooms by a factor of
// 1 ± ZoomSpeed per zoom step, clamping the scale after every step.
func (c *Camera) Apply(m Motion) {
	if m.PanX != 0 || m.PanY != 0 {
		step := c.PanSpeed / c.Scale
		c.Center.X += float64(sign(m.PanX)) * step
		c.Center.Y += float64(sign(m.PanY)) * step
	}

	for i := 0; i < abs(m.Zoom); i++ {
		if m.Zoom > 0 {
			c.Scale *= 1 + c.ZoomSpeed
		} else {
			c.Scale *= 1 - c.ZoomSpeed
		}
		c.Scale = clamp(c.Scale, c.MinScale, c.MaxScale)
	}
}

// Focus centers the view on p.
func (c *Camera) Focus(p vecmath.Vec2) { c.Center = p }

func (c *Camera) WorldToView(p vecmath.Vec2, vp Viewport) vecmath.Vec2 {
	return p.Sub(c.Center).Scale(c.Scale).Add(vp.center())
}

func (c *Camera) ViewToWorld(p vecmath.Vec2, vp Viewport) vecmath.Vec2 {
	return p.Sub(vp.center()).Scale(1 / c.Scale).Add(c.Center)
}

// WorldLength converts a view-space length, such as a drag, to world units.
func (c *Camera) WorldLength(l float64) float64 { return l / c.Scale }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
