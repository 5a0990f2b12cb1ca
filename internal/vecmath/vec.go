// Package vecmath provides the small 2D vector helpers shared by the
// physics core, the camera and the renderers.
package vecmath

import "math"

type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Finite reports whether both components are neither NaN nor Inf.
func (v Vec2) Finite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Direction returns the unit vector pointing from b to a, together with the
// distance used as a force denominator. Distances below minDist are floored
// to minDist. ok is false when a and b coincide exactly, since no direction
// exists in that case.
func Direction(a, b Vec2, minDist float64) (cos, sin, d float64, ok bool) {
	dx := a.X - b.X
	dy := a.Y - b.Y
	r := math.Sqrt(dx*dx + dy*dy)
	if r == 0 {
		return 0, 0, 0, false
	}
	cos, sin = dx/r, dy/r
	d = r
	if d < minDist {
		d = minDist
	}
	return cos, sin, d, true
}

// Polar returns r·(sin θ, cos θ). Angles follow the screen convention used
// for cannons: θ = 0 points along +Y.
func Polar(r, theta float64) Vec2 {
	return Vec2{r * math.Sin(theta), r * math.Cos(theta)}
}
