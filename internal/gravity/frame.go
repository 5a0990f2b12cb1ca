package gravity

import "github.com/san-kum/gravsim/internal/vecmath"

// BodyView is a read-only copy of a body for renderers and metrics.
type BodyView struct {
	ID           Handle
	Pos          vecmath.Vec2
	Vel          vecmath.Vec2
	Radius       float64
	Mass         float64
	Color        string
	Gradient     bool
	Health       int
	Invulnerable bool
}

type ProjectileView struct {
	Pos    vecmath.Vec2
	Vel    vecmath.Vec2
	Radius float64
	Mass   float64
	Color  string
	Age    int
}

type CannonView struct {
	Parent Handle
	Pos    vecmath.Vec2
	Angle  float64
	Width  float64
	Height float64
}

// Frame is a snapshot of every active entity after a tick. It shares no
// memory with the world, so it can be drawn while the next tick runs.
type Frame struct {
	Tick        uint64
	G           float64
	MinDistance float64
	Bodies      []BodyView
	Projectiles []ProjectileView
	Cannons     []CannonView
}

// Frame copies the active entities out of the world.
func (w *World) Frame() Frame {
	f := Frame{
		Tick:        w.tick,
		G:           w.params.G,
		MinDistance: w.params.MinDistance,
		Bodies:      make([]BodyView, 0, len(w.bodies)),
		Projectiles: make([]ProjectileView, 0, len(w.projectiles)),
		Cannons:     make([]CannonView, 0, len(w.cannons)),
	}
	for _, b := range w.bodies {
		if !b.Active {
			continue
		}
		f.Bodies = append(f.Bodies, BodyView{
			ID:           b.ID,
			Pos:          b.Pos,
			Vel:          b.Vel,
			Radius:       b.radius,
			Mass:         b.mass,
			Color:        b.Color,
			Gradient:     b.Gradient,
			Health:       b.Health,
			Invulnerable: b.Invulnerable,
		})
	}
	for _, p := range w.projectiles {
		if !p.Active {
			continue
		}
		f.Projectiles = append(f.Projectiles, ProjectileView{
			Pos:    p.Pos,
			Vel:    p.Vel,
			Radius: p.radius,
			Mass:   p.mass,
			Color:  p.Color,
			Age:    p.Age,
		})
	}
	for _, c := range w.cannons {
		if _, ok := w.Body(c.Parent); !ok {
			continue
		}
		f.Cannons = append(f.Cannons, CannonView{
			Parent: c.Parent,
			Pos:    c.Pos,
			Angle:  c.Angle,
			Width:  c.Width,
			Height: c.Height,
		})
	}
	return f
}

// Find returns the view of body h in the frame.
func (f Frame) Find(h Handle) (BodyView, bool) {
	for _, b := range f.Bodies {
		if b.ID == h {
			return b, true
		}
	}
	return BodyView{}, false
}
