package gravity

import "github.com/san-kum/gravsim/internal/vecmath"

// Projectile is a short-lived body fired by a cannon. It feels the pull of
// bodies but exerts none, and it is never damaged, only deactivated.
type Projectile struct {
	Body
	// Age counts the ticks the projectile has been alive.
	Age      int
	Lifetime int
	// Source is the handle of the body whose cannon fired it.
	Source Handle
}

func newProjectile(p BodyParams, lifetime int, source Handle) (*Projectile, error) {
	b, err := NewBody(p)
	if err != nil {
		return nil, err
	}
	return &Projectile{Body: *b, Lifetime: lifetime, Source: source}, nil
}

// age advances the projectile by one tick and expires it past its lifetime.
func (p *Projectile) age() {
	p.Age++
	if p.Lifetime > 0 && p.Age > p.Lifetime {
		p.Active = false
	}
}

const (
	DefaultCannonWidth  = 4.0
	DefaultCannonHeight = 8.0
)

// CannonParams attaches a cannon to the body at index Parent of a spawn
// group.
type CannonParams struct {
	Parent int
	Angle  float64
	Width  float64
	Height float64
}

// Cannon is fixed to the surface of its parent body. It holds a handle, not
// a pointer, so it never keeps a destroyed parent alive.
type Cannon struct {
	Parent Handle
	Angle  float64
	Width  float64
	Height float64
	Pos    vecmath.Vec2
}

// Update moves the cannon onto the parent's surface.
func (c *Cannon) Update(parent *Body) {
	c.Pos = parent.Pos.Add(vecmath.Polar(parent.Radius(), c.Angle))
}

// Muzzle is the spawn point for a projectile of radius projRadius. It lies
// one unit beyond contact so a fresh projectile does not overlap its parent.
func (c *Cannon) Muzzle(parent *Body, projRadius float64) vecmath.Vec2 {
	return parent.Pos.Add(vecmath.Polar(parent.Radius()+projRadius+1, c.Angle))
}
