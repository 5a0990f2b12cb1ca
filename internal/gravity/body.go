package gravity

import (
	"math"

	"github.com/san-kum/gravsim/internal/vecmath"
)

const (
	DefaultHealth = 100
	DefaultColor  = "black"
)

// massFactor is the volume proxy applied to density·radius².
const massFactor = 4.0 / 3.0 * math.Pi

// MassOf returns the mass of a body with the given density and radius.
func MassOf(density, radius float64) float64 {
	return density * massFactor * radius * radius
}

// DensityForMass is the inverse of MassOf for a fixed radius.
func DensityForMass(mass, radius float64) float64 {
	return mass / (massFactor * radius * radius)
}

// BodyParams describes a body to construct. Zero Health and empty Color are
// filled with DefaultHealth and DefaultColor.
type BodyParams struct {
	Pos          vecmath.Vec2
	Vel          vecmath.Vec2
	Density      float64
	Radius       float64
	Color        string
	Gradient     bool
	Health       int
	Invulnerable bool
}

// Body is a gravity well. Density, radius and mass are fixed at construction.
type Body struct {
	ID  Handle
	Pos vecmath.Vec2
	Vel vecmath.Vec2
	// Force is the accumulator for the current tick. It is zero between ticks.
	Force vecmath.Vec2

	Color        string
	Gradient     bool
	Health       int
	Invulnerable bool
	Active       bool

	density float64
	radius  float64
	mass    float64
}

// NewBody validates p and builds an active body with zero force.
func NewBody(p BodyParams) (*Body, error) {
	for _, f := range []float64{p.Pos.X, p.Pos.Y, p.Vel.X, p.Vel.Y, p.Density, p.Radius} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, ErrNonFinite
		}
	}
	if p.Radius <= 0 {
		return nil, ErrInvalidRadius
	}
	if p.Density <= 0 {
		return nil, ErrInvalidDensity
	}
	if p.Health < 0 {
		return nil, ErrInvalidHealth
	}

	health := p.Health
	if health == 0 {
		health = DefaultHealth
	}
	color := p.Color
	if color == "" {
		color = DefaultColor
	}

	return &Body{
		Pos:          p.Pos,
		Vel:          p.Vel,
		Color:        color,
		Gradient:     p.Gradient,
		Health:       health,
		Invulnerable: p.Invulnerable,
		Active:       true,
		density:      p.Density,
		radius:       p.Radius,
		mass:         MassOf(p.Density, p.Radius),
	}, nil
}

// Mass is fixed at construction from density and radius.
func (b *Body) Mass() float64 { return b.mass }

// Radius is the collision radius.
func (b *Body) Radius() float64 { return b.radius }

// Density is the value the body was built with.
func (b *Body) Density() float64 { return b.density }

// Damage lowers health by amount and deactivates the body once health drops
// to zero or below. It reports whether this call killed the body.
// Invulnerable and already inactive bodies are unaffected.
func (b *Body) Damage(amount int) bool {
	if b.Invulnerable || !b.Active {
		return false
	}
	b.Health -= amount
	if b.Health <= 0 {
		b.Active = false
		return true
	}
	return false
}

func (b *Body) finite() bool {
	return b.Pos.Finite() && b.Vel.Finite()
}
