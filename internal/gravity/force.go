package gravity

import "github.com/san-kum/gravsim/internal/vecmath"

// DefaultMinDistance floors the distance used as a force denominator.
const DefaultMinDistance = 1.0

// AddForceFrom adds the pull that b exerts on a into a's accumulator:
// G·ma·mb / d along the line from a to b. Coincident pairs add nothing.
func AddForceFrom(a, b *Body, g, minDist float64) {
	cos, sin, d, ok := vecmath.Direction(a.Pos, b.Pos, minDist)
	if !ok {
		return
	}
	mag := g * a.mass * b.mass / d
	a.Force.X += -cos * mag
	a.Force.Y += -sin * mag
}

// AccumulateForces sums the pull on every active entity from the current
// positions. Every ordered pair of distinct active bodies is visited; each
// active projectile is pulled by every active body. Projectiles never pull
// anything. Positions are not touched.
func AccumulateForces(bodies []*Body, projectiles []*Projectile, g, minDist float64) {
	for i, a := range bodies {
		if !a.Active {
			continue
		}
		for j, b := range bodies {
			if i == j || !b.Active {
				continue
			}
			AddForceFrom(a, b, g, minDist)
		}
	}

	for _, p := range projectiles {
		if !p.Active {
			continue
		}
		for _, b := range bodies {
			if !b.Active {
				continue
			}
			AddForceFrom(&p.Body, b, g, minDist)
		}
	}
}
