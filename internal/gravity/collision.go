package gravity

// DefaultDamage is the health a body loses per projectile hit.
const DefaultDamage = 10

// Collides reports whether two bodies overlap. Touching exactly at the sum
// of the radii is not a collision.
func Collides(a, b *Body) bool {
	return a.Pos.Dist(b.Pos) < a.radius+b.radius
}

// Hit records one projectile striking a body.
type Hit struct {
	Projectile *Projectile
	Target     *Body
	Killed     bool
}

// ResolveCollisions tests every active projectile against every active body.
// A projectile is consumed by the first body it overlaps; that body takes
// damage unless it is invulnerable. Bodies whose health reaches zero become
// inactive here and are removed by the next prune.
func ResolveCollisions(projectiles []*Projectile, bodies []*Body, damage int) []Hit {
	var hits []Hit
	for _, p := range projectiles {
		if !p.Active {
			continue
		}
		for _, b := range bodies {
			if !b.Active || !Collides(&p.Body, b) {
				continue
			}
			p.Active = false
			hits = append(hits, Hit{Projectile: p, Target: b, Killed: b.Damage(damage)})
			break
		}
	}
	return hits
}
