package gravity

// Integrate advances b by dt from its accumulated force and clears the
// accumulator:
//
//	a = F/m;  v += a·dt;  x += v·dt;  F = 0
//
// The position update uses the freshly updated velocity. Energy drifts over
// long runs; the energy metric measures it.
func Integrate(b *Body, dt float64) {
	ax := b.Force.X / b.mass
	ay := b.Force.Y / b.mass

	b.Vel.X += ax * dt
	b.Vel.Y += ay * dt

	b.Pos.X += b.Vel.X * dt
	b.Pos.Y += b.Vel.Y * dt

	b.Force.X = 0
	b.Force.Y = 0
}
