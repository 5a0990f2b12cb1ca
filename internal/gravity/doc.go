// Package gravity implements the physics core of the sandbox.
//
// A [World] owns every entity and advances them one tick at a time:
//
//   - spawn requests queued by input collaborators are applied
//   - [AccumulateForces] sums the pairwise pull on every active entity
//   - [Integrate] advances velocity and position and clears the force
//   - [ResolveCollisions] applies projectile damage
//   - the world prunes inactive entities exactly once
//
// The force law is stylized: F = G·mA·mB / d (inverse first power), and the
// mass of a body is density·(4/3)·π·radius². Both are fixed for the life of
// the package; see DESIGN.md.
//
// # Thread Safety
//
// World is NOT thread-safe. It belongs to the goroutine running the tick
// loop; other goroutines hand spawn requests to that goroutine, which
// forwards them with [World.Enqueue].
package gravity
