package gravity

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/vecmath"
	"go.uber.org/zap"
)

// Params are the tuning knobs of the physics core.
type Params struct {
	Dt             float64
	G              float64
	MinDistance    float64
	MaxBodies      int
	MaxProjectiles int
	Damage         int
	// Health is given to spawned bodies that do not set their own.
	Health             int
	ProjectileSpeed    float64
	ProjectileRadius   float64
	ProjectileDensity  float64
	ProjectileLifetime int
	QueueSize          int
}

func DefaultParams() Params {
	return Params{
		Dt:                 0.01,
		G:                  1.0,
		MinDistance:        DefaultMinDistance,
		MaxBodies:          200,
		MaxProjectiles:     500,
		Damage:             DefaultDamage,
		Health:             DefaultHealth,
		ProjectileSpeed:    500,
		ProjectileRadius:   2,
		ProjectileDensity:  1,
		ProjectileLifetime: 300,
		QueueSize:          64,
	}
}

func (p Params) Validate() error {
	switch {
	case p.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %f", ErrParameterBounds, p.Dt)
	case p.G < 0:
		return fmt.Errorf("%w: gravity must be non-negative, got %f", ErrParameterBounds, p.G)
	case p.MinDistance <= 0:
		return fmt.Errorf("%w: min distance must be positive, got %f", ErrParameterBounds, p.MinDistance)
	case p.MaxBodies <= 0:
		return fmt.Errorf("%w: max bodies must be positive, got %d", ErrParameterBounds, p.MaxBodies)
	case p.MaxProjectiles < 0:
		return fmt.Errorf("%w: max projectiles must be non-negative, got %d", ErrParameterBounds, p.MaxProjectiles)
	case p.Health < 0:
		return fmt.Errorf("%w: health must be non-negative, got %d", ErrParameterBounds, p.Health)
	case p.ProjectileRadius <= 0:
		return fmt.Errorf("%w: projectile radius must be positive, got %f", ErrParameterBounds, p.ProjectileRadius)
	case p.ProjectileDensity <= 0:
		return fmt.Errorf("%w: projectile density must be positive, got %f", ErrParameterBounds, p.ProjectileDensity)
	case p.QueueSize <= 0:
		return fmt.Errorf("%w: queue size must be positive, got %d", ErrParameterBounds, p.QueueSize)
	}
	return nil
}

// SpawnRequest is a group of bodies, and cannons attached to them, that is
// added atomically.
type SpawnRequest struct {
	Label   string
	Bodies  []BodyParams
	Cannons []CannonParams
}

// Intent is the per-tick input the core consumes. It is read only.
type Intent struct {
	Fire bool
	// Steer pins the anchor body to Cursor for this tick.
	Steer  bool
	Cursor vecmath.Vec2
}

// TickReport summarizes what one tick did.
type TickReport struct {
	Tick      uint64
	Spawned   int
	Dropped   int
	Fired     int
	Hits      int
	Destroyed int
	Expired   int
	NonFinite int
	Err       error
}

// World is the simulation context. It owns the body, projectile and cannon
// collections; entities are referenced across collections by Handle.
type World struct {
	params Params
	log    *zap.Logger

	bodies      []*Body
	projectiles []*Projectile
	cannons     []*Cannon

	pool  *handlePool
	index map[Handle]*Body
	queue []SpawnRequest

	tick    uint64
	ticking bool
}

func NewWorld(params Params, log *zap.Logger) (*World, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		params:      params,
		log:         log,
		bodies:      make([]*Body, 0, params.MaxBodies),
		projectiles: make([]*Projectile, 0, 64),
		cannons:     make([]*Cannon, 0, 16),
		pool:        newHandlePool(),
		index:       make(map[Handle]*Body),
		queue:       make([]SpawnRequest, 0, params.QueueSize),
	}, nil
}

func (w *World) Params() Params { return w.params }

// SetGravity changes G for subsequent ticks.
func (w *World) SetGravity(g float64) error {
	if g < 0 {
		return fmt.Errorf("%w: gravity must be non-negative, got %f", ErrParameterBounds, g)
	}
	w.params.G = g
	return nil
}

func (w *World) TickCount() uint64 { return w.tick }

// Body returns the live body behind h.
func (w *World) Body(h Handle) (*Body, bool) {
	if !w.pool.alive(h) {
		return nil, false
	}
	b, ok := w.index[h]
	if !ok || !b.Active {
		return nil, false
	}
	return b, true
}

// Bodies returns the body collection in spawn order. Callers must not
// retain or reorder it.
func (w *World) Bodies() []*Body { return w.bodies }

func (w *World) Projectiles() []*Projectile { return w.projectiles }

func (w *World) Cannons() []*Cannon { return w.cannons }

// ActiveBodies counts bodies still taking part in the simulation.
func (w *World) ActiveBodies() int {
	n := 0
	for _, b := range w.bodies {
		if b.Active {
			n++
		}
	}
	return n
}

func (w *World) activeProjectiles() int {
	n := 0
	for _, p := range w.projectiles {
		if p.Active {
			n++
		}
	}
	return n
}

// Enqueue schedules req for the start of the next tick. A full queue drops
// the new request.
func (w *World) Enqueue(req SpawnRequest) error {
	if len(w.queue) >= w.params.QueueSize {
		w.log.Warn("spawn request dropped",
			zap.String("label", req.Label),
			zap.Int("queued", len(w.queue)),
			zap.Error(ErrQueueFull))
		return ErrQueueFull
	}
	w.queue = append(w.queue, req)
	return nil
}

// Spawn validates and adds req immediately. Either the whole group is added
// or none of it is.
func (w *World) Spawn(req SpawnRequest) ([]Handle, error) {
	built := make([]*Body, len(req.Bodies))
	for i, p := range req.Bodies {
		if p.Health == 0 {
			p.Health = w.params.Health
		}
		b, err := NewBody(p)
		if err != nil {
			return nil, &SpawnError{Index: i, Wrapped: err}
		}
		built[i] = b
	}
	for i, c := range req.Cannons {
		if c.Parent < 0 || c.Parent >= len(built) {
			return nil, &SpawnError{Index: i, Wrapped: ErrInvalidParent}
		}
	}

	if active := w.ActiveBodies(); active+len(built) > w.params.MaxBodies {
		w.log.Warn("spawn rejected at body cap",
			zap.String("label", req.Label),
			zap.Int("active", active),
			zap.Int("requested", len(built)),
			zap.Int("max", w.params.MaxBodies))
		return nil, ErrCapacity
	}

	handles := make([]Handle, len(built))
	for i, b := range built {
		b.ID = w.pool.create()
		w.index[b.ID] = b
		w.bodies = append(w.bodies, b)
		handles[i] = b.ID
	}
	for _, c := range req.Cannons {
		parent := built[c.Parent]
		cn := &Cannon{
			Parent: parent.ID,
			Angle:  c.Angle,
			Width:  orDefault(c.Width, DefaultCannonWidth),
			Height: orDefault(c.Height, DefaultCannonHeight),
		}
		cn.Update(parent)
		w.cannons = append(w.cannons, cn)
	}
	return handles, nil
}

// Deactivate takes the body behind h out of the simulation immediately. It
// contributes no force from this point and is pruned at the end of the
// current or next tick.
func (w *World) Deactivate(h Handle) error {
	b, ok := w.Body(h)
	if !ok {
		return ErrStaleHandle
	}
	b.Active = false
	return nil
}

// Fire launches one projectile from every cannon whose parent is alive.
func (w *World) Fire() (int, error) {
	fired := 0
	active := w.activeProjectiles()
	for _, c := range w.cannons {
		parent, ok := w.Body(c.Parent)
		if !ok {
			continue
		}
		if active >= w.params.MaxProjectiles {
			w.log.Warn("projectile dropped at cap", zap.Int("max", w.params.MaxProjectiles))
			return fired, ErrCapacity
		}
		p, err := newProjectile(BodyParams{
			Pos:     c.Muzzle(parent, w.params.ProjectileRadius),
			Vel:     vecmath.Polar(w.params.ProjectileSpeed, c.Angle),
			Density: w.params.ProjectileDensity,
			Radius:  w.params.ProjectileRadius,
			Color:   parent.Color,
		}, w.params.ProjectileLifetime, parent.ID)
		if err != nil {
			return fired, err
		}
		p.ID = w.pool.create()
		w.projectiles = append(w.projectiles, p)
		active++
		fired++
	}
	return fired, nil
}

// armedCannons counts the cannons whose parent is alive.
func (w *World) armedCannons() int {
	n := 0
	for _, c := range w.cannons {
		if _, ok := w.Body(c.Parent); ok {
			n++
		}
	}
	return n
}

// Anchor returns the first live invulnerable body, if any.
func (w *World) Anchor() (*Body, bool) {
	for _, b := range w.bodies {
		if b.Active && b.Invulnerable {
			return b, true
		}
	}
	return nil, false
}

// Tick advances the world by one fixed step of Params.Dt.
func (w *World) Tick(in Intent) TickReport {
	if w.ticking {
		return TickReport{Tick: w.tick, Err: ErrTickInProgress}
	}
	w.ticking = true
	defer func() { w.ticking = false }()

	w.tick++
	rep := TickReport{Tick: w.tick}

	w.drainQueue(&rep)

	if in.Fire {
		n, err := w.Fire()
		rep.Fired = n
		if err != nil {
			rep.Dropped += w.armedCannons() - n
		}
	}

	if in.Steer {
		if a, ok := w.Anchor(); ok {
			a.Pos = in.Cursor
			a.Vel = vecmath.Vec2{}
		}
	}

	AccumulateForces(w.bodies, w.projectiles, w.params.G, w.params.MinDistance)

	for _, b := range w.bodies {
		if b.Active {
			Integrate(b, w.params.Dt)
		}
	}
	for _, p := range w.projectiles {
		if p.Active {
			Integrate(&p.Body, w.params.Dt)
		}
	}
	rep.NonFinite = w.dropNonFinite()

	for _, c := range w.cannons {
		if parent, ok := w.Body(c.Parent); ok {
			c.Update(parent)
		}
	}

	for _, p := range w.projectiles {
		if !p.Active {
			continue
		}
		p.age()
		if !p.Active {
			rep.Expired++
		}
	}

	hits := ResolveCollisions(w.projectiles, w.bodies, w.params.Damage)
	rep.Hits = len(hits)
	for _, h := range hits {
		if h.Killed {
			w.log.Info("body destroyed",
				zap.Uint64("tick", w.tick),
				zap.Stringer("body", h.Target.ID))
		}
	}

	rep.Destroyed = w.prune()
	return rep
}

func (w *World) drainQueue(rep *TickReport) {
	if len(w.queue) == 0 {
		return
	}
	for _, req := range w.queue {
		handles, err := w.Spawn(req)
		if err != nil {
			rep.Dropped++
			w.log.Debug("queued spawn failed", zap.String("label", req.Label), zap.Error(err))
			continue
		}
		rep.Spawned += len(handles)
	}
	w.queue = w.queue[:0]
}

func (w *World) dropNonFinite() int {
	n := 0
	for _, b := range w.bodies {
		if b.Active && !b.finite() {
			b.Active = false
			n++
			w.log.Warn("non-finite body state, deactivating",
				zap.Stringer("body", b.ID), zap.Uint64("tick", w.tick))
		}
	}
	for _, p := range w.projectiles {
		if p.Active && !p.finite() {
			p.Active = false
			n++
			w.log.Warn("non-finite projectile state, deactivating", zap.Uint64("tick", w.tick))
		}
	}
	return n
}

// prune removes inactive entities in place, keeping the order of the
// survivors, and drops every cannon whose parent is gone. It returns the
// number of bodies removed.
func (w *World) prune() int {
	removed := 0
	kept := w.bodies[:0]
	for _, b := range w.bodies {
		if b.Active {
			kept = append(kept, b)
			continue
		}
		delete(w.index, b.ID)
		w.pool.release(b.ID)
		removed++
	}
	clear(w.bodies[len(kept):])
	w.bodies = kept

	live := w.projectiles[:0]
	for _, p := range w.projectiles {
		if p.Active {
			live = append(live, p)
			continue
		}
		w.pool.release(p.ID)
	}
	clear(w.projectiles[len(live):])
	w.projectiles = live

	cannons := w.cannons[:0]
	for _, c := range w.cannons {
		if _, ok := w.Body(c.Parent); ok {
			cannons = append(cannons, c)
		}
	}
	clear(w.cannons[len(cannons):])
	w.cannons = cannons

	return removed
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
