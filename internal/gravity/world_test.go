package gravity

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/vecmath"
	"go.uber.org/zap/zaptest"
)

func newTestWorld(t *testing.T, mutate func(*Params)) *World {
	t.Helper()
	p := DefaultParams()
	if mutate != nil {
		mutate(&p)
	}
	w, err := NewWorld(p, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func mustSpawn(t *testing.T, w *World, req SpawnRequest) []Handle {
	t.Helper()
	hs, err := w.Spawn(req)
	if err != nil {
		t.Fatalf("Spawn(%s): %v", req.Label, err)
	}
	return hs
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr bool
	}{
		{"defaults", func(*Params) {}, false},
		{"zero gravity", func(p *Params) { p.G = 0 }, false},
		{"negative gravity", func(p *Params) { p.G = -1 }, true},
		{"zero dt", func(p *Params) { p.Dt = 0 }, true},
		{"zero min distance", func(p *Params) { p.MinDistance = 0 }, true},
		{"zero body cap", func(p *Params) { p.MaxBodies = 0 }, true},
		{"zero queue", func(p *Params) { p.QueueSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestWorld_SpawnInvalid(t *testing.T) {
	w := newTestWorld(t, nil)

	_, err := w.Spawn(SpawnRequest{Label: "bad", Bodies: []BodyParams{
		{Density: 1, Radius: 1},
		{Density: 1, Radius: 0},
	}})

	var se *SpawnError
	if !errors.As(err, &se) {
		t.Fatalf("expected SpawnError, got %v", err)
	}
	if se.Index != 1 {
		t.Errorf("SpawnError.Index = %d, want 1", se.Index)
	}
	if !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("expected ErrInvalidRadius in chain, got %v", err)
	}
	if len(w.Bodies()) != 0 {
		t.Errorf("failed group must add nothing, got %d bodies", len(w.Bodies()))
	}
}

func TestWorld_SpawnNegativeHealth(t *testing.T) {
	w := newTestWorld(t, nil)
	_, err := w.Spawn(SpawnRequest{Bodies: []BodyParams{{Density: 1, Radius: 5, Health: -5}}})
	if !errors.Is(err, ErrInvalidHealth) {
		t.Fatalf("Spawn error = %v, want ErrInvalidHealth", err)
	}
	w.Tick(Intent{})
	if len(w.Bodies()) != 0 {
		t.Errorf("body with negative health was spawned")
	}
}

func TestWorld_SpawnInvalidParent(t *testing.T) {
	w := newTestWorld(t, nil)
	_, err := w.Spawn(SpawnRequest{
		Bodies:  []BodyParams{{Density: 1, Radius: 1}},
		Cannons: []CannonParams{{Parent: 3}},
	})
	if !errors.Is(err, ErrInvalidParent) {
		t.Errorf("expected ErrInvalidParent, got %v", err)
	}
}

func TestWorld_BodyCap(t *testing.T) {
	w := newTestWorld(t, func(p *Params) { p.MaxBodies = 2 })

	_, err := w.Spawn(SpawnRequest{Bodies: []BodyParams{
		{Pos: vecmath.V(0, 0), Density: 1, Radius: 1},
		{Pos: vecmath.V(10, 0), Density: 1, Radius: 1},
		{Pos: vecmath.V(20, 0), Density: 1, Radius: 1},
	}})
	if !errors.Is(err, ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}
	if len(w.Bodies()) != 0 {
		t.Errorf("over-cap group must add nothing, got %d", len(w.Bodies()))
	}

	// queued requests past the cap are dropped, earlier ones survive
	for i := 0; i < 3; i++ {
		if err := w.Enqueue(SpawnRequest{Bodies: []BodyParams{
			{Pos: vecmath.V(float64(i)*100, 0), Density: 1, Radius: 1},
		}}); err != nil {
			t.Fatalf("Enqueue %d: %v", i, err)
		}
	}
	rep := w.Tick(Intent{})
	if rep.Spawned != 2 || rep.Dropped != 1 {
		t.Errorf("spawned=%d dropped=%d, want 2 and 1", rep.Spawned, rep.Dropped)
	}
	if w.ActiveBodies() != 2 {
		t.Errorf("active bodies = %d, want 2", w.ActiveBodies())
	}
}

func TestWorld_QueueFull(t *testing.T) {
	w := newTestWorld(t, func(p *Params) { p.QueueSize = 2 })
	req := SpawnRequest{Bodies: []BodyParams{{Density: 1, Radius: 1}}}

	if err := w.Enqueue(req); err != nil {
		t.Fatal(err)
	}
	if err := w.Enqueue(req); err != nil {
		t.Fatal(err)
	}
	if err := w.Enqueue(req); !errors.Is(err, ErrQueueFull) {
		t.Errorf("third Enqueue error = %v, want ErrQueueFull", err)
	}

	w.Tick(Intent{})
	if err := w.Enqueue(req); err != nil {
		t.Errorf("queue should be empty after a tick, got %v", err)
	}
}

func TestWorld_HealthZeroIsPruned(t *testing.T) {
	w := newTestWorld(t, func(p *Params) { p.G = 0 })
	hs := mustSpawn(t, w, SpawnRequest{Bodies: []BodyParams{
		{Pos: vecmath.V(0, 0), Density: 1, Radius: 5, Health: 10},
	}})

	p, err := newProjectile(BodyParams{Pos: vecmath.V(1, 0), Density: 1, Radius: 2}, 100, 0)
	if err != nil {
		t.Fatal(err)
	}
	w.projectiles = append(w.projectiles, p)

	rep := w.Tick(Intent{})

	if rep.Hits != 1 || rep.Destroyed != 1 {
		t.Errorf("hits=%d destroyed=%d, want 1 and 1", rep.Hits, rep.Destroyed)
	}
	if _, ok := w.Body(hs[0]); ok {
		t.Error("destroyed body still resolvable")
	}
	if len(w.Bodies()) != 0 || len(w.Projectiles()) != 0 {
		t.Errorf("collections not pruned: %d bodies, %d projectiles", len(w.Bodies()), len(w.Projectiles()))
	}
	if f := w.Frame(); len(f.Bodies) != 0 {
		t.Errorf("frame still shows %d bodies", len(f.Bodies))
	}
}

func TestWorld_DeactivateStopsForce(t *testing.T) {
	w := newTestWorld(t, nil)
	hs := mustSpawn(t, w, SpawnRequest{Bodies: []BodyParams{
		{Pos: vecmath.V(0, 0), Density: 1, Radius: 1},
		{Pos: vecmath.V(10, 0), Density: 10, Radius: 4},
	}})

	if err := w.Deactivate(hs[1]); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	w.Tick(Intent{})

	a, ok := w.Body(hs[0])
	if !ok {
		t.Fatal("survivor missing")
	}
	if a.Vel != (vecmath.Vec2{}) || a.Pos != (vecmath.Vec2{}) {
		t.Errorf("deactivated body still pulls: pos=%v vel=%v", a.Pos, a.Vel)
	}
	if err := w.Deactivate(hs[1]); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("second Deactivate error = %v, want ErrStaleHandle", err)
	}
}

func TestWorld_PruneKeepsOrder(t *testing.T) {
	w := newTestWorld(t, func(p *Params) { p.G = 0 })
	hs := mustSpawn(t, w, SpawnRequest{Bodies: []BodyParams{
		{Pos: vecmath.V(0, 0), Density: 1, Radius: 1},
		{Pos: vecmath.V(100, 0), Density: 1, Radius: 1},
		{Pos: vecmath.V(200, 0), Density: 1, Radius: 1},
	}})

	_ = w.Deactivate(hs[1])
	w.Tick(Intent{})

	bodies := w.Bodies()
	if len(bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(bodies))
	}
	if bodies[0].ID != hs[0] || bodies[1].ID != hs[2] {
		t.Errorf("prune reordered survivors: %v %v", bodies[0].ID, bodies[1].ID)
	}

	fresh := mustSpawn(t, w, SpawnRequest{Bodies: []BodyParams{{Pos: vecmath.V(300, 0), Density: 1, Radius: 1}}})
	if fresh[0].Index() != hs[1].Index() {
		t.Errorf("expected slot %d reused, got %d", hs[1].Index(), fresh[0].Index())
	}
	if _, ok := w.Body(hs[1]); ok {
		t.Error("stale handle resolves to the body that reused its slot")
	}
}

func TestWorld_CannonDroppedWithParent(t *testing.T) {
	w := newTestWorld(t, func(p *Params) { p.G = 0 })
	hs := mustSpawn(t, w, SpawnRequest{
		Bodies:  []BodyParams{{Pos: vecmath.V(0, 0), Density: 1, Radius: 5}},
		Cannons: []CannonParams{{Parent: 0}, {Parent: 0, Angle: math.Pi}},
	})
	if len(w.Cannons()) != 2 {
		t.Fatalf("expected 2 cannons, got %d", len(w.Cannons()))
	}

	_ = w.Deactivate(hs[0])
	w.Tick(Intent{Fire: true})

	if len(w.Cannons()) != 0 {
		t.Errorf("cannons of a dead parent survived prune: %d", len(w.Cannons()))
	}
	if len(w.Projectiles()) != 0 {
		t.Errorf("dead parent fired %d projectiles", len(w.Projectiles()))
	}
}

func TestWorld_FireFromMuzzle(t *testing.T) {
	w := newTestWorld(t, func(p *Params) { p.G = 0 })
	hs := mustSpawn(t, w, SpawnRequest{
		Bodies:  []BodyParams{{Pos: vecmath.V(0, 0), Density: 1, Radius: 5, Color: "red"}},
		Cannons: []CannonParams{{Parent: 0}},
	})

	c := w.Cannons()[0]
	if c.Pos != vecmath.V(0, 5) {
		t.Errorf("cannon pos = %v, want (0, 5)", c.Pos)
	}

	n, err := w.Fire()
	if err != nil || n != 1 {
		t.Fatalf("Fire() = %d, %v", n, err)
	}
	p := w.Projectiles()[0]
	if p.Pos != vecmath.V(0, 8) {
		t.Errorf("projectile spawned at %v, want (0, 8)", p.Pos)
	}
	if p.Vel != vecmath.V(0, 500) {
		t.Errorf("projectile velocity = %v, want (0, 500)", p.Vel)
	}
	if p.Source != hs[0] || p.Color != "red" {
		t.Errorf("projectile source=%v color=%q", p.Source, p.Color)
	}
}

func TestWorld_NoSelfHit(t *testing.T) {
	w := newTestWorld(t, nil)
	hs := mustSpawn(t, w, SpawnRequest{
		Bodies:  []BodyParams{{Pos: vecmath.V(0, 0), Density: 1, Radius: 5}},
		Cannons: []CannonParams{{Parent: 0}, {Parent: 0, Angle: math.Pi / 2}},
	})

	for i := 0; i < 50; i++ {
		if rep := w.Tick(Intent{Fire: true}); rep.Hits != 0 {
			t.Fatalf("tick %d: %d projectiles hit their own parent", i, rep.Hits)
		}
	}
	b, ok := w.Body(hs[0])
	if !ok || b.Health != DefaultHealth {
		t.Errorf("shooter damaged by its own fire")
	}
}

func TestWorld_ProjectileCap(t *testing.T) {
	w := newTestWorld(t, func(p *Params) { p.MaxProjectiles = 1 })
	mustSpawn(t, w, SpawnRequest{
		Bodies:  []BodyParams{{Density: 1, Radius: 5}},
		Cannons: []CannonParams{{Parent: 0}, {Parent: 0, Angle: math.Pi}},
	})

	n, err := w.Fire()
	if n != 1 || !errors.Is(err, ErrCapacity) {
		t.Errorf("Fire() = %d, %v; want 1, ErrCapacity", n, err)
	}
}

func TestWorld_VolleyDroppedAtCap(t *testing.T) {
	w := newTestWorld(t, func(p *Params) { p.MaxProjectiles = 1 })
	mustSpawn(t, w, SpawnRequest{
		Bodies: []BodyParams{{Density: 1, Radius: 5}},
		Cannons: []CannonParams{
			{Parent: 0},
			{Parent: 0, Angle: math.Pi / 2},
			{Parent: 0, Angle: math.Pi},
		},
	})

	rep := w.Tick(Intent{Fire: true})
	if rep.Fired != 1 || rep.Dropped != 2 {
		t.Errorf("fired=%d dropped=%d, want 1 and 2", rep.Fired, rep.Dropped)
	}
}

func TestWorld_ProjectileExpires(t *testing.T) {
	w := newTestWorld(t, func(p *Params) {
		p.G = 0
		p.ProjectileLifetime = 3
	})
	mustSpawn(t, w, SpawnRequest{
		Bodies:  []BodyParams{{Density: 1, Radius: 5}},
		Cannons: []CannonParams{{Parent: 0}},
	})
	if _, err := w.Fire(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		w.Tick(Intent{})
	}
	if len(w.Projectiles()) != 1 {
		t.Fatalf("projectile gone before its lifetime")
	}
	rep := w.Tick(Intent{})
	if rep.Expired != 1 || len(w.Projectiles()) != 0 {
		t.Errorf("expired=%d remaining=%d, want 1 and 0", rep.Expired, len(w.Projectiles()))
	}
}

func TestWorld_InvulnerableConsumesProjectile(t *testing.T) {
	w := newTestWorld(t, func(p *Params) { p.G = 0 })
	hs := mustSpawn(t, w, SpawnRequest{Bodies: []BodyParams{
		{Pos: vecmath.V(0, 0), Density: 1, Radius: 5, Invulnerable: true},
	}})
	p, _ := newProjectile(BodyParams{Pos: vecmath.V(2, 0), Density: 1, Radius: 1}, 100, 0)
	w.projectiles = append(w.projectiles, p)

	rep := w.Tick(Intent{})

	if rep.Hits != 1 || len(w.Projectiles()) != 0 {
		t.Errorf("hits=%d projectiles=%d, want 1 and 0", rep.Hits, len(w.Projectiles()))
	}
	b, ok := w.Body(hs[0])
	if !ok || b.Health != DefaultHealth {
		t.Error("invulnerable body took damage")
	}
}

func TestWorld_SteerAnchor(t *testing.T) {
	w := newTestWorld(t, nil)
	hs := mustSpawn(t, w, SpawnRequest{Bodies: []BodyParams{
		{Pos: vecmath.V(0, 0), Vel: vecmath.V(3, 3), Density: 1, Radius: 5, Invulnerable: true},
	}})

	w.Tick(Intent{Steer: true, Cursor: vecmath.V(50, 50)})

	b, _ := w.Body(hs[0])
	if b.Pos != vecmath.V(50, 50) || b.Vel != (vecmath.Vec2{}) {
		t.Errorf("anchor pos=%v vel=%v, want pinned at (50, 50)", b.Pos, b.Vel)
	}
}

func TestWorld_DropsNonFinite(t *testing.T) {
	w := newTestWorld(t, nil)
	mustSpawn(t, w, SpawnRequest{Bodies: []BodyParams{{Density: 1, Radius: 1}}})
	w.Bodies()[0].Vel.X = math.Inf(1)

	rep := w.Tick(Intent{})

	if rep.NonFinite != 1 || rep.Destroyed != 1 {
		t.Errorf("nonfinite=%d destroyed=%d, want 1 and 1", rep.NonFinite, rep.Destroyed)
	}
	if len(w.Bodies()) != 0 {
		t.Error("non-finite body not removed")
	}
}

func TestWorld_TickReentry(t *testing.T) {
	w := newTestWorld(t, nil)
	w.ticking = true
	if rep := w.Tick(Intent{}); !errors.Is(rep.Err, ErrTickInProgress) {
		t.Errorf("nested tick error = %v, want ErrTickInProgress", rep.Err)
	}
	if w.TickCount() != 0 {
		t.Errorf("rejected tick advanced the counter to %d", w.TickCount())
	}
}

func TestWorld_Deterministic(t *testing.T) {
	run := func() Frame {
		w := newTestWorld(t, nil)
		mustSpawn(t, w, SpawnRequest{Bodies: []BodyParams{
			{Pos: vecmath.V(0, 0), Density: 4, Radius: 20},
			{Pos: vecmath.V(-150, 0), Vel: vecmath.V(0, 100), Density: 3, Radius: 10},
			{Pos: vecmath.V(-165, 0), Vel: vecmath.V(0, 135), Density: 1, Radius: 1},
		}})
		for i := 0; i < 1000; i++ {
			w.Tick(Intent{})
		}
		return w.Frame()
	}

	a, b := run(), run()
	if len(a.Bodies) != len(b.Bodies) {
		t.Fatalf("body counts differ: %d vs %d", len(a.Bodies), len(b.Bodies))
	}
	for i := range a.Bodies {
		if a.Bodies[i].Pos != b.Bodies[i].Pos || a.Bodies[i].Vel != b.Bodies[i].Vel {
			t.Errorf("body %d diverged: %v vs %v", i, a.Bodies[i].Pos, b.Bodies[i].Pos)
		}
	}
}

func TestWorld_TwoBodyOrbit(t *testing.T) {
	w := newTestWorld(t, nil)

	// relative circular speed is sqrt(G·(M+m)) under a 1/d force, whatever d is
	primary, satellite := 10.0, 1.0
	v := math.Sqrt(w.Params().G * (primary + satellite))
	hs := mustSpawn(t, w, SpawnRequest{Bodies: []BodyParams{
		{Pos: vecmath.V(0, 0), Density: DensityForMass(primary, 5), Radius: 5},
		{Pos: vecmath.V(100, 0), Vel: vecmath.V(0, v), Density: DensityForMass(satellite, 1), Radius: 1},
	}})

	minSep, maxSep, minY := math.Inf(1), math.Inf(-1), math.Inf(1)
	for i := 0; i < 20000; i++ {
		w.Tick(Intent{})
		a, _ := w.Body(hs[0])
		b, _ := w.Body(hs[1])
		rel := b.Pos.Sub(a.Pos)
		sep := rel.Len()
		minSep = math.Min(minSep, sep)
		maxSep = math.Max(maxSep, sep)
		minY = math.Min(minY, rel.Y)
	}

	if minSep < 95 || maxSep > 105 {
		t.Errorf("orbit not bounded: separation in [%.3f, %.3f]", minSep, maxSep)
	}
	if minY > -50 {
		t.Errorf("satellite never swung past the primary (min rel y %.3f)", minY)
	}
}

func TestFrame_CopiesActive(t *testing.T) {
	w := newTestWorld(t, nil)
	hs := mustSpawn(t, w, SpawnRequest{
		Bodies: []BodyParams{
			{Pos: vecmath.V(0, 0), Density: 1, Radius: 3},
			{Pos: vecmath.V(50, 0), Density: 1, Radius: 3},
		},
		Cannons: []CannonParams{{Parent: 1}},
	})
	_ = w.Deactivate(hs[0])

	f := w.Frame()
	if len(f.Bodies) != 1 || f.Bodies[0].ID != hs[1] {
		t.Fatalf("frame bodies = %+v", f.Bodies)
	}
	if len(f.Cannons) != 1 || f.Cannons[0].Parent != hs[1] {
		t.Errorf("frame cannons = %+v", f.Cannons)
	}
	if _, ok := f.Find(hs[0]); ok {
		t.Error("Find returned an inactive body")
	}

	f.Bodies[0].Pos = vecmath.V(999, 999)
	b, _ := w.Body(hs[1])
	if b.Pos == vecmath.V(999, 999) {
		t.Error("frame shares memory with the world")
	}
}
