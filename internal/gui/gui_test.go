package gui

import (
	"testing"

	"github.com/san-kum/gravsim/internal/camera"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/input"
	"github.com/san-kum/gravsim/internal/vecmath"
	"go.uber.org/zap/zaptest"
)

func testApp(t *testing.T) *App {
	t.Helper()
	w, err := gravity.NewWorld(gravity.DefaultParams(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	return NewApp(Options{
		World:      w,
		Camera:     camera.New(),
		Tracker:    input.NewTracker(input.DefaultSettings()),
		Scenario:   "test",
		FullHealth: gravity.DefaultHealth,
		Log:        zaptest.NewLogger(t),
	})
}

func TestTickRate(t *testing.T) {
	tests := []struct {
		dt   float64
		want int
	}{
		{0.01, 100},
		{1.0 / 60, 60},
		{5, 1},
	}
	for _, tt := range tests {
		if got := tickRate(tt.dt); got != tt.want {
			t.Errorf("tickRate(%v) = %d, want %d", tt.dt, got, tt.want)
		}
	}
}

func TestRings(t *testing.T) {
	if rs := rings(1); len(rs) != 1 || rs[0].Radius != 1 {
		t.Errorf("small body rings = %v", rs)
	}

	rs := rings(16)
	if len(rs) != gradientSteps {
		t.Fatalf("got %d rings, want %d", len(rs), gradientSteps)
	}
	if rs[0].Radius != 16 || rs[0].T != 1 {
		t.Errorf("outer ring = %+v, want the rim", rs[0])
	}
	for i := 1; i < len(rs); i++ {
		if rs[i].Radius >= rs[i-1].Radius {
			t.Errorf("ring %d does not shrink: %v >= %v", i, rs[i].Radius, rs[i-1].Radius)
		}
	}
}

func TestApp_AdvanceSpawnsAndTicks(t *testing.T) {
	a := testApp(t)

	// right click at the window center drops a satellite at the origin
	a.Tracker.MouseDown(input.ButtonRight, vecmath.V(windowWidth/2, windowHeight/2))
	a.advance()

	if a.World.TickCount() != 1 {
		t.Fatalf("tick count = %d, want 1", a.World.TickCount())
	}
	bodies := a.World.Frame().Bodies
	if len(bodies) != 1 {
		t.Fatalf("got %d bodies, want 1", len(bodies))
	}
	if bodies[0].Pos.Dist(vecmath.V(0, 0)) > 1e-9 {
		t.Errorf("satellite at %v, want the origin", bodies[0].Pos)
	}
}

func TestApp_Paused(t *testing.T) {
	a := testApp(t)
	a.Paused = true
	a.Tracker.MouseDown(input.ButtonRight, vecmath.V(10, 10))
	a.advance()

	if a.World.TickCount() != 0 {
		t.Error("paused app must not tick")
	}
	a.Paused = false
	a.advance()
	if len(a.World.Frame().Bodies) != 1 {
		t.Error("spawn queued while paused should land on the next tick")
	}
}

func TestApp_HeldKeysPan(t *testing.T) {
	a := testApp(t)
	a.Tracker.KeyDown(input.KeyRight)
	a.advance()
	a.advance()
	want := 2 * camera.DefaultPanSpeed
	if a.Camera.Center.X != want {
		t.Errorf("center x = %v, want %v after two held ticks", a.Camera.Center.X, want)
	}
	a.Tracker.KeyUp(input.KeyRight)
	a.advance()
	if a.Camera.Center.X != want {
		t.Error("camera kept panning after key release")
	}
}

func TestApp_GravityAndFocus(t *testing.T) {
	a := testApp(t)
	a.adjustGravity(gravityStep)
	if g := a.World.Params().G; g != gravity.DefaultParams().G+gravityStep {
		t.Errorf("G = %v", g)
	}
	a.adjustGravity(-100)
	if g := a.World.Params().G; g != gravity.DefaultParams().G+gravityStep {
		t.Errorf("invalid gravity accepted: %v", g)
	}

	if _, err := a.World.Spawn(gravity.SpawnRequest{Bodies: []gravity.BodyParams{
		{Pos: vecmath.V(30, 40), Density: 1, Radius: 2},
		{Pos: vecmath.V(-5, 7), Density: 1, Radius: 2, Invulnerable: true},
	}}); err != nil {
		t.Fatal(err)
	}
	a.focus()
	if a.Camera.Center != vecmath.V(-5, 7) {
		t.Errorf("center = %v, want the anchor", a.Camera.Center)
	}
}

func TestApp_Layout(t *testing.T) {
	a := testApp(t)
	w, h := a.Layout(800, 600)
	if w != 800 || h != 600 || a.viewport.W != 800 || a.viewport.H != 600 {
		t.Errorf("layout = %dx%d viewport %+v", w, h, a.viewport)
	}
}
