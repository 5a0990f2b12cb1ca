// Package input turns raw key and mouse events from a frontend into the
// per-tick intent consumed by the physics core and the camera.
package input

import (
	"math"

	"github.com/san-kum/gravsim/internal/camera"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/scenario"
	"github.com/san-kum/gravsim/internal/vecmath"
)

type Settings struct {
	// SatelliteSize and SatelliteDensity shape right-click satellites.
	SatelliteSize    float64
	SatelliteDensity float64
	// DragDensity is the density of bodies spawned by a left drag.
	DragDensity float64
	// MinSpawnRadius floors the radius of a drag-spawned body, so a plain
	// click still spawns something.
	MinSpawnRadius float64
}

func DefaultSettings() Settings {
	return Settings{
		SatelliteSize:    1,
		SatelliteDensity: 0.5,
		DragDensity:      3,
		MinSpawnRadius:   2,
	}
}

type spawnKind int

const (
	spawnDrag spawnKind = iota
	spawnSatellite
	spawnPreset
)

// pending is a spawn gesture recorded in view coordinates. It is converted
// to world coordinates with the camera in effect at snapshot time.
type pending struct {
	kind   spawnKind
	start  vecmath.Vec2
	end    vecmath.Vec2
	preset string
}

// Tracker accumulates input events between snapshots. It is not safe for
// concurrent use; frontends feed it from their event loop.
type Tracker struct {
	settings Settings

	held  map[Key]bool
	taps  map[Key]int
	fire  bool
	wheel int

	mouse     vecmath.Vec2
	dragging  bool
	dragStart vecmath.Vec2
	middle    bool

	spawns []pending
}

func NewTracker(s Settings) *Tracker {
	return &Tracker{
		settings: s,
		held:     make(map[Key]bool),
		taps:     make(map[Key]int),
	}
}

// KeyDown marks k held. Frontends with key-up events use KeyDown/KeyUp.
func (t *Tracker) KeyDown(k Key) {
	if k == KeyUnknown {
		return
	}
	if !t.held[k] {
		t.press(k)
	}
	t.held[k] = true
}

func (t *Tracker) KeyUp(k Key) {
	delete(t.held, k)
}

// Tap records a single press of k. Terminals only report presses, with key
// repeat for held keys, so each tap counts as one step.
func (t *Tracker) Tap(k Key) {
	if k == KeyUnknown {
		return
	}
	t.taps[k]++
	t.press(k)
}

func (t *Tracker) press(k Key) {
	if k == KeyEnter {
		t.fire = true
	}
	if name, ok := presetKeys[k]; ok {
		t.spawns = append(t.spawns, pending{kind: spawnPreset, start: t.mouse, preset: name})
	}
}

// MouseMove records the cursor position in view coordinates.
func (t *Tracker) MouseMove(p vecmath.Vec2) {
	t.mouse = p
}

func (t *Tracker) MouseDown(b Button, p vecmath.Vec2) {
	t.mouse = p
	switch b {
	case ButtonLeft:
		t.dragging = true
		t.dragStart = p
	case ButtonRight:
		t.spawns = append(t.spawns, pending{kind: spawnSatellite, start: p})
	case ButtonMiddle:
		t.middle = true
	}
}

func (t *Tracker) MouseUp(b Button, p vecmath.Vec2) {
	t.mouse = p
	switch b {
	case ButtonLeft:
		if t.dragging {
			t.spawns = append(t.spawns, pending{kind: spawnDrag, start: t.dragStart, end: p})
			t.dragging = false
		}
	case ButtonMiddle:
		t.middle = false
	}
}

// Wheel zooms by delta steps, positive to zoom in.
func (t *Tracker) Wheel(delta int) {
	t.wheel += delta
}

// Snapshot is the input state for one tick, in world coordinates.
type Snapshot struct {
	Motion camera.Motion
	Fire   bool
	Steer  bool
	Cursor vecmath.Vec2

	// Dragging is set while a left drag is in progress; DragStart and
	// DragRadius describe the body it would spawn.
	Dragging   bool
	DragStart  vecmath.Vec2
	DragRadius float64
}

// Intent is the part of the snapshot the physics core reads.
func (s Snapshot) Intent() gravity.Intent {
	return gravity.Intent{Fire: s.Fire, Steer: s.Steer, Cursor: s.Cursor}
}

// Snapshot consumes the one-shot events gathered since the previous call and
// returns the current intent together with the spawn requests the gestures
// produced, in the order they happened. Presets that fail to build are
// skipped.
func (t *Tracker) Snapshot(cam *camera.Camera, vp camera.Viewport) (Snapshot, []gravity.SpawnRequest) {
	s := Snapshot{
		Fire:   t.fire,
		Steer:  t.middle,
		Cursor: cam.ViewToWorld(t.mouse, vp),
		Motion: camera.Motion{
			PanX: t.axis(KeyLeft, KeyRight),
			PanY: t.axis(KeyUp, KeyDown),
			Zoom: t.steps(KeyPageUp) - t.steps(KeyPageDown) + t.wheel,
		},
	}
	if t.dragging {
		s.Dragging = true
		s.DragStart = cam.ViewToWorld(t.dragStart, vp)
		s.DragRadius = t.dragRadius(cam, t.dragStart, t.mouse)
	}

	var reqs []gravity.SpawnRequest
	for _, p := range t.spawns {
		if req, ok := t.request(p, cam, vp); ok {
			reqs = append(reqs, req)
		}
	}

	t.fire = false
	t.wheel = 0
	t.spawns = t.spawns[:0]
	clear(t.taps)
	return s, reqs
}

func (t *Tracker) request(p pending, cam *camera.Camera, vp camera.Viewport) (gravity.SpawnRequest, bool) {
	at := cam.ViewToWorld(p.start, vp)
	switch p.kind {
	case spawnDrag:
		return gravity.SpawnRequest{Label: "drag", Bodies: []gravity.BodyParams{{
			Pos:     at,
			Density: t.settings.DragDensity,
			Radius:  t.dragRadius(cam, p.start, p.end),
		}}}, true
	case spawnSatellite:
		return gravity.SpawnRequest{Label: "satellite", Bodies: []gravity.BodyParams{{
			Pos:     at,
			Density: t.settings.SatelliteDensity,
			Radius:  t.settings.SatelliteSize,
		}}}, true
	case spawnPreset:
		req, err := scenario.Build(p.preset, at, 0)
		return req, err == nil
	}
	return gravity.SpawnRequest{}, false
}

func (t *Tracker) dragRadius(cam *camera.Camera, from, to vecmath.Vec2) float64 {
	return math.Max(cam.WorldLength(from.Dist(to)), t.settings.MinSpawnRadius)
}

// axis is -1 while only neg is active, 1 while only pos is, 0 otherwise.
func (t *Tracker) axis(neg, pos Key) int {
	n, p := t.steps(neg), t.steps(pos)
	switch {
	case n > p:
		return -1
	case p > n:
		return 1
	}
	return 0
}

func (t *Tracker) steps(k Key) int {
	n := t.taps[k]
	if t.held[k] && n == 0 {
		n = 1
	}
	return n
}
