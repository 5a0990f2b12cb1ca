package gui

import (
	"errors"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/san-kum/gravsim/internal/camera"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/input"
	"github.com/san-kum/gravsim/internal/vecmath"
	"go.uber.org/zap"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = color.RGBA{10, 10, 10, 255}    // Deep Black
	ColAccent  = color.RGBA{180, 180, 180, 255} // Soft White
	ColText    = color.RGBA{140, 140, 140, 255} // Neutral Gray
	ColTextDim = color.RGBA{60, 60, 60, 255}    // Dark Gray (Subtle)
)

const (
	windowWidth  = 1280
	windowHeight = 720
	gravityStep  = 0.5
)

// keyMap binds window keys to sandbox keys. They are reported held, so pan
// and zoom keep going while the key is down.
var keyMap = map[ebiten.Key]input.Key{
	ebiten.KeyArrowUp:    input.KeyUp,
	ebiten.KeyArrowDown:  input.KeyDown,
	ebiten.KeyArrowLeft:  input.KeyLeft,
	ebiten.KeyArrowRight: input.KeyRight,
	ebiten.KeyPageUp:     input.KeyPageUp,
	ebiten.KeyPageDown:   input.KeyPageDown,
	ebiten.KeyEqual:      input.KeyPageUp,
	ebiten.KeyMinus:      input.KeyPageDown,
	ebiten.KeyEnter:      input.KeyEnter,
	ebiten.KeyF:          input.KeyEnter,
	ebiten.KeyP:          input.KeyPlanetMoon,
	ebiten.KeyS:          input.KeySunPlanet,
}

var buttonMap = map[ebiten.MouseButton]input.Button{
	ebiten.MouseButtonLeft:   input.ButtonLeft,
	ebiten.MouseButtonRight:  input.ButtonRight,
	ebiten.MouseButtonMiddle: input.ButtonMiddle,
}

// Options configure the window.
type Options struct {
	World      *gravity.World
	Camera     *camera.Camera
	Tracker    *input.Tracker
	Scenario   string
	FullHealth int
	Log        *zap.Logger
}

// App is an ebiten game that owns its world. Update runs one tick, and
// ebiten calls it at the tick rate, so there is no second goroutine.
type App struct {
	World      *gravity.World
	Camera     *camera.Camera
	Tracker    *input.Tracker
	Scenario   string
	FullHealth int
	Log        *zap.Logger

	Paused  bool
	ShowHUD bool

	snapshot input.Snapshot
	last     gravity.TickReport
	hits     int
	killed   int
	viewport camera.Viewport
}

func NewApp(o Options) *App {
	log := o.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		World:      o.World,
		Camera:     o.Camera,
		Tracker:    o.Tracker,
		Scenario:   o.Scenario,
		FullHealth: o.FullHealth,
		Log:        log,
		ShowHUD:    true,
		viewport:   camera.Viewport{W: windowWidth, H: windowHeight},
	}
}

// Run opens the window and blocks until it is closed.
func Run(o Options) error {
	a := NewApp(o)
	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("gravsim :: " + a.Scenario)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tickRate(a.World.Params().Dt))

	err := ebiten.RunGame(a)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// tickRate is the number of ticks per second that runs the world in real
// time.
func tickRate(dt float64) int {
	return max(1, int(math.Round(1/dt)))
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.Paused = !a.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.focus()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		d := -gravityStep
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			d = gravityStep
		}
		a.adjustGravity(d)
	}

	for k, key := range keyMap {
		if inpututil.IsKeyJustPressed(k) {
			a.Tracker.KeyDown(key)
		}
		if inpututil.IsKeyJustReleased(k) {
			a.Tracker.KeyUp(key)
		}
	}

	mx, my := ebiten.CursorPosition()
	cursor := vecmath.V(float64(mx), float64(my))
	a.Tracker.MouseMove(cursor)
	for b, btn := range buttonMap {
		if inpututil.IsMouseButtonJustPressed(b) {
			a.Tracker.MouseDown(btn, cursor)
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			a.Tracker.MouseUp(btn, cursor)
		}
	}
	if _, wy := ebiten.Wheel(); wy > 0 {
		a.Tracker.Wheel(1)
	} else if wy < 0 {
		a.Tracker.Wheel(-1)
	}

	a.advance()
	return nil
}

// advance applies the gathered input and runs one tick unless paused.
func (a *App) advance() {
	snap, spawns := a.Tracker.Snapshot(a.Camera, a.viewport)
	a.snapshot = snap
	a.Camera.Apply(snap.Motion)

	for _, req := range spawns {
		if err := a.World.Enqueue(req); err != nil {
			a.Log.Debug("spawn not queued", zap.String("label", req.Label), zap.Error(err))
		}
	}
	if a.Paused {
		return
	}
	a.last = a.World.Tick(snap.Intent())
	a.hits += a.last.Hits
	a.killed += a.last.Destroyed
}

func (a *App) adjustGravity(d float64) {
	g := a.World.Params().G + d
	if err := a.World.SetGravity(g); err != nil {
		a.Log.Debug("gravity change rejected", zap.Float64("g", g), zap.Error(err))
	}
}

// focus centers the camera on the anchor, or the first body if the anchor
// is gone.
func (a *App) focus() {
	if b, ok := a.World.Anchor(); ok {
		a.Camera.Focus(b.Pos)
		return
	}
	for _, b := range a.World.Bodies() {
		if b.Active {
			a.Camera.Focus(b.Pos)
			return
		}
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.viewport = camera.Viewport{W: float64(outsideWidth), H: float64(outsideHeight)}
	return outsideWidth, outsideHeight
}
