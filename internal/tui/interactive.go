package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/gravsim/internal/camera"
	"github.com/san-kum/gravsim/internal/input"
	"github.com/san-kum/gravsim/internal/loop"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/vecmath"
	"github.com/san-kum/gravsim/internal/viz"
	"go.uber.org/zap"
)

const (
	// rows above and below the canvas
	headerRows = 2
	footerRows = 3

	gravityStep   = 0.5
	historyLength = 120
)

// Options configure the interactive model.
type Options struct {
	Session    *loop.Session
	Camera     *camera.Camera
	Tracker    *input.Tracker
	Theme      viz.Theme
	FullHealth int
	Scenario   string
	Log        *zap.Logger
}

type model struct {
	session  *loop.Session
	tracker  *input.Tracker
	cam      *camera.Camera
	scene    viz.Scene
	styles   viz.Styles
	canvas   *viz.Canvas
	scenario string
	log      *zap.Logger

	status    loop.Status
	snapshot  input.Snapshot
	energy    []float64
	lastFrame time.Time
	fps       float64

	width  int
	height int
}

func newModel(o Options) *model {
	log := o.Log
	if log == nil {
		log = zap.NewNop()
	}
	m := &model{
		session:  o.Session,
		tracker:  o.Tracker,
		cam:      o.Camera,
		scene:    viz.Scene{Camera: o.Camera, Theme: o.Theme, FullHealth: o.FullHealth},
		styles:   viz.NewStyles(o.Theme),
		scenario: o.Scenario,
		log:      log,
		energy:   make([]float64, 0, historyLength),
	}
	m.resize(80, 24)
	return m
}

func (m *model) Init() tea.Cmd { return tick() }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tickMsg:
		m.step(time.Time(msg))
		return m, tick()
	}
	return m, nil
}

func (m *model) resize(w, h int) {
	m.width, m.height = w, h
	m.canvas = viz.NewCanvas(w, h-headerRows-footerRows)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case " ":
		m.session.Submit(loop.Input{TogglePause: true})
	case "g":
		m.session.Submit(loop.Input{GravityDelta: -gravityStep})
	case "G":
		m.session.Submit(loop.Input{GravityDelta: gravityStep})
	case "t":
		th := m.scene.Theme.Next()
		m.scene.Theme = th
		m.styles = viz.NewStyles(th)
	case "c":
		m.focus()
	default:
		m.tracker.Tap(input.ParseKey(msg.String()))
	}
	return nil
}

// focus centers the camera on the anchor, or the first body if the anchor
// is gone.
func (m *model) focus() {
	bodies := m.status.Frame.Bodies
	for _, b := range bodies {
		if b.Invulnerable {
			m.cam.Focus(b.Pos)
			return
		}
	}
	if len(bodies) > 0 {
		m.cam.Focus(bodies[0].Pos)
	}
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	p := m.dotAt(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.tracker.Wheel(1)
		case tea.MouseButtonWheelDown:
			m.tracker.Wheel(-1)
		default:
			m.tracker.MouseDown(button(msg.Button), p)
		}
	case tea.MouseActionRelease:
		b := button(msg.Button)
		if b == input.ButtonUnknown {
			// some terminals do not say which button was released
			m.tracker.MouseUp(input.ButtonLeft, p)
			m.tracker.MouseUp(input.ButtonMiddle, p)
			return
		}
		m.tracker.MouseUp(b, p)
	case tea.MouseActionMotion:
		m.tracker.MouseMove(p)
	}
}

// dotAt converts a terminal cell to the canvas dot at its center.
func (m *model) dotAt(x, y int) vecmath.Vec2 {
	return vecmath.V(float64(x*2+1), float64((y-headerRows)*4+2))
}

func button(b tea.MouseButton) input.Button {
	switch b {
	case tea.MouseButtonLeft:
		return input.ButtonLeft
	case tea.MouseButtonRight:
		return input.ButtonRight
	case tea.MouseButtonMiddle:
		return input.ButtonMiddle
	}
	return input.ButtonUnknown
}

// step hands the gathered input to the session and picks up the newest
// frame, if one arrived.
func (m *model) step(now time.Time) {
	if !m.lastFrame.IsZero() {
		if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
			m.fps = 1 / dt
		}
	}
	m.lastFrame = now

	snap, spawns := m.tracker.Snapshot(m.cam, viz.Viewport(m.canvas))
	m.cam.Apply(snap.Motion)
	m.snapshot = snap
	m.session.Submit(loop.Input{Intent: snap.Intent(), Spawns: spawns})

	select {
	case st := <-m.session.Frames():
		m.status = st
		if st.Ticks > 0 {
			m.energy = append(m.energy, metrics.TotalEnergy(st.Frame))
			if len(m.energy) > historyLength {
				m.energy = m.energy[1:]
			}
		}
	default:
	}
}

func (m *model) View() string {
	preview := viz.Preview{
		Active: m.snapshot.Dragging,
		Center: m.snapshot.DragStart,
		Radius: m.snapshot.DragRadius,
	}
	m.scene.Draw(m.canvas, m.status.Frame, preview)

	var b strings.Builder
	b.WriteString(m.header() + "\n")
	b.WriteString(m.canvas.Render())
	b.WriteString(m.footer())
	return b.String()
}

func (m *model) header() string {
	s := m.styles
	status := s.StatusRunning.Render("● running")
	if m.status.Paused {
		status = s.StatusPaused.Render("○ paused")
	}
	title := viz.GradientText("gravsim", m.scene.Theme.Primary, m.scene.Theme.Accent)
	line := fmt.Sprintf(" %s  %s  %s  %s",
		title, s.Title.Render(m.scenario), status,
		s.Subtle.Render(fmt.Sprintf("%.0ffps", m.fps)))
	return s.Header.Width(max(m.width, 1)).Render(line)
}

func (m *model) footer() string {
	s := m.styles
	f := m.status.Frame
	stat := func(label string, value any) string {
		return s.MetricLabel.Render(label+" ") + s.MetricValue.Render(fmt.Sprint(value))
	}

	var b strings.Builder
	b.WriteString(" " + strings.Join([]string{
		stat("tick", f.Tick),
		stat("bodies", len(f.Bodies)),
		stat("shots", len(f.Projectiles)),
		stat("G", fmt.Sprintf("%.1f", f.G)),
		stat("zoom", fmt.Sprintf("%.2f", m.cam.Scale)),
	}, "  "))
	if m.status.Dropped > 0 {
		b.WriteString("  " + s.StatusPaused.Render("behind "+m.status.Dropped.Truncate(time.Millisecond).String()))
	}
	b.WriteString("\n")

	b.WriteString(" " + s.MetricLabel.Render("energy ") + s.Sparkline(m.energy, min(40, max(m.width-10, 0))) + "\n")
	b.WriteString(s.KeyHint.Render(" drag body  rclick moon  mclick steer  f fire  p/s preset  arrows pan  +/- zoom  g/G gravity  space pause  t theme  c center  q quit"))
	return b.String()
}

// Run drives the session on its own goroutine and blocks in the terminal
// UI until the user quits or ctx is done.
func Run(ctx context.Context, o Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- o.Session.Run(ctx) }()

	m := newModel(o)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	cancel()
	if serr := <-errc; serr != nil && !errors.Is(serr, context.Canceled) {
		m.log.Error("session stopped", zap.Error(serr))
	}
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
