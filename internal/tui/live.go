package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/gravsim/internal/camera"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/viz"
)

const (
	liveWidth   = 70
	liveHeight  = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer prints frames of a headless run to w, at most frameRate
// times per second. It satisfies loop.Observer.
type LiveRenderer struct {
	w         io.Writer
	label     string
	frameRate int
	lastFrame time.Time
	canvas    *viz.Canvas
	scene     viz.Scene
	now       func() time.Time
}

func NewLiveRenderer(w io.Writer, label string, frameRate int, cam *camera.Camera) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{
		w:         w,
		label:     label,
		frameRate: frameRate,
		canvas:    viz.NewCanvas(liveWidth, liveHeight),
		scene:     viz.Scene{Camera: cam, Theme: viz.ThemeDeepSpace, FullHealth: gravity.DefaultHealth},
		now:       time.Now,
	}
}

func (r *LiveRenderer) OnTick(rep gravity.TickReport, f gravity.Frame) {
	now := r.now()
	if now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = now

	r.scene.Draw(r.canvas, f, viz.Preview{})
	r.render(rep, f)
}

func (r *LiveRenderer) render(rep gravity.TickReport, f gravity.Frame) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  tick=%d\n", r.label, f.Tick))
	b.WriteString("  " + strings.Repeat("-", liveWidth) + "\n")

	for _, row := range strings.Split(strings.TrimSuffix(r.canvas.Render(), "\n"), "\n") {
		b.WriteString("  ")
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", liveWidth) + "\n")
	b.WriteString(fmt.Sprintf("  bodies=%d shots=%d hits=%d destroyed=%d\n",
		len(f.Bodies), len(f.Projectiles), rep.Hits, rep.Destroyed))

	fmt.Fprint(r.w, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.w, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.w, showCursor) }
