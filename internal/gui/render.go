package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/palette"
	"github.com/san-kum/gravsim/internal/vecmath"
)

// gradientSteps is the number of rings a gradient body is drawn with.
const gradientSteps = 8

// ring is one filled disc of a radial fill, drawn from the rim inward.
type ring struct {
	Radius float64
	T      float64
}

// rings splits a disc of radius r into discs that shrink toward the center.
// Bodies under two pixels get a single disc.
func rings(r float64) []ring {
	if r < 2 {
		return []ring{{Radius: r, T: 1}}
	}
	out := make([]ring, 0, gradientSteps)
	for k := 0; k < gradientSteps; k++ {
		t := 1 - float64(k)/gradientSteps
		out = append(out, ring{Radius: r * t, T: t})
	}
	return out
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(ColBg)
	f := a.World.Frame()

	a.drawBodies(screen, f)
	a.drawCannons(screen, f)
	a.drawProjectiles(screen, f)
	a.drawPreview(screen)
	if a.ShowHUD {
		a.DrawHUD(screen, f)
	}
}

func (a *App) view(p vecmath.Vec2) (float32, float32) {
	v := a.Camera.WorldToView(p, a.viewport)
	return float32(v.X), float32(v.Y)
}

// visible reports whether a disc of view radius r at (x, y) touches the
// window.
func (a *App) visible(x, y, r float32) bool {
	return x+r >= 0 && y+r >= 0 && x-r <= float32(a.viewport.W) && y-r <= float32(a.viewport.H)
}

func (a *App) drawBodies(screen *ebiten.Image, f gravity.Frame) {
	for _, b := range f.Bodies {
		x, y := a.view(b.Pos)
		r := b.Radius * a.Camera.Scale
		if !a.visible(x, y, float32(r)) {
			continue
		}
		full := a.FullHealth
		if b.Invulnerable {
			full = 0
		}
		if !b.Gradient {
			c := palette.RGBA(palette.Shade(b.Color, false, b.Health, full, 0))
			vector.DrawFilledCircle(screen, x, y, float32(max(r, 1)), c, true)
			continue
		}
		for _, rg := range rings(r) {
			c := palette.RGBA(palette.Shade(b.Color, true, b.Health, full, rg.T))
			vector.DrawFilledCircle(screen, x, y, float32(max(rg.Radius, 1)), c, true)
		}
	}
}

func (a *App) drawCannons(screen *ebiten.Image, f gravity.Frame) {
	for _, cn := range f.Cannons {
		x0, y0 := a.view(cn.Pos)
		x1, y1 := a.view(cn.Pos.Add(vecmath.Polar(cn.Height, cn.Angle)))
		w := float32(max(cn.Width*a.Camera.Scale, 1))
		vector.StrokeLine(screen, x0, y0, x1, y1, w, ColAccent, true)
	}
}

func (a *App) drawProjectiles(screen *ebiten.Image, f gravity.Frame) {
	for _, p := range f.Projectiles {
		x, y := a.view(p.Pos)
		r := float32(max(p.Radius*a.Camera.Scale, 1))
		if !a.visible(x, y, r) {
			continue
		}
		c := palette.RGBA(palette.OnDark(palette.Parse(p.Color)))
		vector.DrawFilledCircle(screen, x, y, r, c, true)
	}
}

func (a *App) drawPreview(screen *ebiten.Image) {
	if !a.snapshot.Dragging {
		return
	}
	x, y := a.view(a.snapshot.DragStart)
	r := float32(a.snapshot.DragRadius * a.Camera.Scale)
	vector.StrokeCircle(screen, x, y, r, 1, ColText, true)
}

func (a *App) DrawHUD(screen *ebiten.Image, f gravity.Frame) {
	status := "RUNNING"
	if a.Paused {
		status = "PAUSED"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("gravsim :: %s  %s", a.Scenario, status), 12, 10)
	ebitenutil.DebugPrintAt(screen, a.stats(f), 12, 28)
	ebitenutil.DebugPrintAt(screen,
		"[DRAG] BODY  [RMB] MOON  [MMB] STEER  [F] FIRE  [P/S] PRESET  [ARROWS] PAN  [+/-] ZOOM  [G] GRAVITY  [SPACE] PAUSE  [H] HUD  [Q] QUIT",
		12, int(a.viewport.H)-22)
	for _, b := range f.Bodies {
		if b.Invulnerable || b.Health >= a.FullHealth {
			continue
		}
		a.drawHealthBar(screen, b)
	}
}

func (a *App) stats(f gravity.Frame) string {
	return fmt.Sprintf("tick %d  bodies %d  shots %d  hits %d  destroyed %d  G %.1f  zoom %.2f  fps %.0f",
		f.Tick, len(f.Bodies), len(f.Projectiles), a.hits, a.killed, f.G, a.Camera.Scale, ebiten.ActualFPS())
}

// drawHealthBar draws a bar above a damaged body.
func (a *App) drawHealthBar(screen *ebiten.Image, b gravity.BodyView) {
	x, y := a.view(b.Pos)
	r := float32(b.Radius * a.Camera.Scale)
	if !a.visible(x, y, r) {
		return
	}
	const w, h = 24, 3
	frac := float32(max(b.Health, 0)) / float32(max(a.FullHealth, 1))
	top := y - r - 8
	vector.DrawFilledRect(screen, x-w/2, top, w, h, ColTextDim, false)
	vector.DrawFilledRect(screen, x-w/2, top, w*frac, h, color.RGBA{220, 60, 60, 255}, false)
}
