package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/gravsim/internal/camera"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/vecmath"
)

func TestCanvas_SetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	if w, h := c.Dots(); w != 8 || h != 8 {
		t.Fatalf("Dots = %dx%d, want 8x8", w, h)
	}

	c.Set(3, 5, "#ff0000")
	if !c.IsSet(3, 5) {
		t.Error("pixel not set")
	}
	if c.Colors[1][1] != "#ff0000" {
		t.Errorf("cell color = %q", c.Colors[1][1])
	}
	// 3%2 = 1, 5%4 = 1 -> dot 5
	if c.Grid[1][1] != blank+0x10 {
		t.Errorf("cell rune = %U, want %U", c.Grid[1][1], blank+0x10)
	}

	c.Unset(3, 5)
	if c.IsSet(3, 5) || c.Grid[1][1] != blank {
		t.Error("pixel not cleared")
	}
}

func TestCanvas_OutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 8}, {100, 100}} {
		c.Set(p[0], p[1], "")
		if c.IsSet(p[0], p[1]) {
			t.Errorf("out of bounds pixel %v reported set", p)
		}
	}
	if c.String() != NewCanvas(2, 2).String() {
		t.Error("out of bounds writes changed the canvas")
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19, "")
	if !c.IsSet(0, 0) || !c.IsSet(19, 19) || !c.IsSet(10, 10) {
		t.Error("diagonal line missing points")
	}
	if c.IsSet(0, 19) {
		t.Error("line lit a stray pixel")
	}
}

func TestCanvas_Circles(t *testing.T) {
	c := NewCanvas(20, 10)
	c.FillCircle(20, 20, 5, "")
	if !c.IsSet(20, 20) || !c.IsSet(25, 20) || c.IsSet(26, 20) {
		t.Error("filled circle has the wrong extent")
	}

	c.Clear()
	c.DrawCircle(20, 20, 5, "")
	if c.IsSet(20, 20) {
		t.Error("outline lit its center")
	}
	if !c.IsSet(25, 20) || !c.IsSet(20, 15) {
		t.Error("outline missing its extreme points")
	}

	c.Clear()
	c.FillCircle(3, 3, 0, "")
	if !c.IsSet(3, 3) {
		t.Error("zero-radius circle should light its center")
	}
}

func TestCanvas_Render(t *testing.T) {
	c := NewCanvas(6, 3)
	c.Set(0, 0, "#ffffff")
	c.Set(11, 11, "#00ff00")

	out := c.Render()
	if n := strings.Count(out, "\n"); n != 3 {
		t.Errorf("rendered %d rows, want 3", n)
	}
	if !strings.ContainsRune(out, blank+0x1) {
		t.Error("render lost the lit dot")
	}
}

func testScene() (Scene, *Canvas) {
	cam := camera.New()
	return Scene{Camera: cam, Theme: ThemeDeepSpace, FullHealth: gravity.DefaultHealth}, NewCanvas(40, 20)
}

func TestScene_Draw(t *testing.T) {
	s, c := testScene()
	f := gravity.Frame{
		Bodies: []gravity.BodyView{
			{Pos: vecmath.V(0, 0), Radius: 5, Color: "gold", Health: 100},
			{Pos: vecmath.V(5000, 0), Radius: 50, Color: "red", Health: 100},
		},
		Projectiles: []gravity.ProjectileView{{Pos: vecmath.V(-20, -20), Radius: 2, Color: "red"}},
		Cannons:     []gravity.CannonView{{Pos: vecmath.V(0, 5), Angle: 0, Height: 8}},
	}
	s.Draw(c, f, Preview{})

	// the camera center maps to the middle of the 80x80 dot viewport
	if !c.IsSet(40, 40) || !c.IsSet(44, 40) {
		t.Error("centered body not drawn")
	}
	if !c.IsSet(20, 20) {
		t.Error("projectile not drawn")
	}
	// the barrel points along +y from the rim
	if !c.IsSet(40, 52) {
		t.Error("cannon barrel not drawn")
	}
	lit := 0
	for y := 0; y < 80; y++ {
		for x := 0; x < 80; x++ {
			if c.IsSet(x, y) {
				lit++
			}
		}
	}
	// disc of radius 5 is about 81 dots, plus barrel and projectile
	if lit > 140 {
		t.Errorf("offscreen body leaked into the view: %d dots lit", lit)
	}
}

func TestScene_ZoomScalesBodies(t *testing.T) {
	s, c := testScene()
	s.Camera.Scale = 2
	f := gravity.Frame{Bodies: []gravity.BodyView{{Radius: 5, Color: "blue", Health: 100}}}
	s.Draw(c, f, Preview{})
	if !c.IsSet(49, 40) {
		t.Error("zoomed body should span twice the radius in dots")
	}
}

func TestScene_Preview(t *testing.T) {
	s, c := testScene()
	s.Draw(c, gravity.Frame{}, Preview{Active: true, Center: vecmath.V(0, 0), Radius: 10})
	if c.IsSet(40, 40) {
		t.Error("preview should be an outline")
	}
	if !c.IsSet(50, 40) {
		t.Error("preview outline missing")
	}
}

func TestScene_HugeBodyClipped(t *testing.T) {
	s, c := testScene()
	f := gravity.Frame{Bodies: []gravity.BodyView{{Radius: 1e6, Color: "gold", Gradient: true, Health: 100}}}
	s.Draw(c, f, Preview{})
	if !c.IsSet(0, 0) || !c.IsSet(79, 79) {
		t.Error("body covering the view should fill it")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("retro").Name != "retro" {
		t.Error("GetTheme(retro) failed")
	}
	if GetTheme("nope").Name != Themes[0].Name {
		t.Error("unknown theme should fall back to the first")
	}
	th := Themes[len(Themes)-1]
	if th.Next().Name != Themes[0].Name {
		t.Error("Next should wrap around")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("ThemeNames length mismatch")
	}
}

func TestStyles(t *testing.T) {
	s := NewStyles(ThemeMinimal)
	if got := s.Sparkline(nil, 5); got != "─────" {
		t.Errorf("empty sparkline = %q", got)
	}
	spark := s.Sparkline([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 4)
	if !strings.ContainsRune(spark, '█') || !strings.ContainsRune(spark, '▁') {
		t.Errorf("sparkline of rising values = %q", spark)
	}
	bar := s.ProgressBar(0.5, 10)
	if strings.Count(bar, "█") != 5 || strings.Count(bar, "░") != 5 {
		t.Errorf("progress bar = %q", bar)
	}
	if GradientText("", "#000000", "#ffffff") != "" {
		t.Error("empty gradient text")
	}
	if !strings.Contains(GradientText("ab", "bad", "#ffffff"), "ab") {
		t.Error("invalid colors should pass text through")
	}
}
