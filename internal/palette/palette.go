// Package palette turns the color hints carried by bodies into concrete
// colors for the renderers.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrUnknownColor = errors.New("palette: unknown color")

var named = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#d62728",
	"green":     "#2ca02c",
	"blue":      "#1f77b4",
	"steelblue": "#4682b4",
	"gold":      "#ffd700",
	"yellow":    "#ffdd33",
	"orange":    "#ff7f0e",
	"purple":    "#9467bd",
	"gray":      "#7f7f7f",
	"grey":      "#7f7f7f",
}

// Fallback is used for hints that cannot be parsed.
var Fallback = colorful.Color{R: 127.0 / 255, G: 127.0 / 255, B: 127.0 / 255}

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	hot   = colorful.Color{R: 1, G: 0.95, B: 0.6}
	wound = colorful.Color{R: 1, G: 0.1, B: 0.1}
)

// ParseHint accepts a color name or a #rgb / #rrggbb hex string.
func ParseHint(hint string) (colorful.Color, error) {
	h := strings.ToLower(strings.TrimSpace(hint))
	if hex, ok := named[h]; ok {
		h = hex
	}
	if len(h) == 4 && h[0] == '#' {
		h = "#" + strings.Repeat(h[1:2], 2) + strings.Repeat(h[2:3], 2) + strings.Repeat(h[3:4], 2)
	}
	c, err := colorful.Hex(h)
	if err != nil {
		return Fallback, fmt.Errorf("%w: %q", ErrUnknownColor, hint)
	}
	return c, nil
}

// Parse is ParseHint with the error folded into Fallback.
func Parse(hint string) colorful.Color {
	c, _ := ParseHint(hint)
	return c
}

// Gradient shades a radial fill: t = 0 at the center, 1 at the rim. The
// center glows and the rim keeps the base color.
func Gradient(base colorful.Color, t float64) colorful.Color {
	t = math.Max(0, math.Min(1, t))
	return hot.BlendLab(base, t).Clamped()
}

// Health tints base toward red as health drops below full.
func Health(base colorful.Color, health, full int) colorful.Color {
	if full <= 0 || health >= full {
		return base
	}
	loss := 1 - math.Max(0, float64(health))/float64(full)
	return base.BlendLab(wound, loss*0.7).Clamped()
}

// OnDark lifts colors that would vanish against a dark background.
func OnDark(c colorful.Color) colorful.Color {
	_, _, l := c.Hcl()
	if l >= 0.35 {
		return c
	}
	return c.BlendLab(white, 0.6).Clamped()
}

// ForMass picks a hue from the mass, for bodies without a useful hint.
func ForMass(mass float64) colorful.Color {
	h := math.Mod(math.Log1p(math.Abs(mass))*50, 360)
	return colorful.Hcl(h, 0.6, 0.7).Clamped()
}

func RGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func Hex(c colorful.Color) string { return c.Clamped().Hex() }

// Shade is the fill of a body at radial position t, combining its hint,
// gradient flag and health. Invulnerable bodies pass full as 0.
func Shade(hint string, gradient bool, health, full int, t float64) colorful.Color {
	c := OnDark(Parse(hint))
	if gradient {
		c = Gradient(c, t)
	}
	return Health(c, health, full)
}
