package palette

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseHint(t *testing.T) {
	tests := []struct {
		hint    string
		want    string
		wantErr bool
	}{
		{"black", "#000000", false},
		{"Red", "#d62728", false},
		{"#4080c0", "#4080c0", false},
		{"#fff", "#ffffff", false},
		{"  gold ", "#ffd700", false},
		{"chartreuse-ish", "#7f7f7f", true},
		{"", "#7f7f7f", true},
	}

	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			c, err := ParseHint(tt.hint)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHint(%q) error = %v", tt.hint, err)
			}
			if err != nil && !errors.Is(err, ErrUnknownColor) {
				t.Errorf("error = %v, want ErrUnknownColor", err)
			}
			if got := Hex(c); got != tt.want {
				t.Errorf("ParseHint(%q) = %s, want %s", tt.hint, got, tt.want)
			}
		})
	}
}

func TestGradient(t *testing.T) {
	base := Parse("red")
	if Hex(Gradient(base, 1)) != Hex(base) {
		t.Errorf("rim = %s, want base %s", Hex(Gradient(base, 1)), Hex(base))
	}
	if Hex(Gradient(base, -3)) != Hex(hot) {
		t.Errorf("center = %s, want %s", Hex(Gradient(base, -3)), Hex(hot))
	}
}

func TestHealth(t *testing.T) {
	base := Parse("blue")
	if Health(base, 100, 100) != base {
		t.Error("full health should keep the base color")
	}
	low := Health(base, 10, 100)
	if low.R <= base.R {
		t.Errorf("wounded color %s is not redder than %s", Hex(low), Hex(base))
	}
	if Health(base, -50, 100) != Health(base, 0, 100) {
		t.Error("negative health should clamp to zero")
	}
}

func TestOnDark(t *testing.T) {
	if c := OnDark(Parse("black")); Hex(c) == "#000000" {
		t.Error("black not lifted")
	}
	gold := Parse("gold")
	if OnDark(gold) != gold {
		t.Error("bright color changed")
	}
}

func TestRGBA(t *testing.T) {
	if got := RGBA(Parse("#4080c0")); got != (color.RGBA{R: 0x40, G: 0x80, B: 0xc0, A: 0xff}) {
		t.Errorf("RGBA = %v", got)
	}
	if ForMass(10) == ForMass(1000) {
		t.Error("mass hue should vary with mass")
	}
}

func TestShade(t *testing.T) {
	flat := Shade("gold", false, 100, 100, 0)
	if flat != OnDark(Parse("gold")) {
		t.Errorf("flat shade = %s", Hex(flat))
	}
	if Shade("gold", true, 100, 100, 0) == Shade("gold", true, 100, 100, 1) {
		t.Error("gradient shade should vary from center to rim")
	}
	if Shade("blue", false, 100, 0, 0) != Shade("blue", false, 5, 0, 0) {
		t.Error("full of 0 must ignore health")
	}
}
