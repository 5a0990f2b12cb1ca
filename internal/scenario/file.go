package scenario

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/vecmath"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("scenario: unsupported file format")

// File is the on-disk layout of a yaml or toml scenario. Coordinates are
// relative to the origin the scenario is loaded at.
type File struct {
	Name        string       `yaml:"name" toml:"name"`
	Description string       `yaml:"description,omitempty" toml:"description,omitempty"`
	Bodies      []BodySpec   `yaml:"bodies" toml:"bodies"`
	Cannons     []CannonSpec `yaml:"cannons,omitempty" toml:"cannons,omitempty"`
}

type BodySpec struct {
	X            float64 `yaml:"x" toml:"x"`
	Y            float64 `yaml:"y" toml:"y"`
	VX           float64 `yaml:"vx,omitempty" toml:"vx,omitempty"`
	VY           float64 `yaml:"vy,omitempty" toml:"vy,omitempty"`
	Density      float64 `yaml:"density" toml:"density"`
	Radius       float64 `yaml:"radius" toml:"radius"`
	Color        string  `yaml:"color,omitempty" toml:"color,omitempty"`
	Gradient     bool    `yaml:"gradient,omitempty" toml:"gradient,omitempty"`
	Health       int     `yaml:"health,omitempty" toml:"health,omitempty"`
	Invulnerable bool    `yaml:"invulnerable,omitempty" toml:"invulnerable,omitempty"`
}

// CannonSpec attaches a cannon to Bodies[Body]. Angle is in degrees, with
// zero pointing along +Y.
type CannonSpec struct {
	Body   int     `yaml:"body" toml:"body"`
	Angle  float64 `yaml:"angle" toml:"angle"`
	Width  float64 `yaml:"width,omitempty" toml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty" toml:"height,omitempty"`
}

// Request converts f to a spawn group positioned at origin.
func (f *File) Request(origin vecmath.Vec2) gravity.SpawnRequest {
	req := gravity.SpawnRequest{
		Label:   f.Name,
		Bodies:  make([]gravity.BodyParams, 0, len(f.Bodies)),
		Cannons: make([]gravity.CannonParams, 0, len(f.Cannons)),
	}
	for _, b := range f.Bodies {
		req.Bodies = append(req.Bodies, gravity.BodyParams{
			Pos:          at(origin, b.X, b.Y),
			Vel:          vecmath.V(b.VX, b.VY),
			Density:      b.Density,
			Radius:       b.Radius,
			Color:        b.Color,
			Gradient:     b.Gradient,
			Health:       b.Health,
			Invulnerable: b.Invulnerable,
		})
	}
	for _, c := range f.Cannons {
		req.Cannons = append(req.Cannons, gravity.CannonParams{
			Parent: c.Body,
			Angle:  c.Angle * degToRad,
			Width:  c.Width,
			Height: c.Height,
		})
	}
	return req
}

const degToRad = math.Pi / 180

// Decode parses a scenario in the given format ("yaml" or "toml").
func Decode(data []byte, format string) (*File, error) {
	var f File
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse yaml scenario: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse toml scenario: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return &f, nil
}

// Load reads a scenario file, dispatching on its extension, and lays it out
// at origin. Lua scripts receive seed for their random source.
func Load(path string, origin vecmath.Vec2, seed int64) (gravity.SpawnRequest, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	data, err := os.ReadFile(path)
	if err != nil {
		return gravity.SpawnRequest{}, fmt.Errorf("read scenario: %w", err)
	}

	var req gravity.SpawnRequest
	if ext == "lua" {
		req, err = RunLua(string(data), origin, seed)
		if err != nil {
			return gravity.SpawnRequest{}, fmt.Errorf("%s: %w", path, err)
		}
	} else {
		f, err := Decode(data, ext)
		if err != nil {
			return gravity.SpawnRequest{}, err
		}
		req = f.Request(origin)
	}

	if req.Label == "" {
		req.Label = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := Validate(req); err != nil {
		return gravity.SpawnRequest{}, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}

// IsFile reports whether name looks like a scenario file rather than a
// preset name.
func IsFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".toml", ".lua":
		return true
	}
	return false
}

// Resolve loads name as a scenario file when it has a scenario extension,
// and builds it as a preset otherwise.
func Resolve(name string, origin vecmath.Vec2, seed int64) (gravity.SpawnRequest, error) {
	if IsFile(name) {
		return Load(name, origin, seed)
	}
	return Build(name, origin, seed)
}
