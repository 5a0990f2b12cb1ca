package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/gravsim/internal/camera"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/input"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt             = 0.01
	DefaultGravity        = 1.0
	DefaultMaxBodies      = 200
	DefaultMaxProjectiles = 500
	DefaultScenario       = "solar"
)

var ErrUnsupportedFormat = errors.New("config: unsupported file format")

type Config struct {
	// Scenario is a preset name or a path to a scenario file.
	Scenario   string           `yaml:"scenario" toml:"scenario"`
	Seed       int64            `yaml:"seed" toml:"seed"`
	Sim        SimConfig        `yaml:"sim" toml:"sim"`
	Projectile ProjectileConfig `yaml:"projectile" toml:"projectile"`
	View       ViewConfig       `yaml:"view" toml:"view"`
	Spawn      SpawnConfig      `yaml:"spawn" toml:"spawn"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
}

type SimConfig struct {
	Dt             float64 `yaml:"dt" toml:"dt"`
	Gravity        float64 `yaml:"gravity" toml:"gravity"`
	MinDistance    float64 `yaml:"min_distance" toml:"min_distance"`
	MaxBodies      int     `yaml:"max_bodies" toml:"max_bodies"`
	MaxProjectiles int     `yaml:"max_projectiles" toml:"max_projectiles"`
	Damage         int     `yaml:"damage" toml:"damage"`
	Health         int     `yaml:"health" toml:"health"`
	QueueSize      int     `yaml:"queue_size" toml:"queue_size"`
}

type ProjectileConfig struct {
	Speed    float64 `yaml:"speed" toml:"speed"`
	Radius   float64 `yaml:"radius" toml:"radius"`
	Density  float64 `yaml:"density" toml:"density"`
	Lifetime int     `yaml:"lifetime" toml:"lifetime"`
}

type ViewConfig struct {
	ZoomSpeed float64 `yaml:"zoom_speed" toml:"zoom_speed"`
	PanSpeed  float64 `yaml:"pan_speed" toml:"pan_speed"`
	MinScale  float64 `yaml:"min_scale" toml:"min_scale"`
	MaxScale  float64 `yaml:"max_scale" toml:"max_scale"`
	Scale     float64 `yaml:"scale" toml:"scale"`
	// Theme names the terminal color theme.
	Theme     string  `yaml:"theme" toml:"theme"`
}

type SpawnConfig struct {
	SatelliteSize    float64 `yaml:"satellite_size" toml:"satellite_size"`
	SatelliteDensity float64 `yaml:"satellite_density" toml:"satellite_density"`
	DragDensity      float64 `yaml:"drag_density" toml:"drag_density"`
	MinRadius        float64 `yaml:"min_radius" toml:"min_radius"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
	// File receives log output. Empty means stderr, which corrupts the
	// terminal UI, so the tui command defaults it to a file.
	File string `yaml:"file" toml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario: DefaultScenario,
		Seed:     1,
		Sim: SimConfig{
			Dt:             DefaultDt,
			Gravity:        DefaultGravity,
			MinDistance:    gravity.DefaultMinDistance,
			MaxBodies:      DefaultMaxBodies,
			MaxProjectiles: DefaultMaxProjectiles,
			Damage:         gravity.DefaultDamage,
			Health:         gravity.DefaultHealth,
			QueueSize:      64,
		},
		Projectile: ProjectileConfig{
			Speed:    500,
			Radius:   2,
			Density:  1,
			Lifetime: 300,
		},
		View: ViewConfig{
			ZoomSpeed: camera.DefaultZoomSpeed,
			PanSpeed:  camera.DefaultPanSpeed,
			MinScale:  camera.DefaultMinScale,
			MaxScale:  camera.DefaultMaxScale,
			Scale:     1,
			Theme:     "deep",
		},
		Spawn: SpawnConfig{
			SatelliteSize:    1,
			SatelliteDensity: 0.5,
			DragDensity:      3,
			MinRadius:        2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func format(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// Load reads a yaml or toml file on top of the defaults. Keys missing from
// the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	switch format(path) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case "toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var data []byte
	switch format(path) {
	case "yaml", "yml":
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		data = out
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return os.WriteFile(path, data, 0644)
}

type bound struct {
	field  string
	value  float64
	lo, hi float64
}

// Validate checks every tunable against its documented range.
func (c *Config) Validate() error {
	bounds := []bound{
		{"view.pan_speed", c.View.PanSpeed, 15, 100},
		{"view.zoom_speed", c.View.ZoomSpeed, 0.01, 0.05},
		{"view.min_scale", c.View.MinScale, 0.01, 1},
		{"view.max_scale", c.View.MaxScale, 3, 10},
		{"view.scale", c.View.Scale, c.View.MinScale, c.View.MaxScale},
		{"sim.max_bodies", float64(c.Sim.MaxBodies), 1, 500},
		{"sim.gravity", c.Sim.Gravity, 0, 50},
		{"spawn.satellite_size", c.Spawn.SatelliteSize, 1, 50},
	}
	for _, b := range bounds {
		if b.value < b.lo || b.value > b.hi {
			return fmt.Errorf("%w: %s = %v not in [%v, %v]", gravity.ErrParameterBounds, b.field, b.value, b.lo, b.hi)
		}
	}
	if c.Sim.Health <= 0 {
		return fmt.Errorf("%w: sim.health must be positive, got %d", gravity.ErrParameterBounds, c.Sim.Health)
	}
	if c.Spawn.SatelliteDensity <= 0 || c.Spawn.DragDensity <= 0 || c.Spawn.MinRadius <= 0 {
		return fmt.Errorf("%w: spawn density and radius must be positive", gravity.ErrParameterBounds)
	}
	return c.Params().Validate()
}

// Params converts the simulation sections to physics parameters.
func (c *Config) Params() gravity.Params {
	return gravity.Params{
		Dt:                 c.Sim.Dt,
		G:                  c.Sim.Gravity,
		MinDistance:        c.Sim.MinDistance,
		MaxBodies:          c.Sim.MaxBodies,
		MaxProjectiles:     c.Sim.MaxProjectiles,
		Damage:             c.Sim.Damage,
		Health:             c.Sim.Health,
		ProjectileSpeed:    c.Projectile.Speed,
		ProjectileRadius:   c.Projectile.Radius,
		ProjectileDensity:  c.Projectile.Density,
		ProjectileLifetime: c.Projectile.Lifetime,
		QueueSize:          c.Sim.QueueSize,
	}
}

func (c *Config) Camera() *camera.Camera {
	return &camera.Camera{
		Scale:     c.View.Scale,
		MinScale:  c.View.MinScale,
		MaxScale:  c.View.MaxScale,
		ZoomSpeed: c.View.ZoomSpeed,
		PanSpeed:  c.View.PanSpeed,
	}
}

func (c *Config) Input() input.Settings {
	return input.Settings{
		SatelliteSize:    c.Spawn.SatelliteSize,
		SatelliteDensity: c.Spawn.SatelliteDensity,
		DragDensity:      c.Spawn.DragDensity,
		MinSpawnRadius:   c.Spawn.MinRadius,
	}
}
