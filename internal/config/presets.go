package config

import "sort"

// Profiles are named tunings layered over the defaults.
var Profiles = map[string]func(*Config){
	"default": func(*Config) {},
	"arcade": func(c *Config) {
		c.Sim.Gravity = 4
		c.Projectile.Speed = 800
		c.Projectile.Lifetime = 150
		c.Sim.Damage = 25
		c.Scenario = "siege"
	},
	"zero_g": func(c *Config) {
		c.Sim.Gravity = 0
		c.Scenario = "random"
	},
	"crowded": func(c *Config) {
		c.Sim.MaxBodies = 500
		c.Sim.MaxProjectiles = 2000
		c.Spawn.SatelliteSize = 3
		c.Scenario = "random"
	},
	"orbit": func(c *Config) {
		c.Scenario = "orbit"
		c.View.Scale = 2
	},
}

// GetProfile returns the defaults with the named profile applied, or nil
// if no such profile exists.
func GetProfile(name string) *Config {
	apply, ok := Profiles[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListProfiles() []string {
	names := make([]string, 0, len(Profiles))
	for name := range Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
