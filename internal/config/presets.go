package config

import (
	"sort"

	"github.com/san-kum/orrery/internal/bodies"
)

// Presets are named starting points layered on DefaultConfig.
var Presets = map[string]func(*Config){
	"solar": func(c *Config) {},
	"inner": func(c *Config) {
		c.Table = "inner"
	},
	"outer": func(c *Config) {
		c.Table = "outer"
		c.ReferenceBody = "Jupiter"
		c.Dt = 6 * 3600
	},
	"jovian": func(c *Config) {
		c.Table = "jovian"
		c.ReferenceBody = "Jupiter"
		c.Dt = 600
	},
	// classic uses a 1.98 distance exponent for the projectile.
	"classic": func(c *Config) {
		c.Tuning.ProjectileExponent = 1.98
	},
	"binary": func(c *Config) {
		c.Table = ""
		c.ReferenceBody = "Planet"
		c.Bodies = []bodies.Spec{
			{Name: "Alpha", Mass: 1.989e30, X: bodies.F(-0.5 * 1.496e11), VelocityY: bodies.F(-15000), Color: "yellow"},
			{Name: "Beta", Mass: 1.5e30, X: bodies.F(0.5 * 1.496e11), VelocityY: bodies.F(20000), Color: "orange"},
			{Name: "Planet", Mass: 5.972e24, Distance: bodies.F(3), Velocity: bodies.F(22000), Color: "blue"},
		}
	},
}

// GetPreset returns a fresh config for the named preset, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
