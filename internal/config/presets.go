package config

import "sort"

func preset(particles int, mod func(*Config)) *Config {
	cfg := DefaultConfig()
	cfg.Particles = particles
	if mod != nil {
		mod(cfg)
	}
	return cfg
}

var Presets = map[string]*Config{
	"default": preset(50, nil),
	"sparse":  preset(10, nil),
	"dense":   preset(200, nil),
	"single": preset(1, func(c *Config) {
		c.ResetInterval = 0
	}),
	"elastic": preset(50, func(c *Config) {
		c.Physics.ESphere = 1
		c.Physics.EWall = 1
	}),
	"vacuum": preset(50, func(c *Config) {
		c.Physics.CAir = 0
	}),
	"zero-g": preset(100, func(c *Config) {
		c.Physics.Gravity = 0
		c.ResetInterval = 0
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
