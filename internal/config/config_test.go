package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Particles != 50 {
		t.Errorf("expected 50 particles, got %d", cfg.Particles)
	}
	if cfg.ResetInterval != 5 {
		t.Errorf("expected reset interval 5s, got %f", cfg.ResetInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if p.BoxSize != 4 || p.EWall != 0.6 {
		t.Errorf("unexpected params %+v", p)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := "particles: 120\nseed: 7\nphysics:\n  c_air: 0\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Particles != 120 || cfg.Seed != 7 {
		t.Errorf("got particles=%d seed=%d", cfg.Particles, cfg.Seed)
	}
	if cfg.Physics.CAir != 0 {
		t.Errorf("c_air = %f, want 0", cfg.Physics.CAir)
	}
	if cfg.Physics.EWall != 0.6 || cfg.FrameRate != DefaultFrameRate {
		t.Error("omitted keys lost their defaults")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := GetPreset("elastic")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"negative particles", func(c *Config) { c.Particles = -1 }},
		{"zero frame rate", func(c *Config) { c.FrameRate = 0 }},
		{"zero duration", func(c *Config) { c.Duration = 0 }},
		{"negative reset interval", func(c *Config) { c.ResetInterval = -1 }},
		{"restitution above one", func(c *Config) { c.Physics.EWall = 1.2 }},
		{"zero box", func(c *Config) { c.Physics.BoxSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mod(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("dense")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Particles != 200 {
		t.Errorf("expected 200 particles, got %d", cfg.Particles)
	}

	cfg.Particles = 1
	if GetPreset("dense").Particles != 200 {
		t.Error("GetPreset returned a shared config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
