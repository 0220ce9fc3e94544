package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bouncebox/internal/physics"
)

const (
	DefaultParticles     = 50
	DefaultFrameRate     = 60
	DefaultDuration      = 10.0
	DefaultResetInterval = 5.0
	DefaultSpeedLimit    = 100.0
)

var ErrInvalidConfig = errors.New("bouncebox: invalid config")

type Config struct {
	Particles     int           `yaml:"particles"`
	FrameRate     float64       `yaml:"frame_rate"`
	Duration      float64       `yaml:"duration"`
	ResetInterval float64       `yaml:"reset_interval"`
	Seed          int64         `yaml:"seed"`
	SpeedLimit    float64       `yaml:"speed_limit"`
	Physics       PhysicsConfig `yaml:"physics"`
}

type PhysicsConfig struct {
	BoxSize float64 `yaml:"box_size"`
	Gravity float64 `yaml:"gravity"`
	ESphere float64 `yaml:"e_sphere"`
	EWall   float64 `yaml:"e_wall"`
	CAir    float64 `yaml:"c_air"`
}

func DefaultPhysics() PhysicsConfig {
	return PhysicsConfig{
		BoxSize: physics.DefaultBoxSize,
		Gravity: physics.DefaultGravity,
		ESphere: physics.DefaultESphere,
		EWall:   physics.DefaultEWall,
		CAir:    physics.DefaultCAir,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Particles:     DefaultParticles,
		FrameRate:     DefaultFrameRate,
		Duration:      DefaultDuration,
		ResetInterval: DefaultResetInterval,
		SpeedLimit:    DefaultSpeedLimit,
		Physics:       DefaultPhysics(),
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Particles < 0 {
		return fmt.Errorf("%w: particles must be non-negative, got %d", ErrInvalidConfig, c.Particles)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w: frame_rate must be positive, got %f", ErrInvalidConfig, c.FrameRate)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, c.Duration)
	}
	if c.ResetInterval < 0 {
		return fmt.Errorf("%w: reset_interval must be non-negative, got %f", ErrInvalidConfig, c.ResetInterval)
	}
	if _, err := c.Params(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Params converts the physics section, applying the same bounds as SetParam.
func (c *Config) Params() (physics.Params, error) {
	p := physics.DefaultParams()
	values := map[string]float64{
		"box_size": c.Physics.BoxSize,
		"gravity":  c.Physics.Gravity,
		"e_sphere": c.Physics.ESphere,
		"e_wall":   c.Physics.EWall,
		"c_air":    c.Physics.CAir,
	}
	for _, name := range physics.ParamNames() {
		if err := p.SetParam(name, values[name]); err != nil {
			return p, err
		}
	}
	return p, nil
}
