package runner

import (
	"github.com/san-kum/bouncebox/internal/config"
	"github.com/san-kum/bouncebox/internal/physics"
)

type Config struct {
	Particles     int
	FrameRate     float64 // frames per simulated second
	Duration      float64 // seconds
	ResetInterval float64 // seconds between Repeat calls, 0 disables
	Seed          int64
	SampleEvery   int // record every n-th frame, <= 1 records all
	ValidateState bool
	Params        physics.Params
}

func DefaultConfig() Config {
	return Config{
		Particles:     config.DefaultParticles,
		FrameRate:     config.DefaultFrameRate,
		Duration:      config.DefaultDuration,
		ResetInterval: config.DefaultResetInterval,
		SampleEvery:   1,
		ValidateState: true,
		Params:        physics.DefaultParams(),
	}
}

// FromConfig converts a file config into a run config.
func FromConfig(c *config.Config) (Config, error) {
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	params, err := c.Params()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Particles:     c.Particles,
		FrameRate:     c.FrameRate,
		Duration:      c.Duration,
		ResetInterval: c.ResetInterval,
		Seed:          c.Seed,
		SampleEvery:   1,
		ValidateState: true,
		Params:        params,
	}, nil
}

// Frame is a sampled summary of one advanced frame.
type Frame struct {
	Index           int     `json:"index"`
	Time            float64 `json:"time"`
	FPS             float64 `json:"fps"`
	KineticEnergy   float64 `json:"kinetic_energy"`
	PotentialEnergy float64 `json:"potential_energy"`
	Collisions      int     `json:"collisions"`
	WallBounces     int     `json:"wall_bounces"`
}

type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	Repeats    int
	FramesRun  int
	Collisions int
	Final      []physics.Particle
}

// Observer is notified after every advanced frame.
type Observer interface {
	OnFrame(s *physics.Simulation, t float64)
}
