package runner

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/bouncebox/internal/metrics"
	"github.com/san-kum/bouncebox/internal/physics"
)

// Runner drives a simulation headlessly with synthesized, evenly spaced
// timestamps, standing in for a render loop and its auto-reset timer.
type Runner struct {
	metrics   []metrics.Metric
	observers []Observer
}

func New() *Runner {
	return &Runner{
		metrics:   make([]metrics.Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }

func validateConfig(cfg Config) error {
	if cfg.FrameRate <= 0 {
		return fmt.Errorf("%w: frame rate must be positive, got %f", ErrInvalidConfig, cfg.FrameRate)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	if cfg.ResetInterval < 0 {
		return fmt.Errorf("%w: reset interval must be non-negative, got %f", ErrInvalidConfig, cfg.ResetInterval)
	}
	if cfg.Particles < 0 {
		return fmt.Errorf("%w: particle count must be non-negative, got %d", ErrInvalidConfig, cfg.Particles)
	}
	if err := cfg.Params.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Run resets a fresh simulation and advances it for cfg.Duration. Frame i is
// stamped (i+1)/FrameRate so the first stamp is already past the clock's
// "no previous frame" sentinel.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	s := physics.New(rand.New(rand.NewSource(cfg.Seed)), physics.WithParams(cfg.Params))
	s.Reset(cfg.Particles)

	frames := int(cfg.Duration * cfg.FrameRate)
	sampleEvery := cfg.SampleEvery
	if sampleEvery < 1 {
		sampleEvery = 1
	}

	result := &Result{
		Frames:  make([]Frame, 0, frames/sampleEvery+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	frameDt := 1 / cfg.FrameRate
	sinceReset := 0.0

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			r.finish(s, result)
			return result, ctx.Err()
		default:
		}

		t := float64(i+1) * frameDt

		if cfg.ResetInterval > 0 && sinceReset >= cfg.ResetInterval {
			s.Repeat()
			sinceReset = 0
			result.Repeats++
			for _, m := range r.metrics {
				if ea, ok := m.(metrics.EpochAware); ok {
					ea.NewEpoch()
				}
			}
		}

		s.Advance(float32(t))
		sinceReset += frameDt
		result.FramesRun++
		result.Collisions += s.Stats().Collisions

		if cfg.ValidateState && !s.Valid() {
			r.finish(s, result)
			return result, &FrameError{Frame: i, Time: t, Wrapped: physics.ErrInvalidState}
		}

		for _, m := range r.metrics {
			m.Observe(s, t)
		}
		for _, obs := range r.observers {
			obs.OnFrame(s, t)
		}

		if i%sampleEvery == 0 {
			result.Frames = append(result.Frames, sample(s, i, t))
		}
	}

	r.finish(s, result)
	return result, nil
}

func (r *Runner) finish(s *physics.Simulation, result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Final = append([]physics.Particle(nil), s.Particles()...)
}

func sample(s *physics.Simulation, i int, t float64) Frame {
	st := s.Stats()
	return Frame{
		Index:           i,
		Time:            t,
		FPS:             float64(s.FPS()),
		KineticEnergy:   s.KineticEnergy(),
		PotentialEnergy: s.PotentialEnergy(),
		Collisions:      st.Collisions,
		WallBounces:     st.WallBounces,
	}
}
