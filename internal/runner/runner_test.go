package runner

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/san-kum/bouncebox/internal/config"
	"github.com/san-kum/bouncebox/internal/metrics"
	"github.com/san-kum/bouncebox/internal/physics"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Particles = 20
	cfg.Duration = 1.0
	cfg.FrameRate = 60
	cfg.ResetInterval = 0
	cfg.Seed = 3
	return cfg
}

func TestRunnerRun(t *testing.T) {
	r := New()
	result, err := r.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.FramesRun != 60 {
		t.Errorf("expected 60 frames, got %d", result.FramesRun)
	}
	if len(result.Frames) != 60 {
		t.Errorf("expected 60 samples, got %d", len(result.Frames))
	}
	if len(result.Final) != 20 {
		t.Errorf("expected 20 final particles, got %d", len(result.Final))
	}

	first := result.Frames[0]
	if first.FPS != physics.FallbackFPS {
		t.Errorf("baseline frame fps = %v, want fallback", first.FPS)
	}
	last := result.Frames[len(result.Frames)-1]
	if last.FPS < 59 || last.FPS > 61 {
		t.Errorf("steady fps = %v, want ~60", last.FPS)
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	r := New()

	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"zero frame rate", func(c *Config) { c.FrameRate = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"negative reset interval", func(c *Config) { c.ResetInterval = -1 }},
		{"negative particles", func(c *Config) { c.Particles = -3 }},
		{"bad restitution", func(c *Config) { c.Params.ESphere = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mod(&cfg)
			_, err := r.Run(context.Background(), cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestRunnerRepeats(t *testing.T) {
	cfg := testConfig()
	cfg.Duration = 2.0
	cfg.ResetInterval = 0.5

	result, err := New().Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Repeats != 3 {
		t.Errorf("expected 3 repeats in 2s at 0.5s, got %d", result.Repeats)
	}
	if len(result.Final) != cfg.Particles {
		t.Errorf("repeat changed particle count to %d", len(result.Final))
	}
}

func TestRunnerSampling(t *testing.T) {
	cfg := testConfig()
	cfg.SampleEvery = 10

	result, err := New().Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Frames) != 6 {
		t.Errorf("expected 6 samples, got %d", len(result.Frames))
	}
	for i, f := range result.Frames {
		if f.Index != i*10 {
			t.Errorf("sample %d has index %d", i, f.Index)
		}
	}
}

func TestRunnerDeterministic(t *testing.T) {
	a, err := New().Run(context.Background(), testConfig())
	if err != nil {
		t.Fatal(err)
	}
	b, err := New().Run(context.Background(), testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Final, b.Final) {
		t.Error("same seed produced different final states")
	}
}

func TestRunnerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New().Run(ctx, testConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.FramesRun != 0 {
		t.Error("canceled run should return a partial result")
	}
}

type frameCounter struct{ frames int }

func (f *frameCounter) OnFrame(s *physics.Simulation, t float64) { f.frames++ }

func TestRunnerMetricsAndObservers(t *testing.T) {
	r := New()
	for _, m := range metrics.Defaults(config.DefaultSpeedLimit) {
		r.AddMetric(m)
	}
	obs := &frameCounter{}
	r.AddObserver(obs)

	result, err := r.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if obs.frames != 60 {
		t.Errorf("observer saw %d frames, want 60", obs.frames)
	}
	for _, name := range []string{"kinetic_energy", "energy_drift", "collision_rate", "stability"} {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("metric %s missing from result", name)
		}
	}
}

func TestFromConfig(t *testing.T) {
	c := config.DefaultConfig()
	c.Particles = 80
	c.Physics.CAir = 0

	cfg, err := FromConfig(c)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if cfg.Particles != 80 || cfg.Params.CAir != 0 {
		t.Errorf("unexpected run config %+v", cfg)
	}

	c.FrameRate = 0
	if _, err := FromConfig(c); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestFrameError(t *testing.T) {
	err := &FrameError{Frame: 150, Time: 2.5, Wrapped: physics.ErrInvalidState}
	if !errors.Is(err, physics.ErrInvalidState) {
		t.Error("FrameError does not unwrap")
	}
	want := "frame 150 (t=2.5000): " + physics.ErrInvalidState.Error()
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
