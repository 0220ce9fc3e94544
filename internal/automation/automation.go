package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bouncebox/internal/metrics"
	"github.com/san-kum/bouncebox/internal/physics"
	"github.com/san-kum/bouncebox/internal/runner"
)

var ErrEmptyScenario = errors.New("bouncebox: scenario has no steps")

// Scenario is a scripted sequence of independent runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. Zero fields fall back to the runner defaults;
// Params entries are applied with SetParam on top of the default physics.
type ScenarioStep struct {
	Name          string             `yaml:"name"`
	Particles     *int               `yaml:"particles"`
	Duration      float64            `yaml:"duration"`
	FrameRate     float64            `yaml:"frame_rate"`
	ResetInterval *float64           `yaml:"reset_interval"`
	Seed          int64              `yaml:"seed"`
	Params        map[string]float64 `yaml:"params"`
}

// StepResult pairs a finished run with the config that produced it.
type StepResult struct {
	Step   string
	Config runner.Config
	Result *runner.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, ErrEmptyScenario
	}

	return &scenario, nil
}

// Config resolves the step against the runner defaults.
func (s ScenarioStep) Config() (runner.Config, error) {
	cfg := runner.DefaultConfig()
	if s.Particles != nil {
		cfg.Particles = *s.Particles
	}
	if s.Duration > 0 {
		cfg.Duration = s.Duration
	}
	if s.FrameRate > 0 {
		cfg.FrameRate = s.FrameRate
	}
	if s.ResetInterval != nil {
		cfg.ResetInterval = *s.ResetInterval
	}
	cfg.Seed = s.Seed

	for name, v := range s.Params {
		if err := cfg.Params.SetParam(name, v); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// RunScenario executes the steps in order with fresh default metrics each.
// Results of completed steps are returned alongside the first error.
func RunScenario(ctx context.Context, scenario *Scenario, speedLimit float64) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		r := runner.New()
		for _, m := range metrics.Defaults(speedLimit) {
			r.AddMetric(m)
		}

		result, err := r.Run(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: name, Config: cfg, Result: result})
	}

	return results, nil
}

// ParameterSweep runs the same seeded scene across evenly spaced values of
// one physics parameter.
type ParameterSweep struct {
	Base      runner.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue   float64
	Collisions   int
	WallBounces  int
	FinalKinetic float64
}

func (sw *ParameterSweep) Values() []float64 {
	if sw.NumSteps <= 1 {
		return []float64{sw.ParamMin}
	}
	step := (sw.ParamMax - sw.ParamMin) / float64(sw.NumSteps-1)
	vals := make([]float64, sw.NumSteps)
	for i := range vals {
		vals[i] = sw.ParamMin + float64(i)*step
	}
	return vals
}

func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	values := sweep.Values()
	results := make([]SweepResult, 0, len(values))

	for _, v := range values {
		cfg := sweep.Base
		if err := cfg.Params.SetParam(sweep.ParamName, v); err != nil {
			return nil, err
		}

		counter := &eventCounter{}
		r := runner.New()
		r.AddObserver(counter)

		result, err := r.Run(ctx, cfg)
		if err != nil {
			return nil, err
		}

		res := SweepResult{
			ParamValue:  v,
			Collisions:  result.Collisions,
			WallBounces: counter.wallBounces,
		}
		for _, p := range result.Final {
			res.FinalKinetic += p.KineticEnergy()
		}
		results = append(results, res)
	}

	return results, nil
}

type eventCounter struct {
	wallBounces int
}

func (c *eventCounter) OnFrame(s *physics.Simulation, t float64) {
	c.wallBounces += s.Stats().WallBounces
}
