package metrics

import "github.com/san-kum/bouncebox/internal/physics"

// Metric aggregates a diagnostic over the frames of a run.
type Metric interface {
	Name() string
	Observe(s *physics.Simulation, t float64)
	Value() float64
	Reset()
}

// EpochAware metrics are told when the scene is re-randomized.
type EpochAware interface {
	NewEpoch()
}

func Defaults(speedLimit float64) []Metric {
	return []Metric{
		NewKineticEnergy(),
		NewEnergyDrift(),
		NewCollisionRate(),
		NewStability(speedLimit),
	}
}
