package metrics

import (
	"math"

	"github.com/san-kum/bouncebox/internal/physics"
)

// Stability is the fraction of frames where the state is finite and no
// particle exceeds the speed threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(sim *physics.Simulation, t float64) {
	s.samples++
	if !sim.Valid() {
		s.violations++
		return
	}
	for _, p := range sim.Particles() {
		if math.Sqrt(float64(p.Velocity.NormSq())) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
