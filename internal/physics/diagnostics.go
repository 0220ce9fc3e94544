package physics

import "github.com/san-kum/bouncebox/internal/vecmath"

func (s *Simulation) KineticEnergy() float64 {
	e := 0.0
	for i := range s.particles {
		e += s.particles[i].KineticEnergy()
	}
	return e
}

// PotentialEnergy is measured from the box floor.
func (s *Simulation) PotentialEnergy() float64 {
	half := float64(s.params.HalfBox())
	g := float64(s.params.Gravity)
	e := 0.0
	for i := range s.particles {
		p := &s.particles[i]
		e += float64(p.Mass) * g * (float64(p.Position.Z) + half)
	}
	return e
}

func (s *Simulation) Momentum() vecmath.Vec3 {
	var m vecmath.Vec3
	for i := range s.particles {
		m = m.Add(s.particles[i].Momentum())
	}
	return m
}

// Valid reports whether every position and velocity is finite. Advance never
// checks this itself; a NaN timestamp poisons the state silently.
func (s *Simulation) Valid() bool {
	for i := range s.particles {
		if !s.particles[i].Position.IsFinite() || !s.particles[i].Velocity.IsFinite() {
			return false
		}
	}
	return true
}
