package physics

import "github.com/san-kum/bouncebox/internal/vecmath"

// Particle is a rigid sphere. Radius, Mass and Color never change after construction.
type Particle struct {
	Position vecmath.Vec3
	Velocity vecmath.Vec3
	Radius   float32
	Mass     float32 // Radius^3, uniform density
	Color    vecmath.Vec3
}

// RandomParticle draws a particle with radius in [minRadius, maxRadius].
//
// Position and velocity directions come from vecmath.RandomDirection, so they
// lean toward the cube diagonals. Draw order is radius, position magnitude,
// position direction, velocity magnitude, velocity direction, color.
func RandomParticle(r vecmath.Rand, minRadius, maxRadius, boxSize float32) Particle {
	radius := vecmath.RandRange(r, minRadius, maxRadius)

	posMag := r.Float32() * positionScale * boxSize
	pos := vecmath.RandomDirection(r).Scale(posMag)

	velMag := r.Float32() * velocityScale * boxSize
	vel := vecmath.RandomDirection(r).Scale(velMag)

	return Particle{
		Position: pos,
		Velocity: vel,
		Radius:   radius,
		Mass:     radius * radius * radius,
		Color:    vecmath.V(r.Float32(), r.Float32(), r.Float32()),
	}
}

func (p *Particle) Momentum() vecmath.Vec3 { return p.Velocity.Scale(p.Mass) }

func (p *Particle) KineticEnergy() float64 {
	return 0.5 * float64(p.Mass) * float64(p.Velocity.NormSq())
}
