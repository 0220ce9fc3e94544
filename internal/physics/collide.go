package physics

// Collide exchanges an impulse between p1 and p2 when they overlap and close
// along the line of centers. It reports whether velocities changed.
//
// Identity is by pointer, so Collide(p, p) is a no-op. Separating pairs are
// left alone, which makes a second visit of an already resolved pair harmless.
// Positions are never corrected; overlap resolves over later frames.
func Collide(p1, p2 *Particle, restitution float32) bool {
	if p1 == p2 {
		return false
	}

	d := p2.Position.Sub(p1.Position)
	if d.Norm() > p1.Radius+p2.Radius {
		return false
	}

	// coincident centers normalize to zero and fall through the s <= 0 check
	d = d.Normalized()
	s := p1.Velocity.Dot(d) - p2.Velocity.Dot(d)
	if s <= 0 {
		return false
	}

	total := p1.Mass + p2.Mass
	w1 := p2.Mass / total
	w2 := p1.Mass / total
	k := (1 + restitution) * s

	p1.Velocity = p1.Velocity.Sub(d.Scale(w1 * k))
	p2.Velocity = p2.Velocity.Add(d.Scale(w2 * k))
	return true
}
