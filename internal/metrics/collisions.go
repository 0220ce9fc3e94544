package metrics

import "github.com/san-kum/bouncebox/internal/physics"

// CollisionRate is the mean number of sphere-sphere impulses per frame.
type CollisionRate struct {
	name    string
	sum     float64
	samples int
}

func NewCollisionRate() *CollisionRate {
	return &CollisionRate{name: "collision_rate"}
}

func (c *CollisionRate) Name() string {
	return c.name
}

func (c *CollisionRate) Observe(s *physics.Simulation, t float64) {
	c.sum += float64(s.Stats().Collisions)
	c.samples++
}

func (c *CollisionRate) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *CollisionRate) Reset() {
	c.sum = 0
	c.samples = 0
}
