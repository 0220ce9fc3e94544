package physics

import (
	"math"

	"github.com/san-kum/bouncebox/internal/vecmath"
)

// Stats counts the events of the most recent frame.
type Stats struct {
	Collisions  int
	WallBounces int
}

// Simulation owns the particles and the clock. Reset, Repeat and Advance are
// the only mutators.
type Simulation struct {
	params    Params
	rng       vecmath.Rand
	particles []Particle
	count     int
	minRadius float32
	maxRadius float32
	clock     Clock
	grid      SpatialGrid
	stats     Stats
}

type Option func(*Simulation)

func WithParams(p Params) Option {
	return func(s *Simulation) { s.params = p }
}

// New returns an empty simulation drawing randomness from rng.
func New(rng vecmath.Rand, opts ...Option) *Simulation {
	s := &Simulation{
		params: DefaultParams(),
		rng:    rng,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Radii returns the construction radius range for n particles. Both are zero
// when n is zero.
func Radii(n int, boxSize float32) (minRadius, maxRadius float32) {
	if n <= 0 {
		return 0, 0
	}
	minRadius = MinRadiusFactor * boxSize / float32(math.Sqrt(float64(n)))
	return minRadius, RadiusRatio * minRadius
}

// Reset replaces every particle with n freshly randomized ones and resets the
// clock. Negative counts are treated as zero.
func (s *Simulation) Reset(n int) {
	if n < 0 {
		n = 0
	}
	s.count = n
	s.minRadius, s.maxRadius = Radii(n, s.params.BoxSize)

	s.particles = s.particles[:0]
	for i := 0; i < n; i++ {
		s.particles = append(s.particles, RandomParticle(s.rng, s.minRadius, s.maxRadius, s.params.BoxSize))
	}
	s.clock.Reset()
	s.stats = Stats{}
}

// Repeat re-randomizes the scene keeping the particle count.
func (s *Simulation) Repeat() {
	s.Reset(s.count)
}

// Advance steps the simulation to timestamp (seconds, non-decreasing within a
// reset). The first call after Reset uses dt = 0.
func (s *Simulation) Advance(timestamp float32) {
	dt := s.clock.Advance(timestamp)
	s.stats = Stats{}

	s.integratePositions(dt)
	s.integrateVelocities(dt)

	if len(s.particles) == 0 {
		return
	}
	s.grid.Rebuild(s.params.BoxSize, 2*s.maxRadius, s.particles)
	s.resolveCollisions()
}

func (s *Simulation) integratePositions(dt float32) {
	half := s.params.HalfBox()
	for i := range s.particles {
		p := &s.particles[i]
		pos := p.Position.Add(p.Velocity.Scale(dt))
		// hard clamp, velocity untouched; fast particles can stick to walls
		p.Position = vecmath.V(
			vecmath.Clamp(pos.X, -half, half),
			vecmath.Clamp(pos.Y, -half, half),
			vecmath.Clamp(pos.Z, -half, half),
		)
	}
}

func (s *Simulation) integrateVelocities(dt float32) {
	half := s.params.HalfBox()
	g := s.params.GravityVector()
	for i := range s.particles {
		p := &s.particles[i]
		p.Velocity = p.Velocity.Add(g.Scale(dt))
		drag := s.params.CAir * (p.Radius * p.Radius / p.Mass)
		p.Velocity = p.Velocity.Sub(p.Velocity.Scale(drag).Scale(dt))

		for axis := 0; axis < 3; axis++ {
			x := p.Position.Axis(axis)
			v := p.Velocity.Axis(axis)
			if half-x <= p.Radius && v > 0 || x+half <= p.Radius && v < 0 {
				p.Velocity.SetAxis(axis, -s.params.EWall*v)
				s.stats.WallBounces++
			}
		}
	}
}

// resolveCollisions visits every particle's 27-cell neighborhood. Each pair is
// seen from both sides; the second visit is a no-op once the pair separates.
func (s *Simulation) resolveCollisions() {
	e := s.params.ESphere
	for i := range s.particles {
		p1 := &s.particles[i]
		ci, cj, ck := s.grid.CellOf(p1.Position.X, p1.Position.Y, p1.Position.Z)
		s.grid.Neighbors(ci, cj, ck, func(j int) {
			if Collide(p1, &s.particles[j], e) {
				s.stats.Collisions++
			}
		})
	}
}

// FPS is the average frame rate since the last reset, 60 before any elapsed time.
func (s *Simulation) FPS() float32 { return s.clock.FPS() }

// Particles exposes the live particle slice for rendering. Callers must not
// modify it.
func (s *Simulation) Particles() []Particle { return s.particles }

func (s *Simulation) ParticleCount() int { return s.count }
func (s *Simulation) MinRadius() float32 { return s.minRadius }
func (s *Simulation) MaxRadius() float32 { return s.maxRadius }
func (s *Simulation) Params() Params     { return s.params }
func (s *Simulation) Stats() Stats       { return s.stats }
func (s *Simulation) Elapsed() float32   { return s.clock.TotalTime() }
func (s *Simulation) Frames() uint32     { return s.clock.TotalFrames() }
func (s *Simulation) Grid() *SpatialGrid { return &s.grid }
