// Package physics simulates spheres bouncing inelastically inside a fixed cube.
//
// The package is built around a single frame-driven [Simulation]:
//
//   - [Clock]: derives the frame delta and average FPS from caller timestamps
//   - [Particle]: a rigid, non-rotating sphere and its randomized construction
//   - [SpatialGrid]: uniform broad-phase grid rebuilt every frame
//   - [Collide]: impulse exchange between two overlapping, approaching spheres
//
// # Frame Pipeline
//
// Each [Simulation.Advance] integrates positions (hard-clamped into the box),
// integrates velocities (gravity, air drag, wall restitution), buckets every
// particle into the grid and resolves sphere-sphere contacts against the 27
// neighboring cells.
//
//	s := physics.New(rand.New(rand.NewSource(1)))
//	s.Reset(50)
//	for _, ts := range timestamps {
//	    s.Advance(ts)
//	}
//
// # Thread Safety
//
// Simulation instances are NOT thread-safe. Reset, Repeat and Advance must be
// called from one goroutine; use one Simulation per goroutine for parallel runs.
package physics
