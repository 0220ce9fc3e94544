// Package viz renders the sphere box in the terminal.
//
// A [Canvas] of braille cells gives 2x4 sub-pixels per character. [Camera]
// projects the scene with a perspective look-at transform, and [Model] is a
// Bubble Tea program that advances the simulation from wall-clock ticks.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Re-randomize and restart the repeat timer
//	+/-   - Change the particle count
//	←/→   - Orbit the camera
//	↑/↓   - Zoom
//	T     - Cycle color themes
//	Q     - Quit
package viz
