package physics

import "math"

// Clock tracks elapsed time and frame count from caller supplied timestamps.
// It never samples wall-clock time itself.
type Clock struct {
	prevTime    float32 // 0 means no previous frame yet
	totalTime   float32
	totalFrames uint32
}

// Reset forgets the previous frame and zeroes the totals.
func (c *Clock) Reset() {
	c.prevTime = 0
	c.totalTime = 0
	c.totalFrames = 0
}

// Advance records a frame at time t and returns the delta since the last
// frame. The first call after Reset only establishes the baseline and returns 0
// without counting a frame.
func (c *Clock) Advance(t float32) float32 {
	var dt float32
	if c.prevTime > 0 {
		dt = t - c.prevTime
		c.totalFrames++
	}
	c.totalTime += dt
	c.prevTime = t
	return dt
}

// FPS is the average frame rate since Reset, or FallbackFPS when that is not finite.
func (c *Clock) FPS() float32 {
	fps := float64(float32(c.totalFrames) / c.totalTime)
	if math.IsNaN(fps) || math.IsInf(fps, 0) {
		return FallbackFPS
	}
	return float32(fps)
}

// TotalTime is the sum of frame deltas since Reset.
func (c *Clock) TotalTime() float32 { return c.totalTime }

// TotalFrames counts frames that produced a delta since Reset.
func (c *Clock) TotalFrames() uint32 { return c.totalFrames }
