package viz

import (
	"math"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/bouncebox/internal/physics"
	"github.com/san-kum/bouncebox/internal/vecmath"
)

const (
	DefaultFOV  = math.Pi / 2
	DefaultNear = 1.0
)

// Camera is a perspective camera looking at the origin.
type Camera struct {
	Eye     vecmath.Vec3
	Forward vecmath.Vec3
	Right   vecmath.Vec3
	Up      vecmath.Vec3
	FOV     float64
	Near    float64
	Far     float64
	Zoom    float64
}

// NewCamera places the eye at eye, aimed at the origin with +z as world up.
func NewCamera(eye vecmath.Vec3, far float64) *Camera {
	c := &Camera{FOV: DefaultFOV, Near: DefaultNear, Far: far, Zoom: 1.0}
	c.LookFrom(eye)
	return c
}

// BoxCamera is the default view of a box of the given edge length: eye at
// (box, -box, 0) and far plane at four box lengths.
func BoxCamera(boxSize float32) *Camera {
	return NewCamera(vecmath.V(boxSize, -boxSize, 0), 4*float64(boxSize))
}

func (c *Camera) LookFrom(eye vecmath.Vec3) {
	c.Eye = eye
	c.Forward = eye.Scale(-1).Normalized()
	c.Right = c.Forward.Cross(vecmath.V(0, 0, 1)).Normalized()
	c.Up = c.Right.Cross(c.Forward)
}

// Orbit rotates the eye about the world z axis by angle radians.
func (c *Camera) Orbit(angle float64) {
	sin, cos := math.Sincos(angle)
	e := c.Eye
	c.LookFrom(vecmath.V(
		float32(float64(e.X)*cos-float64(e.Y)*sin),
		float32(float64(e.X)*sin+float64(e.Y)*cos),
		e.Z,
	))
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// focal is the screen-space scale at unit depth for a sw x sh target.
func (c *Camera) focal(sw, sh int) float64 {
	minDim := math.Min(float64(sw), float64(sh))
	return c.Zoom * (minDim / 2) / math.Tan(c.FOV/2)
}

// Project converts world coordinates to screen coordinates.
// Returns x, y, depth along the view axis, and visibility.
func (c *Camera) Project(p vecmath.Vec3, sw, sh int) (int, int, float64, bool) {
	rel := p.Sub(c.Eye)
	depth := float64(rel.Dot(c.Forward))
	if depth < c.Near || (c.Far > 0 && depth > c.Far) {
		return 0, 0, depth, false
	}
	f := c.focal(sw, sh) / depth
	sx := int(math.Round(float64(rel.Dot(c.Right))*f)) + sw/2
	sy := int(math.Round(-float64(rel.Dot(c.Up))*f)) + sh/2
	return sx, sy, depth, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// ScreenRadius is the projected radius of a sphere of radius r at depth.
func (c *Camera) ScreenRadius(r float32, depth float64, sw, sh int) float64 {
	if depth <= 0 {
		return 0
	}
	return float64(r) * c.focal(sw, sh) / depth
}

type Edge struct {
	Start, End vecmath.Vec3
}

// BoxEdges returns the 12 edges of the axis aligned box of edge size centered
// at the origin.
func BoxEdges(size float32) []Edge {
	s := size / 2
	v := []vecmath.Vec3{
		{X: -s, Y: -s, Z: -s}, {X: s, Y: -s, Z: -s}, {X: s, Y: s, Z: -s}, {X: -s, Y: s, Z: -s},
		{X: -s, Y: -s, Z: s}, {X: s, Y: -s, Z: s}, {X: s, Y: s, Z: s}, {X: -s, Y: s, Z: s},
	}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	edges := make([]Edge, len(ei))
	for i, e := range ei {
		edges[i] = Edge{v[e[0]], v[e[1]]}
	}
	return edges
}

// Sprite is one projected particle.
type Sprite struct {
	X, Y   int
	Radius float64
	Depth  float64
	Color  lipgloss.Color
}

// ProjectParticles returns the visible particles ordered far to near.
func ProjectParticles(particles []physics.Particle, cam *Camera, sw, sh int) []Sprite {
	sprites := make([]Sprite, 0, len(particles))
	for _, p := range particles {
		x, y, depth, ok := cam.Project(p.Position, sw, sh)
		if !ok {
			continue
		}
		sprites = append(sprites, Sprite{
			X:      x,
			Y:      y,
			Radius: cam.ScreenRadius(p.Radius, depth, sw, sh),
			Depth:  depth,
			Color:  ParticleColor(p.Color),
		})
	}
	sort.SliceStable(sprites, func(i, j int) bool { return sprites[i].Depth > sprites[j].Depth })
	return sprites
}

// RenderScene draws the box wireframe and the particles, nearer particles
// painted over farther ones.
func RenderScene(c *Canvas, cam *Camera, boxSize float32, particles []physics.Particle, theme Theme) {
	if c == nil || cam == nil {
		return
	}
	sw, sh := c.PixelWidth(), c.PixelHeight()
	for _, e := range BoxEdges(boxSize) {
		x1, y1, d1, v1 := cam.Project(e.Start, sw, sh)
		x2, y2, d2, v2 := cam.Project(e.End, sw, sh)
		// an end behind the near plane has no screen position
		if d1 < cam.Near || d2 < cam.Near {
			continue
		}
		if v1 || v2 {
			c.DrawLine(x1, y1, x2, y2, theme.Box)
		}
	}
	for _, s := range ProjectParticles(particles, cam, sw, sh) {
		c.FillDisc(s.X, s.Y, int(math.Round(s.Radius)), s.Color)
	}
}

// ParticleColor converts an RGB color with components in [0, 1] to hex.
func ParticleColor(rgb vecmath.Vec3) lipgloss.Color {
	return lipgloss.Color(hexColor(channel(rgb.X), channel(rgb.Y), channel(rgb.Z)))
}

func channel(v float32) int {
	return int(math.Round(float64(vecmath.Clamp(v, 0, 1)) * 255))
}
