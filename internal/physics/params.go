package physics

import (
	"fmt"
	"sort"

	"github.com/san-kum/bouncebox/internal/vecmath"
)

const (
	DefaultBoxSize = 4.0
	DefaultGravity = 9.80665
	DefaultESphere = 0.9
	DefaultEWall   = 0.6
	DefaultCAir    = 0.05

	// FallbackFPS is reported while no time has elapsed.
	FallbackFPS = 60.0

	// min radius = MinRadiusFactor * box / sqrt(n), max radius = RadiusRatio * min radius
	MinRadiusFactor = 0.15
	RadiusRatio     = 4.0

	positionScale = 0.5
	velocityScale = 5.0
)

// Params holds the physical constants of the box.
type Params struct {
	BoxSize float32
	Gravity float32 // magnitude, applied along -z
	ESphere float32 // sphere-sphere restitution
	EWall   float32 // sphere-wall restitution
	CAir    float32 // drag coefficient
}

func DefaultParams() Params {
	return Params{
		BoxSize: DefaultBoxSize,
		Gravity: DefaultGravity,
		ESphere: DefaultESphere,
		EWall:   DefaultEWall,
		CAir:    DefaultCAir,
	}
}

// GravityVector returns the constant downward acceleration.
func (p Params) GravityVector() vecmath.Vec3 {
	return vecmath.V(0, 0, -p.Gravity)
}

func (p Params) HalfBox() float32 { return 0.5 * p.BoxSize }

func (p Params) GetParams() map[string]float64 {
	return map[string]float64{
		"box_size": float64(p.BoxSize),
		"gravity":  float64(p.Gravity),
		"e_sphere": float64(p.ESphere),
		"e_wall":   float64(p.EWall),
		"c_air":    float64(p.CAir),
	}
}

// ParamNames lists the names accepted by SetParam in sorted order.
func ParamNames() []string {
	names := make([]string, 0, 5)
	for name := range DefaultParams().GetParams() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Params) SetParam(name string, value float64) error {
	v := float32(value)
	switch name {
	case "box_size":
		if v <= 0 {
			return fmt.Errorf("%w: box_size must be positive, got %v", ErrParameterBounds, value)
		}
		p.BoxSize = v
	case "gravity":
		if v < 0 {
			return fmt.Errorf("%w: gravity must be non-negative, got %v", ErrParameterBounds, value)
		}
		p.Gravity = v
	case "e_sphere":
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: e_sphere must lie in [0, 1], got %v", ErrParameterBounds, value)
		}
		p.ESphere = v
	case "e_wall":
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: e_wall must lie in [0, 1], got %v", ErrParameterBounds, value)
		}
		p.EWall = v
	case "c_air":
		if v < 0 {
			return fmt.Errorf("%w: c_air must be non-negative, got %v", ErrParameterBounds, value)
		}
		p.CAir = v
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}

// Validate checks every field against the SetParam bounds.
func (p Params) Validate() error {
	q := p
	for name, v := range p.GetParams() {
		if err := q.SetParam(name, v); err != nil {
			return err
		}
	}
	return nil
}
