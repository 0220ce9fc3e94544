package vecmath

import "math"

// Vec3 is a float32 3D vector. Values are passed by copy.
type Vec3 struct {
	X, Y, Z float32
}

func V(x, y, z float32) Vec3 { return Vec3{x, y, z} }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float32   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) NormSq() float32      { return v.Dot(v) }
func (v Vec3) Norm() float32        { return float32(math.Sqrt(float64(v.NormSq()))) }
func (v Vec3) Equal(o Vec3) bool    { return v.X == o.X && v.Y == o.Y && v.Z == o.Z }
func (v Vec3) Array() [3]float32    { return [3]float32{v.X, v.Y, v.Z} }
func (v Vec3) Float64() [3]float64  { return [3]float64{float64(v.X), float64(v.Y), float64(v.Z)} }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

// Normalized returns v scaled to unit length. The zero vector maps to itself.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return v.Scale(1 / n)
}

// Axis returns component i (0=x, 1=y, 2=z).
func (v Vec3) Axis(i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// SetAxis sets component i (0=x, 1=y, 2=z).
func (v *Vec3) SetAxis(i int, val float32) {
	switch i {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	default:
		v.Z = val
	}
}

// IsFinite reports whether no component is NaN or Inf.
func (v Vec3) IsFinite() bool {
	for _, c := range v.Array() {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
