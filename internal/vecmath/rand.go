package vecmath

// Rand is the uniform random source used for particle construction.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float32() float32
}

// Clamp limits n to [lo, hi].
func Clamp(n, lo, hi float32) float32 {
	if n > hi {
		n = hi
	}
	if n < lo {
		n = lo
	}
	return n
}

// RandRange returns a uniform sample in [lo, hi].
func RandRange(r Rand, lo, hi float32) float32 {
	return lo + (hi-lo)*r.Float32()
}

// RandomDirection normalizes three independent uniforms in [-0.5, 0.5].
// The result is a unit vector but it is NOT uniform over the sphere: directions
// toward the cube diagonals are more likely. Callers depend on this exact
// distribution for reproducible scenes, so leave it alone.
func RandomDirection(r Rand) Vec3 {
	x := r.Float32() - 0.5
	y := r.Float32() - 0.5
	z := r.Float32() - 0.5
	return Vec3{x, y, z}.Normalized()
}
