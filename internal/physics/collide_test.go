package physics

import (
	"math"
	"testing"

	"github.com/san-kum/bouncebox/internal/vecmath"
)

func approx(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func TestCollideApproaching(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Particle
	}{
		{
			"head on equal mass",
			Particle{Position: vecmath.V(0, 0, 0), Velocity: vecmath.V(1, 0, 0), Radius: 0.5, Mass: 0.125},
			Particle{Position: vecmath.V(0.8, 0, 0), Velocity: vecmath.V(-1, 0, 0), Radius: 0.5, Mass: 0.125},
		},
		{
			"heavy hits light",
			Particle{Position: vecmath.V(0, 0, 0), Velocity: vecmath.V(2, 1, 0), Radius: 1, Mass: 1},
			Particle{Position: vecmath.V(0.5, 0.5, 0.5), Velocity: vecmath.V(0, 0, 0), Radius: 0.2, Mass: 0.008},
		},
		{
			"oblique with tangential motion",
			Particle{Position: vecmath.V(0, 0, 0), Velocity: vecmath.V(0.3, 4, -1), Radius: 0.3, Mass: 0.027},
			Particle{Position: vecmath.V(0.2, 0.1, 0.3), Velocity: vecmath.V(-2, 0, 0.5), Radius: 0.4, Mass: 0.064},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p1, p2 := tt.p1, tt.p2
			before := p1.Momentum().Add(p2.Momentum())

			if !Collide(&p1, &p2, DefaultESphere) {
				t.Fatal("expected an impulse")
			}

			d := p2.Position.Sub(p1.Position).Normalized()
			closing := p1.Velocity.Dot(d) - p2.Velocity.Dot(d)
			if closing > 1e-5 {
				t.Errorf("closing speed after collision = %v, want <= 0", closing)
			}

			dv1 := p1.Velocity.Sub(tt.p1.Velocity).Scale(p1.Mass)
			dv2 := p2.Velocity.Sub(tt.p2.Velocity).Scale(p2.Mass)
			sum := dv1.Add(dv2)
			if sum.Norm() > 1e-5 {
				t.Errorf("momentum change m1*dv1 + m2*dv2 = %v, want 0", sum)
			}

			after := p1.Momentum().Add(p2.Momentum())
			if after.Sub(before).Norm() > 1e-5 {
				t.Errorf("momentum %v -> %v", before, after)
			}

			// a second visit from the other side is a no-op
			if Collide(&p2, &p1, DefaultESphere) {
				t.Error("second pass over a resolved pair applied an impulse")
			}
		})
	}
}

func TestCollideRestitution(t *testing.T) {
	p1 := Particle{Position: vecmath.V(0, 0, 0), Velocity: vecmath.V(1, 0, 0), Radius: 0.5, Mass: 1}
	p2 := Particle{Position: vecmath.V(0.9, 0, 0), Velocity: vecmath.V(-1, 0, 0), Radius: 0.5, Mass: 1}

	Collide(&p1, &p2, 0.9)

	// closing speed 2 becomes separating speed 0.9 * 2
	if !approx(p1.Velocity.X, -0.9, 1e-6) || !approx(p2.Velocity.X, 0.9, 1e-6) {
		t.Errorf("got v1=%v v2=%v, want -0.9 / 0.9", p1.Velocity.X, p2.Velocity.X)
	}
}

func TestCollideNoOp(t *testing.T) {
	base := Particle{Position: vecmath.V(0, 0, 0), Velocity: vecmath.V(1, 0, 0), Radius: 0.5, Mass: 0.125}

	tests := []struct {
		name  string
		other Particle
	}{
		{"too far", Particle{Position: vecmath.V(1.1, 0, 0), Velocity: vecmath.V(-1, 0, 0), Radius: 0.5, Mass: 0.125}},
		{"separating", Particle{Position: vecmath.V(0.5, 0, 0), Velocity: vecmath.V(3, 0, 0), Radius: 0.5, Mass: 0.125}},
		{"parallel", Particle{Position: vecmath.V(0.5, 0, 0), Velocity: vecmath.V(1, 0, 0), Radius: 0.5, Mass: 0.125}},
		{"coincident", Particle{Position: vecmath.V(0, 0, 0), Velocity: vecmath.V(-1, 0, 0), Radius: 0.5, Mass: 0.125}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p1, p2 := base, tt.other
			if Collide(&p1, &p2, DefaultESphere) {
				t.Error("expected no impulse")
			}
			if p1 != base || p2 != tt.other {
				t.Error("velocities changed on a no-op")
			}
		})
	}
}

func TestCollideSelf(t *testing.T) {
	p := Particle{Position: vecmath.V(0, 0, 0), Velocity: vecmath.V(1, 2, 3), Radius: 0.5, Mass: 0.125}
	before := p

	if Collide(&p, &p, DefaultESphere) {
		t.Error("self collision applied an impulse")
	}
	if p != before {
		t.Errorf("self collision changed particle: %+v", p)
	}
}
