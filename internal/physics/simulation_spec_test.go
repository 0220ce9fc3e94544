package physics

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bouncebox/internal/vecmath"
)

var _ = Describe("Simulation", func() {
	var s *Simulation

	BeforeEach(func() {
		s = New(rand.New(rand.NewSource(99)))
	})

	Describe("Reset", func() {
		DescribeTable("populates the box",
			func(n int) {
				s.Reset(n)
				Expect(s.Particles()).To(HaveLen(n))
				for _, p := range s.Particles() {
					Expect(p.Radius).To(BeNumerically(">=", s.MinRadius()))
					Expect(p.Radius).To(BeNumerically("<=", s.MaxRadius()))
					Expect(p.Mass).To(Equal(p.Radius * p.Radius * p.Radius))
				}
			},
			Entry("empty", 0),
			Entry("single", 1),
			Entry("default", 50),
			Entry("dense", 400),
		)

		It("reports the fallback frame rate before any frame", func() {
			s.Reset(25)
			Expect(s.FPS()).To(Equal(float32(60.0)))
		})

		It("halves the radius range when the count quadruples", func() {
			s.Reset(50)
			max50 := s.MaxRadius()
			s.Reset(200)
			Expect(s.MaxRadius()).To(BeNumerically("~", max50/2, 1e-6))
		})
	})

	Describe("Advance", func() {
		BeforeEach(func() {
			s.Reset(80)
		})

		It("does not integrate on the baseline frame", func() {
			before := append([]Particle(nil), s.Particles()...)
			s.Advance(2.0)
			Expect(s.Frames()).To(BeZero())
			Expect(s.Elapsed()).To(BeZero())
			for i, p := range s.Particles() {
				Expect(p.Position).To(Equal(before[i].Position))
			}
		})

		It("averages the frame rate over elapsed frames", func() {
			for i := 1; i <= 31; i++ {
				s.Advance(float32(i) * 0.05)
			}
			Expect(s.Frames()).To(Equal(uint32(30)))
			Expect(s.FPS()).To(BeNumerically("~", 20, 0.01))
		})

		It("keeps every particle inside the box", func() {
			half := s.Params().HalfBox()
			for i := 1; i <= 300; i++ {
				s.Advance(float32(i) / 120)
			}
			for _, p := range s.Particles() {
				Expect(p.Position.X).To(BeNumerically(">=", -half))
				Expect(p.Position.X).To(BeNumerically("<=", half))
				Expect(p.Position.Z).To(BeNumerically(">=", -half))
				Expect(p.Position.Z).To(BeNumerically("<=", half))
			}
			Expect(s.Valid()).To(BeTrue())
		})

		It("never changes the particle count", func() {
			for i := 1; i <= 50; i++ {
				s.Advance(float32(i) / 60)
			}
			Expect(s.Particles()).To(HaveLen(80))
			Expect(s.ParticleCount()).To(Equal(80))
		})
	})

	Describe("Collide", func() {
		It("turns an approaching pair into a separating one", func() {
			p1 := Particle{Position: vecmath.V(0, 0, 0), Velocity: vecmath.V(1, 0, 0), Radius: 0.5, Mass: 0.125}
			p2 := Particle{Position: vecmath.V(0.9, 0, 0), Velocity: vecmath.V(0, 0, 0), Radius: 0.25, Mass: 0.015625}

			Expect(Collide(&p1, &p2, DefaultESphere)).To(BeTrue())
			Expect(p2.Velocity.X).To(BeNumerically(">", p1.Velocity.X))
			Expect(p1.Velocity.Y).To(BeZero())
			Expect(Collide(&p1, &p2, DefaultESphere)).To(BeFalse())
		})

		It("ignores a particle paired with itself", func() {
			p := Particle{Position: vecmath.V(0, 0, 0), Velocity: vecmath.V(1, 1, 1), Radius: 0.5, Mass: 0.125}
			Expect(Collide(&p, &p, DefaultESphere)).To(BeFalse())
			Expect(p.Velocity).To(Equal(vecmath.V(1, 1, 1)))
		})
	})
})
