package runner

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRunnerSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Runner Suite")
}

var _ = Describe("Runner", func() {
	var cfg Config

	BeforeEach(func() {
		cfg = testConfig()
	})

	It("settles a single particle on the floor", func() {
		cfg.Particles = 1
		cfg.Duration = 20
		cfg.Params.CAir = 0.5

		result, err := New().Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Collisions).To(BeZero())

		first := result.Frames[0]
		last := result.Frames[len(result.Frames)-1]
		Expect(last.KineticEnergy + last.PotentialEnergy).To(BeNumerically("<", first.KineticEnergy+first.PotentialEnergy))
	})

	It("counts a repeat for every elapsed interval", func() {
		cfg.Duration = 3
		cfg.ResetInterval = 1

		result, err := New().Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Repeats).To(Equal(2))
		Expect(result.Final).To(HaveLen(cfg.Particles))
	})

	It("records per-frame collisions from a crowded box", func() {
		cfg.Particles = 300

		result, err := New().Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())

		total := 0
		for _, f := range result.Frames {
			total += f.Collisions
		}
		Expect(total).To(Equal(result.Collisions))
		Expect(total).To(BeNumerically(">", 0))
	})
})
