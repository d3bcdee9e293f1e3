package physics

import (
	"bytes"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Particle", func() {

	var (
		p *Particle
	)

	BeforeEach(func() {
		var err error
		p, err = New("test_particle", 0.5, 2, 100)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should expose the construction values", func() {
		Expect(p.Name()).To(Equal("test_particle"))
		Expect(p.Mass()).To(Equal(0.5))
		Expect(p.Charge()).To(Equal(2.0))
		Expect(p.Momentum()).To(Equal(100.0))
		Expect(p.LightSpeed()).To(Equal(DefaultLightSpeed))
	})

	DescribeTable("rejects a negative mass",
		func(name string, charge, momentum float64) {
			_, err := New(name, -1, charge, momentum)
			Expect(err).To(MatchError(ErrInvalidArgument))
			Expect(err.Error()).To(ContainSubstring(name))
		},
		Entry("plain", "test_particle_2", -2.0, 100.0),
		Entry("neutral at rest", "n", 0.0, 0.0),
		Entry("negative momentum", "x", 1.0, -5.0),
	)

	It("should accept a massless particle", func() {
		photon, err := New("photon", 0, 0, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(photon.Energy()).To(BeNumerically("~", 10, 1e-12))
		Expect(photon.Beta()).To(BeNumerically("~", 1, 1e-12))
	})

	Context("momentum", func() {
		It("should clamp negative values to zero", func() {
			Expect(p.SetMomentum(-5)).To(BeTrue())
			Expect(p.Momentum()).To(Equal(0.0))
		})

		DescribeTable("should clamp values with no finite momentum",
			func(v float64) {
				Expect(p.SetMomentum(v)).To(BeTrue())
				Expect(p.Momentum()).To(Equal(0.0))
				Expect(p.Beta()).To(Equal(0.0))
			},
			Entry("NaN", math.NaN()),
			Entry("+Inf", math.Inf(1)),
			Entry("-Inf", math.Inf(-1)),
		)

		It("should assign non-negative values", func() {
			Expect(p.SetMomentum(42)).To(BeFalse())
			Expect(p.Momentum()).To(Equal(42.0))
		})

		It("should clamp a negative initial momentum", func() {
			q, err := New("q", 1, 0, -3)
			Expect(err).NotTo(HaveOccurred())
			Expect(q.Momentum()).To(Equal(0.0))
		})
	})

	Context("energy", func() {
		It("should equal the mass at rest", func() {
			p.SetMomentum(0)
			Expect(p.Energy()).To(Equal(0.5))
		})

		It("should follow sqrt(p^2 + m^2)", func() {
			Expect(p.Energy()).To(BeNumerically("~", math.Sqrt(100*100+0.25), 1e-9))
		})

		DescribeTable("should round trip a valid energy",
			func(e, tolerance float64) {
				Expect(p.SetEnergy(e)).To(Succeed())
				Expect(p.Energy()).To(BeNumerically("~", e, tolerance))
				Expect(math.IsInf(p.Momentum(), 0)).To(BeFalse())
			},
			Entry("moderate", 2000.0, 1e-9),
			Entry("huge", 1e200, 1e188),
		)

		It("should reject an infinite energy and keep the momentum", func() {
			Expect(p.SetEnergy(math.Inf(1))).To(MatchError(ErrInvalidArgument))
			Expect(p.Momentum()).To(Equal(100.0))
			Expect(p.SetEnergy(math.NaN())).To(MatchError(ErrEnergyBelowMass))
			Expect(p.Momentum()).To(Equal(100.0))
		})

		It("should reject energies below the mass and keep the momentum", func() {
			err := p.SetEnergy(0.1)
			Expect(err).To(MatchError(ErrEnergyBelowMass))
			var rej *RejectionError
			Expect(errors.As(err, &rej)).To(BeTrue())
			Expect(rej.Param).To(Equal("energy"))
			Expect(rej.Value).To(Equal(0.1))
			Expect(p.Momentum()).To(Equal(100.0))
		})

		It("should bring the particle to rest at exactly the mass", func() {
			Expect(p.SetEnergy(0.5)).To(Succeed())
			Expect(p.Momentum()).To(Equal(0.0))
		})
	})

	Context("beta", func() {
		It("should be zero for a massless particle at rest", func() {
			q, err := New("q", 0, 0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(q.Beta()).To(Equal(0.0))
		})

		DescribeTable("should round trip values in [0, 1)",
			func(b float64) {
				Expect(p.SetBeta(b)).To(Succeed())
				Expect(p.Beta()).To(BeNumerically("~", b, 1e-12))
			},
			Entry("rest", 0.0),
			Entry("slow", 0.1),
			Entry("half", 0.5),
			Entry("fast", 0.8),
			Entry("ultra", 0.999),
		)

		DescribeTable("should reject values outside [0, 1]",
			func(b float64) {
				Expect(p.SetBeta(b)).To(MatchError(ErrBetaOutOfRange))
				Expect(p.Momentum()).To(Equal(100.0))
			},
			Entry("negative", -1.0),
			Entry("above one", 1.5),
			Entry("NaN", math.NaN()),
		)

		It("should reject beta = 1 for a proton", func() {
			proton, err := NewProton(200)
			Expect(err).NotTo(HaveOccurred())
			Expect(proton.SetBeta(1)).To(MatchError(ErrLightSpeed))
			Expect(proton.Momentum()).To(Equal(200.0))
		})

		It("should keep a proton below beta = 1 at the last float before it", func() {
			proton, err := NewProton(200)
			Expect(err).NotTo(HaveOccurred())
			Expect(proton.SetBeta(math.Nextafter(1, 0))).To(Succeed())
			Expect(proton.Beta()).To(BeNumerically("<", 1))
			Expect(math.IsInf(proton.Momentum(), 0)).To(BeFalse())
		})

		It("should accept beta = 1 for a massless particle", func() {
			photon, err := New("photon", 0, 0, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(photon.SetBeta(1)).To(Succeed())
			Expect(photon.Momentum()).To(Equal(7.0))
		})

		It("should match gamma*m*beta for a proton", func() {
			proton, err := NewProton(200)
			Expect(err).NotTo(HaveOccurred())
			Expect(proton.SetBeta(0.8)).To(Succeed())
			Expect(proton.Momentum()).To(BeNumerically("~", 938.272*0.8/0.6, 1e-9))
			Expect(proton.Gamma()).To(BeNumerically("~", 1/0.6, 1e-9))
		})
	})

	Context("invariants", func() {
		It("should keep beta in [0, 1] and energy above the mass", func() {
			for _, m := range []float64{0, 0.511, 938.272, 3727.3} {
				for _, mom := range []float64{0, 1e-6, 1, 100, 1e6, 1e12, 1e300, math.MaxFloat64} {
					q, err := New("q", m, 0, mom)
					Expect(err).NotTo(HaveOccurred())
					Expect(q.Beta()).To(BeNumerically(">=", 0))
					if m > 0 {
						Expect(q.Beta()).To(BeNumerically("<", 1), "mass %g momentum %g", m, mom)
					} else {
						Expect(q.Beta()).To(BeNumerically("<=", 1))
					}
					Expect(q.Energy()).To(BeNumerically(">=", m))
				}
			}
		})
	})

	Context("light speed", func() {
		It("should use the configured constant", func() {
			q, err := New("q", 2, 0, 3, WithLightSpeed(10))
			Expect(err).NotTo(HaveOccurred())
			Expect(q.LightSpeed()).To(Equal(10.0))
			Expect(q.Energy()).To(BeNumerically("~", math.Hypot(30, 200), 1e-9))
			Expect(q.SetEnergy(400)).To(Succeed())
			Expect(q.Energy()).To(BeNumerically("~", 400, 1e-9))
			Expect(q.SetBeta(0.6)).To(Succeed())
			Expect(q.Beta()).To(BeNumerically("~", 0.6, 1e-12))
		})

		It("should ignore non-positive and infinite values", func() {
			q, err := New("q", 2, 0, 3, WithLightSpeed(0))
			Expect(err).NotTo(HaveOccurred())
			Expect(q.LightSpeed()).To(Equal(DefaultLightSpeed))
			q, err = New("q", 2, 0, 3, WithLightSpeed(math.Inf(1)))
			Expect(err).NotTo(HaveOccurred())
			Expect(q.LightSpeed()).To(Equal(DefaultLightSpeed))
		})
	})

	Context("params", func() {
		It("should set kinematic views by name", func() {
			Expect(p.SetParam("momentum", 3)).To(Succeed())
			Expect(p.Momentum()).To(Equal(3.0))
			Expect(p.SetParam("beta", 0.5)).To(Succeed())
			Expect(p.GetParams()["beta"]).To(BeNumerically("~", 0.5, 1e-12))
		})

		It("should refuse fixed and unknown names", func() {
			Expect(p.SetParam("mass", 3)).To(MatchError(ErrImmutableParam))
			Expect(p.SetParam("spin", 3)).To(MatchError(ErrUnknownParam))
		})
	})

	It("should print a one-line summary", func() {
		var buf bytes.Buffer
		Expect(p.PrintInfo(&buf)).To(Succeed())
		Expect(buf.String()).To(Equal(
			"Particle \"test_particle\": mass = 0.5 MeV/c^2, charge = 2 e, momentum = 100\n"))
	})
})

var _ = Describe("Species", func() {

	It("should build presets with the fixed constants", func() {
		proton, err := NewProton(200)
		Expect(err).NotTo(HaveOccurred())
		Expect(proton.Name()).To(Equal("Proton"))
		Expect(proton.Mass()).To(Equal(938.272))
		Expect(proton.Charge()).To(Equal(1.0))

		alpha, err := NewAlpha(300)
		Expect(err).NotTo(HaveOccurred())
		Expect(alpha.Mass()).To(Equal(3727.3))
		Expect(alpha.Charge()).To(Equal(4.0))
		Expect(alpha.SetEnergy(2000)).To(MatchError(ErrEnergyBelowMass))
		Expect(alpha.Momentum()).To(Equal(300.0))
	})

	It("should resolve presets and custom species case-insensitively", func() {
		c := NewCatalog()
		s, err := c.Get("PROTON")
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal(Proton))

		Expect(c.Add(Species{Name: "Muon", Mass: 105.66, Charge: -1})).To(Succeed())
		Expect(c.Names()).To(Equal([]string{"alpha", "muon", "proton"}))

		_, err = c.Get("tachyon")
		Expect(err).To(HaveOccurred())
	})

	It("should reject invalid custom species", func() {
		c := NewCatalog()
		Expect(c.Add(Species{Name: "bad", Mass: -1})).To(MatchError(ErrInvalidArgument))
		Expect(c.Add(Species{Mass: 1})).To(MatchError(ErrInvalidArgument))
	})
})
