package physics_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/dynamo"
	"github.com/san-kum/orrery/internal/physics"
)

const sunMass = 1.989e30

func momentum(bs dynamo.Bodies) dynamo.Vec2 {
	var p dynamo.Vec2
	for _, b := range bs {
		p = p.Add(b.Vel.Scale(b.Mass))
	}
	return p
}

func totalMass(bs dynamo.Bodies) float64 {
	m := 0.0
	for _, b := range bs {
		m += b.Mass
	}
	return m
}

var _ = Describe("Integrator", func() {
	var integ *physics.Integrator

	BeforeEach(func() {
		integ = physics.New(physics.DefaultTuning())
	})

	Describe("two bodies without a projectile", func() {
		It("keeps the center-of-mass velocity constant", func() {
			bodies := dynamo.Bodies{
				{Name: "Sun", Mass: sunMass, Influencer: dynamo.NoInfluencer},
				{Name: "Earth", Mass: 5.97237e24, Pos: dynamo.Vec2{X: dynamo.AU}, Vel: dynamo.Vec2{Y: 29.78e3}, Influencer: dynamo.NoInfluencer},
			}
			m := totalMass(bodies)
			v0 := momentum(bodies).Scale(1 / m)

			for i := 0; i < 500; i++ {
				_, err := integ.Step(bodies, bodies.Primary(), physics.Probe{}, dynamo.Hour)
				Expect(err).NotTo(HaveOccurred())
			}

			v := momentum(bodies).Scale(1 / m)
			Expect(v.X).To(BeNumerically("~", v0.X, 1e-6))
			Expect(v.Y).To(BeNumerically("~", v0.Y, 1e-6))
			Expect(integ.Steps()).To(Equal(500))
		})

		It("returns the pre-step barycenter", func() {
			bodies := dynamo.Bodies{
				{Name: "A", Mass: 3, Influencer: dynamo.NoInfluencer},
				{Name: "B", Mass: 1, Pos: dynamo.Vec2{X: 4}, Influencer: dynamo.NoInfluencer},
			}
			res, err := integ.Step(bodies, 0, physics.Probe{}, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Barycenter.X).To(BeNumerically("~", 1.0, 1e-12))
			Expect(res.Barycenter.Y).To(BeZero())
		})
	})

	Describe("collisions", func() {
		It("fails without touching any velocity when two bodies coincide", func() {
			bodies := dynamo.Bodies{
				{Name: "Sun", Mass: sunMass, Vel: dynamo.Vec2{X: 1}, Influencer: dynamo.NoInfluencer},
				{Name: "Earth", Mass: 5.97e24, Pos: dynamo.Vec2{X: dynamo.AU}, Vel: dynamo.Vec2{Y: 29.78e3}, Influencer: dynamo.NoInfluencer},
				{Name: "Ghost", Mass: 7e22, Pos: dynamo.Vec2{X: dynamo.AU}, Vel: dynamo.Vec2{Y: 30e3}, Influencer: dynamo.NoInfluencer},
			}
			before := bodies.Clone()

			_, err := integ.Step(bodies, 0, physics.Probe{}, dynamo.Hour)

			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, dynamo.ErrCollision)).To(BeTrue())
			var ce *dynamo.CollisionError
			Expect(errors.As(err, &ce)).To(BeTrue())
			Expect(ce.A).To(Equal("Earth"))
			Expect(ce.B).To(Equal("Ghost"))
			Expect(bodies).To(Equal(before))
			Expect(integ.Steps()).To(BeZero())
		})

		It("skips a projectile sitting exactly on a body", func() {
			bodies := dynamo.Bodies{{Name: "Sun", Mass: sunMass, Influencer: dynamo.NoInfluencer}}
			p := &dynamo.Projectile{Mass: 480000, State: dynamo.Active}

			_, err := integ.Step(bodies, 0, physics.Probe{Projectile: p}, dynamo.Hour)

			Expect(err).NotTo(HaveOccurred())
			Expect(p.Vel).To(Equal(dynamo.Vec2{}))
			Expect(p.Pos.IsValid()).To(BeTrue())
		})
	})

	Describe("projectile", func() {
		It("falls toward a lone sun with magnitude G*M/d^2*dt", func() {
			bodies := dynamo.Bodies{{Name: "Sun", Mass: sunMass, Influencer: dynamo.NoInfluencer}}
			p := &dynamo.Projectile{Mass: 480000, Pos: dynamo.Vec2{X: dynamo.AU}, State: dynamo.Active}

			_, err := integ.Step(bodies, 0, physics.Probe{Projectile: p}, dynamo.Hour)
			Expect(err).NotTo(HaveOccurred())

			want := dynamo.G * sunMass / (dynamo.AU * dynamo.AU) * dynamo.Hour
			Expect(p.Vel.X).To(BeNumerically("<", 0))
			Expect(p.Vel.Y).To(BeNumerically("~", 0, 1e-18))
			Expect(p.Vel.Norm()).To(BeNumerically("~", want, want*1e-9))
			Expect(p.Pos.X).To(BeNumerically("~", dynamo.AU-want*dynamo.Hour, 1e-3))
		})

		It("exerts no force on the bodies", func() {
			bodies := dynamo.Bodies{{Name: "Sun", Mass: sunMass, Influencer: dynamo.NoInfluencer}}
			p := &dynamo.Projectile{Mass: 1e30, Pos: dynamo.Vec2{X: dynamo.AU}, State: dynamo.Active}

			_, err := integ.Step(bodies, 0, physics.Probe{Projectile: p}, dynamo.Hour)
			Expect(err).NotTo(HaveOccurred())
			Expect(bodies[0].Vel).To(Equal(dynamo.Vec2{}))
		})

		It("pulls harder toward bodies lighter than the primary", func() {
			moon := dynamo.Bodies{
				{Name: "Sun", Mass: sunMass, Pos: dynamo.Vec2{X: -100 * dynamo.AU}, Influencer: dynamo.NoInfluencer},
				{Name: "Moon", Mass: 7.342e22, Influencer: dynamo.NoInfluencer},
			}
			p := &dynamo.Projectile{Mass: 480000, Pos: dynamo.Vec2{Y: 0.1 * dynamo.AU}, State: dynamo.Active}

			_, err := integ.Step(moon, 0, physics.Probe{Projectile: p}, dynamo.Hour)
			Expect(err).NotTo(HaveOccurred())

			newtonian := dynamo.G * 7.342e22 / math.Pow(0.1*dynamo.AU, 2) * dynamo.Hour
			Expect(-p.Vel.Y).To(BeNumerically(">", newtonian))
		})

		It("stays finite near bodies of 1 kg or less", func() {
			bodies := dynamo.Bodies{
				{Name: "Sun", Mass: sunMass, Influencer: dynamo.NoInfluencer},
				{Name: "Pebble", Mass: 0.5, Pos: dynamo.Vec2{X: 2 * dynamo.AU}, Influencer: dynamo.NoInfluencer},
			}
			p := &dynamo.Projectile{Mass: 480000, Pos: dynamo.Vec2{X: 1.5 * dynamo.AU}, State: dynamo.Active}

			for i := 0; i < 3; i++ {
				_, err := integ.Step(bodies, 0, physics.Probe{Projectile: p}, dynamo.Hour)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(p.Vel.IsValid()).To(BeTrue())
			Expect(p.Pos.IsValid()).To(BeTrue())
		})

		It("uses the exaggerated position when one is set", func() {
			bodies := dynamo.Bodies{{
				Name: "Sun", Mass: sunMass, Influencer: dynamo.NoInfluencer,
				Exaggerated: dynamo.Vec2{X: 2 * dynamo.AU}, HasExaggerated: true,
			}}
			p := &dynamo.Projectile{Mass: 480000, Pos: dynamo.Vec2{X: dynamo.AU}, State: dynamo.Active}

			_, err := integ.Step(bodies, 0, physics.Probe{Projectile: p}, dynamo.Hour)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Vel.X).To(BeNumerically(">", 0))
		})

		DescribeTable("hit detection",
			func(live bool, offset float64, wantState dynamo.ProjectileState, wantHit int) {
				bodies := dynamo.Bodies{
					{Name: "Sun", Mass: sunMass, Influencer: dynamo.NoInfluencer},
					{Name: "Earth", Mass: 5.97e24, Pos: dynamo.Vec2{X: dynamo.AU}, Influencer: dynamo.NoInfluencer},
				}
				p := &dynamo.Projectile{Mass: 480000, Pos: dynamo.Vec2{X: dynamo.AU + offset}, State: dynamo.Active}

				res, err := integ.Step(bodies, 0, physics.Probe{Projectile: p, Live: live}, dynamo.Hour)
				Expect(err).NotTo(HaveOccurred())
				Expect(p.State).To(Equal(wantState))
				Expect(res.HitBody).To(Equal(wantHit))
			},
			Entry("live projectile inside the hit radius", true, 0.01*dynamo.AU, dynamo.Hit, 1),
			Entry("live projectile outside the hit radius", true, 0.05*dynamo.AU, dynamo.Active, -1),
			Entry("preview projectile inside the hit radius", false, 0.01*dynamo.AU, dynamo.Active, -1),
		)
	})

	Describe("dominant influencer", func() {
		// C is the far, massive primary; B is a small body near A.
		build := func(bDist float64) dynamo.Bodies {
			return dynamo.Bodies{
				{Name: "C", Mass: 2e30, Pos: dynamo.Vec2{X: dynamo.AU}, Influencer: dynamo.NoInfluencer},
				{Name: "A", Mass: 1e20, Influencer: dynamo.NoInfluencer},
				{Name: "B", Mass: 1e22, Pos: dynamo.Vec2{Y: bDist}, Influencer: dynamo.NoInfluencer},
			}
		}
		force := func(m, d float64) float64 { return dynamo.G * m / (d * d) }

		It("prefers the nearby body when its pull exceeds a quarter of the primary's", func() {
			bodies := build(1.5e7)
			Expect(force(1e22, 1.5e7)).To(BeNumerically(">", 0.25*force(2e30, dynamo.AU)))

			_, err := integ.Step(bodies, 0, physics.Probe{}, dynamo.Hour)
			Expect(err).NotTo(HaveOccurred())
			Expect(bodies[1].Influencer).To(Equal(2))
			Expect(bodies[1].MaxForce).To(BeNumerically("~", force(1e22, 1.5e7), 1e-12))
		})

		It("falls back to the primary otherwise", func() {
			bodies := build(5e7)
			Expect(force(1e22, 5e7)).To(BeNumerically("<", 0.25*force(2e30, dynamo.AU)))

			_, err := integ.Step(bodies, 0, physics.Probe{}, dynamo.Hour)
			Expect(err).NotTo(HaveOccurred())
			Expect(bodies[1].Influencer).To(Equal(0))
		})
	})
})
