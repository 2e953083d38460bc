package physics

import (
	"math"

	"github.com/san-kum/orrery/internal/dynamo"
)

const (
	DefaultProjectileExponent = 2.0
	DefaultMinorBodyBias      = 3.0
	DefaultInfluenceBias      = 0.25
	DefaultHitRadius          = 0.02 * dynamo.AU
)

// Tuning holds the non-physical knobs of a step.
type Tuning struct {
	// ProjectileExponent is the distance exponent for the primary's pull
	// on the projectile. 2 is Newtonian.
	ProjectileExponent float64
	// MinorBodyBias scales how much the exponent drops for bodies lighter
	// than the primary.
	MinorBodyBias float64
	// InfluenceBias lets a non-primary body become dominant when its force
	// exceeds this fraction of the current maximum.
	InfluenceBias float64
	// HitRadius is the distance in meters under which a live projectile
	// counts as hitting a body.
	HitRadius float64
}

func DefaultTuning() Tuning {
	return Tuning{
		ProjectileExponent: DefaultProjectileExponent,
		MinorBodyBias:      DefaultMinorBodyBias,
		InfluenceBias:      DefaultInfluenceBias,
		HitRadius:          DefaultHitRadius,
	}
}

// Integrator steps a body set. The zero value is not usable; use New.
type Integrator struct {
	tuning Tuning
	steps  int

	dv   []dynamo.Vec2
	infl []int
	maxF []float64
}

func New(t Tuning) *Integrator {
	return &Integrator{tuning: t}
}

func (in *Integrator) Tuning() Tuning { return in.tuning }

// Steps returns the number of successful steps taken.
func (in *Integrator) Steps() int { return in.steps }

// StepResult reports what a step observed.
type StepResult struct {
	// Barycenter is the center of mass before positions moved.
	Barycenter dynamo.Vec2
	// HitBody is the index of the body a live projectile hit, or -1.
	HitBody int
}

// Probe is the projectile argument of Step. Live marks the user-controlled
// projectile; only a live projectile can register a hit.
type Probe struct {
	*dynamo.Projectile
	Live bool
}

func (in *Integrator) ensureScratch(n int) {
	if len(in.dv) != n {
		in.dv = make([]dynamo.Vec2, n)
		in.infl = make([]int, n)
		in.maxF = make([]float64, n)
	}
}

// Step advances bodies and, when probe.Projectile is non-nil, the
// projectile by dt seconds. primary is the index of the most massive body.
//
// A zero distance between two bodies returns a *dynamo.CollisionError and
// leaves every body and the projectile untouched.
func (in *Integrator) Step(bodies dynamo.Bodies, primary int, probe Probe, dt float64) (StepResult, error) {
	res := StepResult{HitBody: -1}
	n := len(bodies)
	in.ensureScratch(n)

	for i := 0; i < n; i++ {
		a := &bodies[i]
		var dv dynamo.Vec2
		maxF, infl := 0.0, a.Influencer
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			b := &bodies[j]
			d := a.Pos.Sub(b.Pos)
			dist := d.Norm()
			if dist == 0 {
				return res, &dynamo.CollisionError{Step: in.steps, A: a.Name, B: b.Name}
			}
			force := dynamo.G * b.Mass / (dist * dist)
			if force > maxF || (j != primary && force > maxF*in.tuning.InfluenceBias) {
				maxF = force
				infl = j
			}
			dv = dv.Sub(d.Scale(force / dist * dt))
		}
		in.dv[i], in.maxF[i], in.infl[i] = dv, maxF, infl
	}

	res.Barycenter = bodies.Barycenter()

	for i := range bodies {
		bodies[i].Vel = bodies[i].Vel.Add(in.dv[i])
		bodies[i].MaxForce = in.maxF[i]
		bodies[i].Influencer = in.infl[i]
	}

	p := probe.Projectile
	if p != nil {
		res.HitBody = in.pullProjectile(bodies, primary, probe, dt)
	}

	for i := range bodies {
		bodies[i].Pos = bodies[i].Pos.Add(bodies[i].Vel.Scale(dt))
	}
	if p != nil {
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	}

	in.steps++
	return res, nil
}

// pullProjectile applies every body's pull to the projectile's velocity
// and returns the index of the last body it came within HitRadius of.
func (in *Integrator) pullProjectile(bodies dynamo.Bodies, primary int, probe Probe, dt float64) int {
	p := probe.Projectile
	hit := -1
	// ln ln m is only defined above 1 kg; lighter bodies pull with the
	// plain exponent.
	primaryLogLog, soften := 0.0, primary >= 0 && bodies[primary].Mass > 1
	if soften {
		primaryLogLog = math.Log(math.Log(bodies[primary].Mass))
	}
	for i := range bodies {
		b := &bodies[i]
		d := p.Pos.Sub(b.Attractor())
		dist := d.Norm()
		if dist == 0 {
			continue
		}
		exp := in.tuning.ProjectileExponent
		if soften && b.Mass > 1 && b.Mass < bodies[primary].Mass {
			exp -= in.tuning.MinorBodyBias * (primaryLogLog - math.Log(math.Log(b.Mass)))
		}
		force := dynamo.G * b.Mass / math.Pow(dist, exp)
		p.Vel = p.Vel.Sub(d.Scale(force / dist * dt))

		if probe.Live && dist < in.tuning.HitRadius {
			p.State = dynamo.Hit
			hit = i
		}
	}
	return hit
}
