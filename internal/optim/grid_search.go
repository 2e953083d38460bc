// Package optim searches launch angles for a rocket that passes closest to
// a target body.
package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/orrery/internal/dynamo"
	"github.com/san-kum/orrery/internal/sim"
)

// Objective scores a launch angle in radians. Lower is better.
type Objective func(ctx context.Context, angle float64) (float64, error)

// GridSearch evaluates Points evenly spaced angles around the circle, then
// Rounds times re-grids the neighbourhood of the best angle found so far.
type GridSearch struct {
	Points int
	Rounds int
}

// Search returns the best angle, normalised to [0, 2π), and its score.
// Ties keep the earlier angle.
func (g GridSearch) Search(ctx context.Context, obj Objective) (float64, float64, error) {
	if g.Points < 2 {
		return 0, 0, fmt.Errorf("grid needs at least 2 points, got %d", g.Points)
	}

	best, bestAngle := math.Inf(1), 0.0
	try := func(angle float64) error {
		angle = normalize(angle)
		val, err := obj(ctx, angle)
		if err != nil {
			return err
		}
		if val < best {
			best, bestAngle = val, angle
		}
		return nil
	}

	step := 2 * math.Pi / float64(g.Points)
	for i := 0; i < g.Points; i++ {
		if err := try(float64(i) * step); err != nil {
			return bestAngle, best, err
		}
	}

	for r := 0; r < g.Rounds; r++ {
		center := bestAngle
		fine := 2 * step / float64(g.Points-1)
		for i := 0; i < g.Points; i++ {
			if err := ctx.Err(); err != nil {
				return bestAngle, best, err
			}
			if err := try(center - step + float64(i)*fine); err != nil {
				return bestAngle, best, err
			}
		}
		step = fine
	}

	return bestAngle, best, nil
}

func normalize(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// MissDistance scores an angle by the closest the rocket, launched at
// step 0 in a fresh session, comes to target within steps steps. A hit on
// the target scores 0. The rocket stops being tracked once it hits
// anything else.
func MissDistance(factory sim.Factory, target string, steps int) Objective {
	return func(ctx context.Context, angle float64) (float64, error) {
		sess, err := factory()
		if err != nil {
			return 0, err
		}
		ti := sess.Bodies().Index(target)
		if ti < 0 {
			return 0, fmt.Errorf("target %q: %w", target, dynamo.ErrUnknownBody)
		}
		if err := sess.Launch(math.Cos(angle), math.Sin(angle)); err != nil {
			return 0, err
		}

		closest := math.Inf(1)
		for i := 0; i < steps; i++ {
			f, err := sess.Tick(ctx)
			if err != nil {
				return closest, err
			}
			if f.Hit == target {
				return 0, nil
			}
			r := sess.Rocket()
			if !r.Active() {
				break
			}
			// same position the hit check uses
			closest = math.Min(closest, r.Pos.Sub(sess.Bodies()[ti].Attractor()).Norm())
		}
		return closest, nil
	}
}
