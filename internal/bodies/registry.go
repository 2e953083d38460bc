// Package bodies turns declarative body descriptors into simulation bodies
// and ships the built-in solar system tables.
package bodies

import (
	"math"

	"github.com/san-kum/orrery/internal/dynamo"
)

// Spec describes one body. Position is given either as Distance (AU along
// x) or explicit X/Y in meters; velocity either as the scalar Velocity
// (taken as the y component) or explicit VelocityX/VelocityY in m/s.
// Unset optional fields are nil.
type Spec struct {
	Name      string   `yaml:"name" json:"name"`
	Mass      float64  `yaml:"mass" json:"mass"`
	Distance  *float64 `yaml:"distance,omitempty" json:"distance,omitempty"`
	DistanceY *float64 `yaml:"distance_y,omitempty" json:"distance_y,omitempty"`
	X         *float64 `yaml:"x,omitempty" json:"x,omitempty"`
	Y         *float64 `yaml:"y,omitempty" json:"y,omitempty"`
	Velocity  *float64 `yaml:"velocity,omitempty" json:"velocity,omitempty"`
	VelocityX *float64 `yaml:"velocity_x,omitempty" json:"velocity_x,omitempty"`
	VelocityY *float64 `yaml:"velocity_y,omitempty" json:"velocity_y,omitempty"`
	Color     string   `yaml:"color,omitempty" json:"color,omitempty"`
}

// Resolve converts specs to bodies, keeping declaration order.
func Resolve(specs []Spec) dynamo.Bodies {
	out := make(dynamo.Bodies, len(specs))
	for i, s := range specs {
		out[i] = dynamo.Body{
			Name:       s.Name,
			Mass:       s.Mass,
			Pos:        dynamo.Vec2{X: resolveX(s), Y: first(s.Y, s.DistanceY)},
			Vel:        dynamo.Vec2{X: first(s.VelocityX), Y: first(s.Velocity, s.VelocityY)},
			Color:      s.Color,
			Influencer: dynamo.NoInfluencer,
		}
	}
	return out
}

func resolveX(s Spec) float64 {
	if s.X != nil {
		return *s.X
	}
	if s.Distance != nil {
		return *s.Distance * dynamo.AU
	}
	return 0
}

func first(vals ...*float64) float64 {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

// FarthestAU returns the largest distance from the origin among specs, in
// AU. Explicit positions count by their Euclidean norm.
func FarthestAU(specs []Spec) float64 {
	far := 0.0
	for _, s := range specs {
		var d float64
		switch {
		case s.X != nil || s.Y != nil:
			d = math.Hypot(first(s.X), first(s.Y)) / dynamo.AU
		case s.Distance != nil:
			d = math.Abs(*s.Distance)
		}
		far = math.Max(far, d)
	}
	return far
}

// F returns a pointer to v, for building specs inline.
func F(v float64) *float64 { return &v }
