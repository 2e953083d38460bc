// Package render maps simulation space onto a fixed-size canvas.
//
// Orbital distances span fractions of an AU to tens of AU. A linear map
// would crowd every inner planet onto the sun, so radial distance goes
// through a power-law easing whose exponent shrinks toward the farthest
// body. Moons still vanish into their planets at that scale, so each
// non-primary body is also drawn at an exaggerated offset from its
// dominant influencer.
package render

import (
	"math"

	"github.com/san-kum/orrery/internal/dynamo"
)

// RenderScale holds the constants of the distance transform. It is
// computed once per session from the configured bodies and canvas.
type RenderScale struct {
	Width, Height     float64
	FarthestAU        float64
	FarthestMeters    float64
	ScaleFactor       float64
	LogFactor         float64
	OrbitExaggeration float64
}

// NewRenderScale derives the transform constants for a canvas of the given
// size whose farthest body sits farthestAU from the origin.
func NewRenderScale(farthestAU, width, height float64) RenderScale {
	farM := farthestAU * dynamo.AU
	maxExpected := math.Log10(farM + 1)
	s := RenderScale{
		Width:          width,
		Height:         height,
		FarthestAU:     farthestAU,
		FarthestMeters: farM,
	}
	if maxExpected > 0 {
		s.ScaleFactor = math.Min(width, height) / (2 * maxExpected)
	}
	if farthestAU+farM > 0 {
		s.LogFactor = 1 / (0.5 * (farthestAU + farM))
	}
	if farthestAU > s.ScaleFactor {
		s.OrbitExaggeration = s.ScaleFactor * 3.33
	} else {
		s.OrbitExaggeration = farthestAU * 10
	}
	return s
}

// Center returns the canvas center in pixels.
func (s RenderScale) Center() dynamo.Vec2 {
	return dynamo.Vec2{X: s.Width / 2, Y: s.Height / 2}
}

// Ease compresses a radial distance in meters using the cached scale factor.
func (s RenderScale) Ease(distance float64) float64 {
	return s.EaseWith(distance, s.ScaleFactor)
}

// EaseWith compresses a radial distance in meters. Distances of one meter
// or less map to 0, as does everything on a degenerate scale.
func (s RenderScale) EaseWith(distance, scaleFactor float64) float64 {
	if distance <= 1 || s.FarthestMeters <= 0 {
		return 0
	}
	exp := 0.55 + 0.0025*s.FarthestAU*(1-distance/s.FarthestMeters)
	return math.Pow(distance*s.LogFactor*scaleFactor, exp)
}

// ToScreen maps a simulation position to canvas pixels.
func (s RenderScale) ToScreen(p dynamo.Vec2) dynamo.Vec2 {
	eased := s.Ease(p.Norm())
	return s.Center().Add(dynamo.Polar(p.Angle(), s.ScaleFactor*eased))
}

// Polyline maps every point of a world-space path to canvas pixels.
func (s RenderScale) Polyline(path []dynamo.Vec2) []dynamo.Vec2 {
	out := make([]dynamo.Vec2, len(path))
	for i, p := range path {
		out[i] = s.ToScreen(p)
	}
	return out
}
