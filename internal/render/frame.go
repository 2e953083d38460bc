package render

import (
	"math"

	"github.com/san-kum/orrery/internal/dynamo"
)

const rocketSize = 7.0

// Sprite is one body as it should appear on the canvas.
type Sprite struct {
	Name   string
	Color  string
	Center dynamo.Vec2
	Radius float64
}

// Marker is the rocket: a triangle whose tip points along its velocity.
type Marker struct {
	Center dynamo.Vec2
	Tip    dynamo.Vec2
	Left   dynamo.Vec2
	Right  dynamo.Vec2
	Color  string
}

// Frame is everything a front end needs to draw one tick. All positions
// are canvas pixels.
type Frame struct {
	Step   int
	Bodies []Sprite
	// Rocket is nil unless the rocket is flying.
	Rocket *Marker
	// Trajectory is the preview path, empty without a cursor.
	Trajectory []dynamo.Vec2
	Barycenter dynamo.Vec2
	Projectile dynamo.ProjectileState
	// Hit names the body the rocket struck during this tick.
	Hit string
}

// Radius returns the drawn radius for a body of the given mass.
func Radius(mass float64) float64 {
	scaled := math.Log10(mass) * 0.10
	if scaled <= 0 {
		// limit of s^s as s approaches 0
		return 0.4
	}
	return math.Pow(scaled, scaled) * 0.4
}

// Sprites maps bodies to canvas sprites, using the exaggerated position
// when one is set.
func (s RenderScale) Sprites(bodies dynamo.Bodies) []Sprite {
	out := make([]Sprite, len(bodies))
	for i := range bodies {
		b := &bodies[i]
		out[i] = Sprite{
			Name:   b.Name,
			Color:  b.Color,
			Center: s.ToScreen(b.Attractor()),
			Radius: Radius(b.Mass),
		}
	}
	return out
}

// RocketMarker places the rocket triangle for p.
func (s RenderScale) RocketMarker(p *dynamo.Projectile) *Marker {
	c := s.ToScreen(p.Pos)
	heading := p.Vel.Angle()
	cos, sin := math.Cos(heading), math.Sin(heading)
	return &Marker{
		Center: c,
		Tip:    dynamo.Vec2{X: c.X + rocketSize*cos, Y: c.Y + rocketSize*sin},
		Left:   dynamo.Vec2{X: c.X - rocketSize*(cos-0.5*sin), Y: c.Y - rocketSize*(sin+0.5*cos)},
		Right:  dynamo.Vec2{X: c.X - rocketSize*(cos+0.5*sin), Y: c.Y - rocketSize*(sin-0.5*cos)},
		Color:  p.Color,
	}
}
