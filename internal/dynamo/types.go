package dynamo

import "math"

const (
	// G is the gravitational constant in m^3 kg^-1 s^-2.
	G = 6.67430e-11
	// AU is one astronomical unit in meters.
	AU = 1.496e11
	// Hour is one simulated hour in seconds.
	Hour = 3600.0
)

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Norm() float64        { return math.Hypot(v.X, v.Y) }
func (v Vec2) Angle() float64       { return math.Atan2(v.Y, v.X) }
func (v Vec2) IsValid() bool        { return !math.IsNaN(v.X+v.Y) && !math.IsInf(v.X+v.Y, 0) }

// Polar builds a vector of length r pointing at angle radians.
func Polar(angle, r float64) Vec2 { return Vec2{math.Cos(angle) * r, math.Sin(angle) * r} }

// NoInfluencer marks a body whose dominant influencer is not yet known.
const NoInfluencer = -1

// Body is a gravitating body. Influencer is an index into the owning
// Bodies slice. MaxForce and Exaggerated are rewritten every step.
type Body struct {
	Name  string
	Mass  float64
	Pos   Vec2
	Vel   Vec2
	Color string

	Influencer int
	MaxForce   float64

	Exaggerated    Vec2
	HasExaggerated bool
}

// Attractor returns the position the projectile is pulled toward: the
// exaggerated position when one is set, the true position otherwise.
func (b *Body) Attractor() Vec2 {
	if b.HasExaggerated {
		return b.Exaggerated
	}
	return b.Pos
}

type Bodies []Body

// Clone returns a deep copy. Bodies hold no pointers, so copying the
// slice is enough to isolate the copy from the original.
func (bs Bodies) Clone() Bodies {
	c := make(Bodies, len(bs))
	copy(c, bs)
	return c
}

// Index returns the position of the first body called name, or -1.
func (bs Bodies) Index(name string) int {
	for i := range bs {
		if bs[i].Name == name {
			return i
		}
	}
	return -1
}

// Primary returns the index of the most massive body. Ties go to the
// later body. It returns -1 for an empty set.
func (bs Bodies) Primary() int {
	idx := -1
	for i := range bs {
		if idx == -1 || !(bs[idx].Mass > bs[i].Mass) {
			idx = i
		}
	}
	return idx
}

// Barycenter returns the mass-weighted mean position.
func (bs Bodies) Barycenter() Vec2 {
	var total float64
	var sum Vec2
	for i := range bs {
		total += bs[i].Mass
		sum = sum.Add(bs[i].Pos.Scale(bs[i].Mass))
	}
	if total == 0 {
		return Vec2{}
	}
	return sum.Scale(1 / total)
}

type ProjectileState int

const (
	Idle ProjectileState = iota
	Active
	Hit
)

func (s ProjectileState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Hit:
		return "hit"
	default:
		return "unknown"
	}
}

// Projectile is attracted by every body but exerts no force.
type Projectile struct {
	Mass  float64
	Pos   Vec2
	Vel   Vec2
	Color string
	State ProjectileState
}

func (p *Projectile) Active() bool { return p != nil && p.State == Active }
