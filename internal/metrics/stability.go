package metrics

import (
	"math"

	"github.com/san-kum/orrery/internal/dynamo"
)

// ClosestApproach records the smallest separation between any two bodies,
// in meters, and the pair it happened between.
type ClosestApproach struct {
	min  float64
	A, B string
	Step int
}

func NewClosestApproach() *ClosestApproach {
	return &ClosestApproach{min: math.Inf(1)}
}

func (c *ClosestApproach) Name() string { return "closest_approach" }

func (c *ClosestApproach) Observe(bs dynamo.Bodies, step int) {
	for i := range bs {
		for j := i + 1; j < len(bs); j++ {
			d := bs[j].Pos.Sub(bs[i].Pos).Norm()
			if d < c.min {
				c.min = d
				c.A, c.B, c.Step = bs[i].Name, bs[j].Name, step
			}
		}
	}
}

// Value is +Inf until two bodies have been observed.
func (c *ClosestApproach) Value() float64 { return c.min }

func (c *ClosestApproach) Reset() { *c = *NewClosestApproach() }
