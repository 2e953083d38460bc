package render

import "github.com/san-kum/orrery/internal/dynamo"

// Exaggerate stores, for every body orbiting something other than the
// primary, its offset from that influencer scaled by factor. True
// positions are left alone; bodies that do not qualify have their
// exaggerated position cleared.
func Exaggerate(bodies dynamo.Bodies, primary int, factor float64) {
	for i := range bodies {
		b := &bodies[i]
		infl := b.Influencer
		if i == primary || infl < 0 || infl >= len(bodies) || infl == primary || infl == i {
			b.HasExaggerated = false
			continue
		}
		anchor := bodies[infl].Pos
		b.Exaggerated = anchor.Add(b.Pos.Sub(anchor).Scale(factor))
		b.HasExaggerated = true
	}
}
