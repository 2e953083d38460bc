package render

import (
	"math"
	"testing"

	"github.com/san-kum/orrery/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRadius(t *testing.T) {
	cases := []struct {
		mass float64
		want float64
	}{
		{1e10, 0.4},
		{1e20, 1.6},
		{1e30, 27 * 0.4},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, Radius(c.mass), 1e-9, "mass %g", c.mass)
	}
	assert.Greater(t, Radius(1.989e30), Radius(5.972e24))
}

func TestRadiusOfTinyMass(t *testing.T) {
	for _, m := range []float64{1, 0.5, 1e-3} {
		r := Radius(m)
		assert.False(t, math.IsNaN(r), "mass %g", m)
		assert.InDelta(t, 0.4, r, 1e-12, "mass %g", m)
	}
}

func TestExaggerate(t *testing.T) {
	bs := dynamo.Bodies{
		{Name: "Sun", Mass: 2e30, Influencer: dynamo.NoInfluencer},
		{Name: "Earth", Mass: 6e24, Pos: dynamo.Vec2{X: 100}, Influencer: 0},
		{Name: "Moon", Mass: 7e22, Pos: dynamo.Vec2{X: 101, Y: 1}, Influencer: 1},
		{Name: "Stray", Mass: 1, Influencer: dynamo.NoInfluencer, HasExaggerated: true, Exaggerated: dynamo.Vec2{X: 9}},
	}
	before := bs.Clone()

	Exaggerate(bs, 0, 10)

	assert.False(t, bs[0].HasExaggerated)
	assert.False(t, bs[1].HasExaggerated)
	assert.False(t, bs[3].HasExaggerated)
	require.True(t, bs[2].HasExaggerated)
	assert.Equal(t, dynamo.Vec2{X: 110, Y: 10}, bs[2].Exaggerated)

	for i := range bs {
		assert.Equal(t, before[i].Pos, bs[i].Pos)
		assert.Equal(t, before[i].Vel, bs[i].Vel)
	}
}

func TestSpritesUseExaggeratedPosition(t *testing.T) {
	s := NewRenderScale(1, 800, 800)
	bs := dynamo.Bodies{
		{Name: "Sun", Mass: 2e30, Color: "yellow"},
		{Name: "Moon", Mass: 7e22, Pos: dynamo.Vec2{X: 1e6}, Exaggerated: dynamo.Vec2{X: dynamo.AU}, HasExaggerated: true},
	}
	sp := s.Sprites(bs)
	require.Len(t, sp, 2)
	assert.Equal(t, "yellow", sp[0].Color)
	assert.Equal(t, s.ToScreen(dynamo.Vec2{X: dynamo.AU}), sp[1].Center)
	assert.InDelta(t, Radius(7e22), sp[1].Radius, 1e-12)
}

func TestRocketMarkerPointsAlongVelocity(t *testing.T) {
	s := NewRenderScale(1, 800, 800)
	m := s.RocketMarker(&dynamo.Projectile{Vel: dynamo.Vec2{X: 5}, Color: "red"})
	assert.Equal(t, "red", m.Color)
	assert.Equal(t, dynamo.Vec2{X: 400, Y: 400}, m.Center)
	assert.InDelta(t, 407, m.Tip.X, 1e-9)
	assert.InDelta(t, 400, m.Tip.Y, 1e-9)
	assert.InDelta(t, 393, m.Left.X, 1e-9)
	assert.InDelta(t, 393, m.Right.X, 1e-9)
	assert.InDelta(t, m.Left.Y-400, 400-m.Right.Y, 1e-9)
}
