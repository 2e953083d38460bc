package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/orrery/internal/dynamo"
	"github.com/san-kum/orrery/internal/palette"
	"github.com/san-kum/orrery/internal/render"
)

const previewColor = "green"

func vec(v dynamo.Vec2) rl.Vector2 { return rl.NewVector2(float32(v.X), float32(v.Y)) }

func color(name string) rl.Color {
	r, g, b := palette.RGB255(name)
	return rl.NewColor(r, g, b, 255)
}

func drawFrame(f render.Frame) {
	// the preview dims toward its far end
	n := len(f.Trajectory)
	for i := 1; i < n; i++ {
		r, g, b := palette.Fade(previewColor, 0.7*float64(i)/float64(n)).RGB255()
		rl.DrawLineV(vec(f.Trajectory[i-1]), vec(f.Trajectory[i]), rl.NewColor(r, g, b, 255))
	}
	for _, b := range f.Bodies {
		rl.DrawCircleV(vec(b.Center), float32(b.Radius), color(b.Color))
	}
	if m := f.Rocket; m != nil {
		a, b, c := winding(m.Tip, m.Left, m.Right)
		rl.DrawTriangle(vec(a), vec(b), vec(c), color(m.Color))
	}
}

// winding orders a triangle so raylib, which culls clockwise triangles on
// a y-down screen, draws it.
func winding(a, b, c dynamo.Vec2) (dynamo.Vec2, dynamo.Vec2, dynamo.Vec2) {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if cross > 0 {
		return a, c, b
	}
	return a, b, c
}

// strip fits values into the rectangle at (x, y) of size w x h.
func strip(values []float64, x, y, w, h float32) []rl.Vector2 {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	pts := make([]rl.Vector2, len(values))
	for i, v := range values {
		px := x + float32(i)/float32(len(values)-1)*w
		py := y + h - float32((v-lo)/(hi-lo))*h
		pts[i] = rl.NewVector2(px, py)
	}
	return pts
}
