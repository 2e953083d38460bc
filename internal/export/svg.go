package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/orrery/internal/dynamo"
	"github.com/san-kum/orrery/internal/palette"
	"github.com/san-kum/orrery/internal/render"
)

// PreviewColor is the stroke of the trajectory preview.
const PreviewColor = "green"

// FrameToSVG draws a frame on a width x height canvas: bodies as filled
// circles, the preview path as a polyline and the rocket as a triangle.
func FrameToSVG(f render.Frame, width, height float64, labels bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#000000"/>
`, width, height, width, height))

	if len(f.Trajectory) > 1 {
		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1" points="%s"/>
`, palette.Hex(PreviewColor), points(f.Trajectory)))
	}

	for _, b := range f.Bodies {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s"><title>%s</title></circle>
`, b.Center.X, b.Center.Y, b.Radius, palette.Hex(b.Color), escape(b.Name)))
		if labels {
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#cccccc" font-size="9">%s</text>
`, b.Center.X+b.Radius+2, b.Center.Y-2, escape(b.Name)))
		}
	}

	if m := f.Rocket; m != nil {
		sb.WriteString(fmt.Sprintf(`<polygon fill="%s" points="%s"/>
`, palette.Hex(m.Color), points([]dynamo.Vec2{m.Tip, m.Left, m.Right})))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func points(ps []dynamo.Vec2) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&#39;")

func escape(s string) string { return escaper.Replace(s) }
