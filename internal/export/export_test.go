package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/orrery/internal/dynamo"
	"github.com/san-kum/orrery/internal/render"
	"github.com/san-kum/orrery/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame() render.Frame {
	return render.Frame{
		Bodies: []render.Sprite{
			{Name: "Sun", Color: "yellow", Center: dynamo.Vec2{X: 400, Y: 400}, Radius: 11.5},
			{Name: "Earth", Color: "blue", Center: dynamo.Vec2{X: 500, Y: 400}, Radius: 4},
			{Name: "Earth's Moon", Color: "gray", Center: dynamo.Vec2{X: 510, Y: 400}, Radius: 2},
		},
	}
}

func TestFrameToSVGOneCirclePerBody(t *testing.T) {
	svg := FrameToSVG(testFrame(), 800, 800, false)

	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.Equal(t, 3, strings.Count(svg, "<circle"))
	assert.Contains(t, svg, `fill="#ffff00"`)
	assert.Contains(t, svg, "Earth&#39;s Moon")
	assert.NotContains(t, svg, "<polyline")
	assert.NotContains(t, svg, "<polygon")
	assert.NotContains(t, svg, "<text")
}

func TestFrameToSVGRocketAndPreview(t *testing.T) {
	f := testFrame()
	f.Trajectory = []dynamo.Vec2{{X: 500, Y: 400}, {X: 505, Y: 390}, {X: 510, Y: 380}}
	f.Rocket = &render.Marker{Tip: dynamo.Vec2{X: 1, Y: 2}, Left: dynamo.Vec2{X: 3, Y: 4}, Right: dynamo.Vec2{X: 5, Y: 6}, Color: "red"}

	svg := FrameToSVG(f, 800, 800, true)
	assert.Contains(t, svg, `points="500.0,400.0 505.0,390.0 510.0,380.0"`)
	assert.Contains(t, svg, `stroke="#00ff00"`)
	assert.Contains(t, svg, `<polygon fill="#ff0000" points="1.0,2.0 3.0,4.0 5.0,6.0"/>`)
	assert.Equal(t, 3, strings.Count(svg, "<text"))
}

func TestTrackCSV(t *testing.T) {
	var buf bytes.Buffer
	err := TrackCSV(&buf, []storage.Sample{
		{Step: 1, X: 1.5, Y: -2, VX: 0, VY: 3e4},
		{Step: 2, X: 2.5, Y: -1, VX: 1, VY: 3e4},
	})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "step,x,y,vx,vy", lines[0])
	assert.Equal(t, "1,1.5,-2,0,30000", lines[1])
}
