package telemetry

import (
	"context"
	"strings"
	"testing"
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/san-kum/orrery/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(rocket *dynamo.Projectile) Sample {
	return Sample{
		Run:  "r1",
		Step: 7,
		Time: time.Unix(100, 0),
		Bodies: dynamo.Bodies{
			{Name: "Sun", Mass: 2e30, Influencer: 1},
			{Name: "Earth", Mass: 6e24, Pos: dynamo.Vec2{X: 1.5}, Influencer: 0},
		},
		Barycenter: dynamo.Vec2{X: 0.25},
		Rocket:     rocket,
	}
}

func TestPoints(t *testing.T) {
	pts := Points(sample(nil))
	require.Len(t, pts, 3)

	earth := influxdb2_write.PointToLineProtocol(pts[1], time.Second)
	assert.True(t, strings.HasPrefix(earth, "body,"), earth)
	assert.Contains(t, earth, "body=Earth")
	assert.Contains(t, earth, "run=r1")
	assert.Contains(t, earth, "influencer=\"Sun\"")
	assert.Contains(t, earth, "x=1.5")
	assert.Contains(t, earth, "step=7i")

	bary := influxdb2_write.PointToLineProtocol(pts[2], time.Second)
	assert.Contains(t, bary, "barycenter,run=r1 ")
	assert.Contains(t, bary, "x=0.25")
}

func TestPointsIncludeActiveRocket(t *testing.T) {
	idle := &dynamo.Projectile{State: dynamo.Idle}
	assert.Len(t, Points(sample(idle)), 3)

	flying := &dynamo.Projectile{State: dynamo.Active, Vel: dynamo.Vec2{Y: 3}}
	pts := Points(sample(flying))
	require.Len(t, pts, 4)
	assert.Equal(t, "rocket", pts[3].Name())
}

func TestMeters(t *testing.T) {
	ctx := context.Background()
	for _, m := range []*Meters{Noop(), nil} {
		assert.NotPanics(t, func() {
			m.Step(ctx)
			m.Launch(ctx)
			m.Hit(ctx, "Earth")
			m.Preview(ctx, time.Millisecond)
		})
	}

	global, err := NewMeters(nil)
	require.NoError(t, err)
	assert.NotNil(t, global)
}
