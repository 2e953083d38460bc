package telemetry

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/dynamo"
)

// Sample is the state of a session after one step.
type Sample struct {
	Run        string
	Step       int
	Time       time.Time
	Bodies     dynamo.Bodies
	Barycenter dynamo.Vec2
	Rocket     *dynamo.Projectile
}

// Sink receives samples from a headless run.
type Sink interface {
	Record(ctx context.Context, s Sample) error
	Close()
}

// InfluxSink writes samples to an InfluxDB v2 bucket with the blocking
// write API, so each Record returns once the server has the points.
type InfluxSink struct {
	client influxdb2.Client
	writer influxdb2_api.WriteAPIBlocking
	log    zerolog.Logger
}

func NewInfluxSink(cfg config.InfluxConfig, log zerolog.Logger) *InfluxSink {
	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token,
		influxdb2.DefaultOptions().SetBatchSize(500))
	return &InfluxSink{
		client: client,
		writer: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:    log,
	}
}

// Ping reports whether the server is reachable.
func (s *InfluxSink) Ping(ctx context.Context) error {
	ok, err := s.client.Ping(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("influx: server at %s not ready", s.client.ServerURL())
	}
	return nil
}

func (s *InfluxSink) Record(ctx context.Context, smp Sample) error {
	pts := Points(smp)
	if err := s.writer.WritePoint(ctx, pts...); err != nil {
		s.log.Error().Err(err).Int("step", smp.Step).Msg("influx write failed")
		return fmt.Errorf("influx write step %d: %w", smp.Step, err)
	}
	return nil
}

func (s *InfluxSink) Close() {
	s.client.Close()
}

// Points converts a sample into line-protocol points: one "body" point
// per body, one "barycenter" point, and a "rocket" point when the rocket
// is flying.
func Points(smp Sample) []*influxdb2_write.Point {
	pts := make([]*influxdb2_write.Point, 0, len(smp.Bodies)+2)
	for i := range smp.Bodies {
		b := &smp.Bodies[i]
		p := influxdb2.NewPointWithMeasurement("body").
			AddTag("run", smp.Run).
			AddTag("body", b.Name).
			AddField("step", smp.Step).
			AddField("x", b.Pos.X).
			AddField("y", b.Pos.Y).
			AddField("vx", b.Vel.X).
			AddField("vy", b.Vel.Y).
			AddField("max_force", b.MaxForce).
			SetTime(smp.Time)
		if b.Influencer >= 0 && b.Influencer < len(smp.Bodies) {
			p.AddField("influencer", smp.Bodies[b.Influencer].Name)
		}
		pts = append(pts, p)
	}
	pts = append(pts, influxdb2.NewPoint("barycenter",
		map[string]string{"run": smp.Run},
		map[string]interface{}{"step": smp.Step, "x": smp.Barycenter.X, "y": smp.Barycenter.Y},
		smp.Time))
	if smp.Rocket.Active() {
		pts = append(pts, influxdb2.NewPoint("rocket",
			map[string]string{"run": smp.Run},
			map[string]interface{}{
				"step": smp.Step,
				"x":    smp.Rocket.Pos.X, "y": smp.Rocket.Pos.Y,
				"vx": smp.Rocket.Vel.X, "vy": smp.Rocket.Vel.Y,
			},
			smp.Time))
	}
	return pts
}
