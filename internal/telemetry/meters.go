// Package telemetry instruments a running session with OpenTelemetry
// counters and, optionally, streams body states to InfluxDB.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const scope = "github.com/san-kum/orrery"

// Meters counts session events. A nil *Meters is valid and records
// nothing.
type Meters struct {
	steps    metric.Int64Counter
	launches metric.Int64Counter
	hits     metric.Int64Counter
	preview  metric.Float64Histogram
}

// NewMeters creates the instruments on m. A nil meter uses the global
// provider, which is a no-op until one is installed.
func NewMeters(m metric.Meter) (*Meters, error) {
	if m == nil {
		m = otel.Meter(scope)
	}
	var (
		ms  Meters
		err error
	)
	if ms.steps, err = m.Int64Counter("orrery.steps", metric.WithDescription("integrator steps taken")); err != nil {
		return nil, err
	}
	if ms.launches, err = m.Int64Counter("orrery.launches", metric.WithDescription("rocket launches")); err != nil {
		return nil, err
	}
	if ms.hits, err = m.Int64Counter("orrery.hits", metric.WithDescription("rocket impacts by body")); err != nil {
		return nil, err
	}
	if ms.preview, err = m.Float64Histogram("orrery.preview.duration",
		metric.WithDescription("trajectory preview wall time"), metric.WithUnit("ms")); err != nil {
		return nil, err
	}
	return &ms, nil
}

// Noop returns meters backed by the no-op provider.
func Noop() *Meters {
	ms, _ := NewMeters(noop.Meter{})
	return ms
}

func (m *Meters) Step(ctx context.Context) {
	if m == nil {
		return
	}
	m.steps.Add(ctx, 1)
}

func (m *Meters) Launch(ctx context.Context) {
	if m == nil {
		return
	}
	m.launches.Add(ctx, 1)
}

func (m *Meters) Hit(ctx context.Context, body string) {
	if m == nil {
		return
	}
	m.hits.Add(ctx, 1, metric.WithAttributes(attribute.String("body", body)))
}

func (m *Meters) Preview(ctx context.Context, d time.Duration) {
	if m == nil {
		return
	}
	m.preview.Record(ctx, float64(d.Microseconds())/1000)
}
