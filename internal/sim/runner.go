// Package sim runs sessions without a front end, feeding metrics and
// telemetry sinks as it goes.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/orrery/internal/dynamo"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/session"
	"github.com/san-kum/orrery/internal/telemetry"
)

type Runner struct {
	sess      *session.Session
	log       zerolog.Logger
	run       string
	metrics   []metrics.Metric
	sinks     []telemetry.Sink
	observers []Observer
}

func New(sess *session.Session, log zerolog.Logger) *Runner {
	return &Runner{
		sess: sess,
		log:  log.With().Str("component", "sim").Logger(),
	}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddSink(s telemetry.Sink)   { r.sinks = append(r.sinks, s) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }
func (r *Runner) SetRunName(name string)     { r.run = name }

// Run steps the session cfg.Steps times. A collision ends the run early
// and is reported in Result.Halt, not as an error. Cancelling ctx stops
// the run between steps and returns the partial result with ctx.Err().
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	every := cfg.SampleEvery
	if every <= 0 {
		every = 1
	}

	res := &Result{Metrics: make(map[string]float64)}
	for _, m := range r.metrics {
		m.Reset()
		m.Observe(r.sess.Bodies(), 0)
	}
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	for i := 0; i < cfg.Steps; i++ {
		if err := ctx.Err(); err != nil {
			r.collect(res)
			return res, err
		}
		for _, l := range cfg.Launches {
			if l.Step == i {
				if err := r.sess.Launch(math.Cos(l.Angle), math.Sin(l.Angle)); err != nil {
					return res, fmt.Errorf("launch at step %d: %w", i, err)
				}
				r.emit(ctx, res, Event{Step: i, Kind: EventLaunch, Detail: fmt.Sprintf("%.4f", l.Angle)})
			}
		}

		f, err := r.sess.Tick(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				r.collect(res)
				return res, err
			}
			res.Halt = err
			var ce *dynamo.CollisionError
			if errors.As(err, &ce) {
				r.emit(ctx, res, Event{Step: i, Kind: EventCollision, Detail: ce.A + "/" + ce.B})
			}
			break
		}
		res.StepsTaken++
		if f.Hit != "" {
			r.emit(ctx, res, Event{Step: f.Step, Kind: EventHit, Detail: f.Hit})
		}

		for _, m := range r.metrics {
			m.Observe(r.sess.Bodies(), f.Step)
		}
		if f.Step%every == 0 || i == cfg.Steps-1 {
			if err := r.record(ctx, f.Step); err != nil {
				return res, err
			}
		}
	}

	r.collect(res)
	r.log.Info().
		Int("steps", res.StepsTaken).
		Int("events", len(res.Events)).
		AnErr("halt", res.Halt).
		Msg("run finished")
	return res, nil
}

func (r *Runner) record(ctx context.Context, step int) error {
	rocket := r.sess.Rocket()
	smp := telemetry.Sample{
		Run:        r.run,
		Step:       step,
		Time:       time.Now().UTC(),
		Bodies:     r.sess.Bodies(),
		Barycenter: r.sess.Barycenter(),
		Rocket:     &rocket,
	}
	for _, s := range r.sinks {
		if err := s.Record(ctx, smp); err != nil {
			return fmt.Errorf("record step %d: %w", step, err)
		}
	}
	return nil
}

func (r *Runner) emit(ctx context.Context, res *Result, ev Event) {
	res.Events = append(res.Events, ev)
	for _, o := range r.observers {
		o.OnEvent(ctx, ev)
	}
}

func (r *Runner) collect(res *Result) {
	for _, m := range r.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	res.Rocket = r.sess.Rocket()
}

func validate(cfg Config) error {
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	for _, l := range cfg.Launches {
		if l.Step < 0 || l.Step >= cfg.Steps {
			return fmt.Errorf("launch step %d outside [0, %d)", l.Step, cfg.Steps)
		}
	}
	return nil
}
